package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockPhotoStore struct {
	mock.Mock
}

func (m *MockPhotoStore) Save(ctx context.Context, file io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, file, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoStore) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockPhotoStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) bool {
	args := m.Called(hash, password)
	return args.Bool(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
