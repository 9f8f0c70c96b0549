package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sabrinaansede/apphib/internal/client/api"
	"github.com/sabrinaansede/apphib/internal/domain/entity"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Register(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(api.AuthResponse), args.Error(1)
}

func (m *MockBackend) Login(ctx context.Context, email, password string) (api.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(api.AuthResponse), args.Error(1)
}

func (m *MockBackend) ListPlaces(ctx context.Context) ([]entity.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Place), args.Error(1)
}

func (m *MockBackend) CreatePlace(ctx context.Context, p api.NewPlace) (entity.Place, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(entity.Place), args.Error(1)
}

func (m *MockBackend) VotePlace(ctx context.Context, id string) (entity.Place, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Place), args.Error(1)
}

func (m *MockBackend) ListReviews(ctx context.Context, lugar, usuario string) ([]entity.Review, error) {
	args := m.Called(ctx, lugar, usuario)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockBackend) CreateReview(ctx context.Context, r api.NewReview, photo *api.Photo) (entity.Review, error) {
	args := m.Called(ctx, r, photo)
	return args.Get(0).(entity.Review), args.Error(1)
}
