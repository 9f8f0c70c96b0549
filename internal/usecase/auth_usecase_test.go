package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/mocks"
	"github.com/sabrinaansede/apphib/internal/usecase"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

func newAuth() (*usecase.AuthUseCase, *mocks.MockUserRepository, *mocks.MockPasswordHasher, *mocks.MockTokenIssuer) {
	repo := new(mocks.MockUserRepository)
	hasher := new(mocks.MockPasswordHasher)
	tokens := new(mocks.MockTokenIssuer)
	return usecase.NewAuthUseCase(repo, hasher, tokens), repo, hasher, tokens
}

func TestRegisterHashesAndIssuesToken(t *testing.T) {
	uc, repo, hasher, tokens := newAuth()
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ana@example.com").Return(nil, errors.NotFound("Usuario", nil))
	hasher.On("Hash", "secreto").Return("hashed", nil)
	repo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.User).ID = "u1" }).
		Return(nil)
	tokens.On("Issue", "u1", "ana@example.com").Return("tok", nil)

	res, err := uc.Register(ctx, usecase.RegisterInput{
		Nombre:   "Ana",
		Email:    " ana@example.com ",
		Password: "secreto",
	})
	require.NoError(t, err)

	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, "hashed", res.User.Password)
	assert.Equal(t, entity.UserTypeParent, res.User.TipoUsuario)
	repo.AssertExpectations(t)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc, repo, hasher, _ := newAuth()
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ana@example.com").Return(&entity.User{ID: "u1"}, nil)

	_, err := uc.Register(ctx, usecase.RegisterInput{Email: "ana@example.com", Password: "x"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConflict))
	hasher.AssertNotCalled(t, "Hash", mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	uc, repo, hasher, tokens := newAuth()
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ana@example.com").Return(&entity.User{ID: "u1", Password: "hashed"}, nil)
	hasher.On("Compare", "hashed", "mal").Return(false)

	_, err := uc.Login(ctx, "ana@example.com", "mal")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Equal(t, "Credenciales inválidas", appErr.Message)
	tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	uc, repo, _, _ := newAuth()
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "nadie@example.com").Return(nil, errors.NotFound("Usuario", nil))

	_, err := uc.Login(ctx, "nadie@example.com", "x")
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestLoginSuccess(t *testing.T) {
	uc, repo, hasher, tokens := newAuth()
	ctx := context.Background()

	user := &entity.User{ID: "u1", Email: "ana@example.com", Password: "hashed"}
	repo.On("GetByEmail", ctx, "ana@example.com").Return(user, nil)
	hasher.On("Compare", "hashed", "secreto").Return(true)
	tokens.On("Issue", "u1", "ana@example.com").Return("tok", nil)

	res, err := uc.Login(ctx, "ana@example.com", "secreto")
	require.NoError(t, err)
	assert.Same(t, user, res.User)
	assert.Equal(t, "tok", res.Token)
}
