package usecase

import (
	"context"
	"strings"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/pkg/errors"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

const (
	msgEmailTaken         = "El email ya está registrado"
	msgInvalidCredentials = "Credenciales inválidas"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

func NewAuthUseCase(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Nombre      string
	Email       string
	Password    string
	Telefono    string
	TipoUsuario string
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	user, err := newUser(ctx, uc.userRepo, uc.hasher, input)
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	logger.Info("Usuario registrado: %s", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized(msgInvalidCredentials, nil)
		}
		return nil, err
	}

	if !uc.hasher.Compare(user.Password, password) {
		return nil, errors.Unauthorized(msgInvalidCredentials, nil)
	}

	token, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// newUser is shared by registration and the plain user create route.
func newUser(ctx context.Context, repo repository.UserRepository, hasher PasswordHasher, input RegisterInput) (*entity.User, error) {
	email := strings.TrimSpace(input.Email)

	existing, err := repo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.Conflict(msgEmailTaken)
	}
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	hash, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	tipo := input.TipoUsuario
	if tipo == "" {
		tipo = entity.UserTypeParent
	}

	user := &entity.User{
		Nombre:      strings.TrimSpace(input.Nombre),
		Email:       email,
		Password:    hash,
		Telefono:    strings.TrimSpace(input.Telefono),
		TipoUsuario: tipo,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
