package usecase

import (
	"context"
	"strings"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

func NewUserUseCase(userRepo repository.UserRepository, hasher PasswordHasher) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// UpdateUserInput only applies non-nil fields.
type UpdateUserInput struct {
	Nombre      *string
	Email       *string
	Password    *string
	Telefono    *string
	TipoUsuario *string
}

func (uc *UserUseCase) Create(ctx context.Context, input RegisterInput) (*entity.User, error) {
	return newUser(ctx, uc.userRepo, uc.hasher, input)
}

func (uc *UserUseCase) List(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List(ctx)
}

func (uc *UserUseCase) Get(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) Update(ctx context.Context, id string, input UpdateUserInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != user.Email {
			other, err := uc.userRepo.GetByEmail(ctx, email)
			if err == nil && other.ID != user.ID {
				return nil, errors.Conflict(msgEmailTaken)
			}
			if err != nil && !errors.IsNotFound(err) {
				return nil, err
			}
			user.Email = email
		}
	}
	if input.Password != nil {
		hash, err := uc.hasher.Hash(*input.Password)
		if err != nil {
			return nil, errors.Internal("Failed to hash password", err)
		}
		user.Password = hash
	}
	if input.Nombre != nil {
		user.Nombre = strings.TrimSpace(*input.Nombre)
	}
	if input.Telefono != nil {
		user.Telefono = strings.TrimSpace(*input.Telefono)
	}
	if input.TipoUsuario != nil {
		user.TipoUsuario = *input.TipoUsuario
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.Delete(ctx, id)
}
