package repository

import (
	"context"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
)

type PlaceRepository interface {
	Create(ctx context.Context, place *entity.Place) error
	List(ctx context.Context) ([]*entity.Place, error)
	GetByID(ctx context.Context, id string) (*entity.Place, error)
	Update(ctx context.Context, place *entity.Place) error
	Delete(ctx context.Context, id string) (*entity.Place, error)
	// IncrementVotes bumps the counter atomically in the store and returns the updated place.
	IncrementVotes(ctx context.Context, id string) (*entity.Place, error)
}
