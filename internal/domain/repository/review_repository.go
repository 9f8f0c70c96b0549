package repository

import (
	"context"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	List(ctx context.Context, filter entity.ReviewFilter) ([]*entity.Review, error)
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) (*entity.Review, error)
}
