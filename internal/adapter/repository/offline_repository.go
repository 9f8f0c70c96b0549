package repository

import (
	"context"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

// Offline repositories back the API when the store was unreachable at start-up.
// The server stays up and every data route answers with an internal error.

func errStoreUnavailable() error {
	return errors.Internal("base de datos no disponible", nil)
}

type offlineUserRepository struct{}

func NewOfflineUserRepository() repository.UserRepository { return offlineUserRepository{} }

func (offlineUserRepository) Create(context.Context, *entity.User) error { return errStoreUnavailable() }
func (offlineUserRepository) List(context.Context) ([]*entity.User, error) {
	return nil, errStoreUnavailable()
}
func (offlineUserRepository) GetByID(context.Context, string) (*entity.User, error) {
	return nil, errStoreUnavailable()
}
func (offlineUserRepository) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, errStoreUnavailable()
}
func (offlineUserRepository) Update(context.Context, *entity.User) error { return errStoreUnavailable() }
func (offlineUserRepository) Delete(context.Context, string) (*entity.User, error) {
	return nil, errStoreUnavailable()
}

type offlinePlaceRepository struct{}

func NewOfflinePlaceRepository() repository.PlaceRepository { return offlinePlaceRepository{} }

func (offlinePlaceRepository) Create(context.Context, *entity.Place) error { return errStoreUnavailable() }
func (offlinePlaceRepository) List(context.Context) ([]*entity.Place, error) {
	return nil, errStoreUnavailable()
}
func (offlinePlaceRepository) GetByID(context.Context, string) (*entity.Place, error) {
	return nil, errStoreUnavailable()
}
func (offlinePlaceRepository) Update(context.Context, *entity.Place) error { return errStoreUnavailable() }
func (offlinePlaceRepository) Delete(context.Context, string) (*entity.Place, error) {
	return nil, errStoreUnavailable()
}
func (offlinePlaceRepository) IncrementVotes(context.Context, string) (*entity.Place, error) {
	return nil, errStoreUnavailable()
}

type offlineReviewRepository struct{}

func NewOfflineReviewRepository() repository.ReviewRepository { return offlineReviewRepository{} }

func (offlineReviewRepository) Create(context.Context, *entity.Review) error {
	return errStoreUnavailable()
}
func (offlineReviewRepository) List(context.Context, entity.ReviewFilter) ([]*entity.Review, error) {
	return nil, errStoreUnavailable()
}
func (offlineReviewRepository) GetByID(context.Context, string) (*entity.Review, error) {
	return nil, errStoreUnavailable()
}
func (offlineReviewRepository) Update(context.Context, *entity.Review) error {
	return errStoreUnavailable()
}
func (offlineReviewRepository) Delete(context.Context, string) (*entity.Review, error) {
	return nil, errStoreUnavailable()
}

// OfflineHealth reports the store as down on /health.
type OfflineHealth struct {
	Cause error
}

func (h OfflineHealth) Name() string { return "offline" }

func (h OfflineHealth) Ping(context.Context) error {
	if h.Cause != nil {
		return h.Cause
	}
	return errStoreUnavailable()
}
