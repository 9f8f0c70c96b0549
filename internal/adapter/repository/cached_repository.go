package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

const (
	placesCachePrefix  = "lugares"
	reviewsCachePrefix = "resenas"
)

// listCache stores one list per generation under "<prefix>:list:<gen>".
// Writes bump "<prefix>:gen", so a list read before a write can only land
// under a generation nobody reads any more.
type listCache struct {
	cache  repository.CacheRepository
	ttl    time.Duration
	prefix string
}

func (l listCache) genKey() string { return l.prefix + ":gen" }

func (l listCache) listKey(gen int64) string {
	return fmt.Sprintf("%s:list:%d", l.prefix, gen)
}

// generation reports false when the counter can't be read; the cache is
// bypassed in that case.
func (l listCache) generation(ctx context.Context) (int64, bool) {
	data, err := l.cache.Get(ctx, l.genKey())
	if err != nil {
		return 0, false
	}
	if data == nil {
		return 0, true
	}
	gen, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		logger.Warn("Discarding unreadable cache generation %s: %v", l.genKey(), err)
		return 0, false
	}
	return gen, true
}

func (l listCache) read(ctx context.Context, gen int64, dst interface{}) bool {
	key := l.listKey(gen)
	data, err := l.cache.Get(ctx, key)
	if err != nil || data == nil {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn("Discarding unreadable cache entry %s: %v", key, err)
		return false
	}
	return true
}

// write stores v only if no write happened since gen was read.
func (l listCache) write(ctx context.Context, gen int64, v interface{}) {
	if current, ok := l.generation(ctx); !ok || current != gen {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	key := l.listKey(gen)
	if err := l.cache.Set(ctx, key, data, l.ttl); err != nil {
		logger.Warn("Cache write failed for %s: %v", key, err)
	}
}

func (l listCache) invalidate(ctx context.Context) {
	if _, err := l.cache.Incr(ctx, l.genKey()); err != nil {
		logger.Warn("Cache invalidation failed for %s: %v", l.genKey(), err)
	}
}

// cachedPlaceRepository keeps the full place list in the cache. Cache errors
// fall through to the store.
type cachedPlaceRepository struct {
	repository.PlaceRepository
	lists listCache
}

func NewCachedPlaceRepository(next repository.PlaceRepository, cache repository.CacheRepository, ttl time.Duration) repository.PlaceRepository {
	return &cachedPlaceRepository{
		PlaceRepository: next,
		lists:           listCache{cache: cache, ttl: ttl, prefix: placesCachePrefix},
	}
}

func (r *cachedPlaceRepository) List(ctx context.Context) ([]*entity.Place, error) {
	gen, ok := r.lists.generation(ctx)
	if !ok {
		return r.PlaceRepository.List(ctx)
	}

	var places []*entity.Place
	if r.lists.read(ctx, gen, &places) {
		return places, nil
	}

	places, err := r.PlaceRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	r.lists.write(ctx, gen, places)
	return places, nil
}

func (r *cachedPlaceRepository) Create(ctx context.Context, place *entity.Place) error {
	defer r.lists.invalidate(ctx)
	return r.PlaceRepository.Create(ctx, place)
}

func (r *cachedPlaceRepository) Update(ctx context.Context, place *entity.Place) error {
	defer r.lists.invalidate(ctx)
	return r.PlaceRepository.Update(ctx, place)
}

func (r *cachedPlaceRepository) Delete(ctx context.Context, id string) (*entity.Place, error) {
	defer r.lists.invalidate(ctx)
	return r.PlaceRepository.Delete(ctx, id)
}

func (r *cachedPlaceRepository) IncrementVotes(ctx context.Context, id string) (*entity.Place, error) {
	defer r.lists.invalidate(ctx)
	return r.PlaceRepository.IncrementVotes(ctx, id)
}

// cachedReviewRepository only caches the unfiltered list.
type cachedReviewRepository struct {
	repository.ReviewRepository
	lists listCache
}

func NewCachedReviewRepository(next repository.ReviewRepository, cache repository.CacheRepository, ttl time.Duration) repository.ReviewRepository {
	return &cachedReviewRepository{
		ReviewRepository: next,
		lists:            listCache{cache: cache, ttl: ttl, prefix: reviewsCachePrefix},
	}
}

func (r *cachedReviewRepository) List(ctx context.Context, filter entity.ReviewFilter) ([]*entity.Review, error) {
	if filter != (entity.ReviewFilter{}) {
		return r.ReviewRepository.List(ctx, filter)
	}

	gen, ok := r.lists.generation(ctx)
	if !ok {
		return r.ReviewRepository.List(ctx, filter)
	}

	var reviews []*entity.Review
	if r.lists.read(ctx, gen, &reviews) {
		return reviews, nil
	}

	reviews, err := r.ReviewRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	r.lists.write(ctx, gen, reviews)
	return reviews, nil
}

func (r *cachedReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	defer r.lists.invalidate(ctx)
	return r.ReviewRepository.Create(ctx, review)
}

func (r *cachedReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	defer r.lists.invalidate(ctx)
	return r.ReviewRepository.Update(ctx, review)
}

func (r *cachedReviewRepository) Delete(ctx context.Context, id string) (*entity.Review, error) {
	defer r.lists.invalidate(ctx)
	return r.ReviewRepository.Delete(ctx, id)
}
