package main

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/sabrinaansede/apphib/internal/adapter/repository"
	domain "github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/internal/domain/service"
	"github.com/sabrinaansede/apphib/internal/infrastructure/cache"
	"github.com/sabrinaansede/apphib/internal/infrastructure/mongodb"
	"github.com/sabrinaansede/apphib/internal/infrastructure/storage"
	"github.com/sabrinaansede/apphib/pkg/config"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

type stores struct {
	users   domain.UserRepository
	places  domain.PlaceRepository
	reviews domain.ReviewRepository
	health  []domain.StoreHealth
	closers []func() error
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Warn("Error al cerrar recursos: %v", err)
		}
	}
}

func gcpOptions(cfg *config.Config) []option.ClientOption {
	if cfg.GoogleCredsJSON == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.GoogleCredsJSON))}
}

// openStores never fails: when the document store is unreachable the API
// starts with offline repositories and reports itself degraded.
func openStores(ctx context.Context, cfg *config.Config) *stores {
	s := &stores{}

	var err error
	switch cfg.StoreDriver {
	case config.DriverFirestore:
		err = s.openFirestore(ctx, cfg)
	default:
		err = s.openMongo(ctx, cfg)
	}
	if err != nil {
		logger.Error("No se pudo conectar a la base de datos: %v", err)
		s.users = repository.NewOfflineUserRepository()
		s.places = repository.NewOfflinePlaceRepository()
		s.reviews = repository.NewOfflineReviewRepository()
		s.health = append(s.health, repository.OfflineHealth{Cause: err})
		return s
	}

	if cfg.RedisURL != "" {
		s.enableCache(ctx, cfg)
	}
	return s
}

func (s *stores) openMongo(ctx context.Context, cfg *config.Config) error {
	if cfg.DatabaseURI == "" {
		logger.Warn("URI_DB no está definido")
		return fmt.Errorf("URI_DB no está definido")
	}

	store, err := mongodb.Connect(ctx, cfg.DatabaseURI, cfg.DatabaseName)
	if err != nil {
		return err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Warn("No se pudieron crear los índices: %v", err)
	}

	db := store.Database()
	s.users = repository.NewMongoUserRepository(db)
	s.places = repository.NewMongoPlaceRepository(db)
	s.reviews = repository.NewMongoReviewRepository(db)
	s.health = append(s.health, store)
	s.closers = append(s.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return store.Close(ctx)
	})
	return nil
}

func (s *stores) openFirestore(ctx context.Context, cfg *config.Config) error {
	if cfg.FirebaseProject == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID no está definido")
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProject, gcpOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("failed to create Firestore client: %w", err)
	}
	logger.Info("Conexión con Firestore correcta (project=%s)", cfg.FirebaseProject)

	s.users = repository.NewFirestoreUserRepository(client)
	s.places = repository.NewFirestorePlaceRepository(client)
	s.reviews = repository.NewFirestoreReviewRepository(client)
	s.health = append(s.health, repository.FirestoreHealth{Client: client})
	s.closers = append(s.closers, client.Close)
	return nil
}

func (s *stores) enableCache(ctx context.Context, cfg *config.Config) {
	r, err := cache.NewRedis(ctx, cfg.RedisURL, logger.L())
	if err != nil {
		logger.Warn("Caché deshabilitada: %v", err)
		return
	}

	ttl := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.NewCacheRepository(r)
	s.places = repository.NewCachedPlaceRepository(s.places, c, ttl)
	s.reviews = repository.NewCachedReviewRepository(s.reviews, c, ttl)
	s.health = append(s.health, r)
	s.closers = append(s.closers, r.Close)
	logger.L().Info("List cache enabled", zap.Duration("ttl", ttl))
}

// openPhotoStore prefers the bucket and falls back to local disk.
func openPhotoStore(ctx context.Context, cfg *config.Config) (service.PhotoStore, bool, error) {
	if cfg.StorageBucket != "" {
		gcs, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.GoogleCredsJSON)
		if err == nil {
			return gcs, false, nil
		}
		logger.Warn("Cloud Storage no disponible, usando disco local: %v", err)
	}

	local, err := storage.NewLocalStore(afero.NewOsFs(), cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, false, err
	}
	return local, true, nil
}
