package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/internal/domain/service"
	"github.com/sabrinaansede/apphib/pkg/errors"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	placeRepo  repository.PlaceRepository
	userRepo   repository.UserRepository
	photos     service.PhotoStore
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	placeRepo repository.PlaceRepository,
	userRepo repository.UserRepository,
	photos service.PhotoStore,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		placeRepo:  placeRepo,
		userRepo:   userRepo,
		photos:     photos,
	}
}

type CreateReviewInput struct {
	Lugar      string
	Usuario    string
	Puntuacion int
	Comentario string
}

type UpdateReviewInput struct {
	Puntuacion *int
	Comentario *string
}

// Photo is an uploaded image attached to a new review.
type Photo struct {
	Body        io.Reader
	ContentType string
}

func validRating(n int) error {
	if n < entity.MinRating || n > entity.MaxRating {
		return errors.BadRequest(fmt.Sprintf("puntuacion debe estar entre %d y %d", entity.MinRating, entity.MaxRating), nil)
	}
	return nil
}

// Create checks that the place and the author exist before storing. The checks
// and the insert are not transactional.
func (uc *ReviewUseCase) Create(ctx context.Context, input CreateReviewInput, photo *Photo) (*entity.Review, error) {
	if err := validRating(input.Puntuacion); err != nil {
		return nil, err
	}
	if _, err := uc.placeRepo.GetByID(ctx, input.Lugar); err != nil {
		return nil, err
	}
	if _, err := uc.userRepo.GetByID(ctx, input.Usuario); err != nil {
		return nil, err
	}

	review := &entity.Review{
		Lugar:      input.Lugar,
		Usuario:    input.Usuario,
		Puntuacion: input.Puntuacion,
		Comentario: input.Comentario,
		CreadoEn:   time.Now(),
	}

	if photo != nil && photo.Body != nil {
		url, err := uc.savePhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		review.FotoURL = url
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		uc.dropPhoto(ctx, review.FotoURL)
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) savePhoto(ctx context.Context, photo *Photo) (string, error) {
	url, err := uc.photos.Save(ctx, photo.Body, photo.ContentType)
	switch {
	case err == nil:
		return url, nil
	case stderrors.Is(err, service.ErrUnsupportedPhoto):
		return "", errors.BadRequest("La foto debe ser JPG, PNG, GIF o WEBP", err)
	case stderrors.Is(err, service.ErrPhotoTooLarge):
		return "", errors.BadRequest("La foto supera los 5 MB", err)
	default:
		return "", errors.Internal("No se pudo guardar la foto", err)
	}
}

func (uc *ReviewUseCase) dropPhoto(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := uc.photos.Delete(ctx, url); err != nil {
		logger.Warn("No se pudo borrar la foto %s: %v", url, err)
	}
}

func (uc *ReviewUseCase) List(ctx context.Context, filter entity.ReviewFilter) ([]*entity.Review, error) {
	return uc.reviewRepo.List(ctx, filter)
}

func (uc *ReviewUseCase) Get(ctx context.Context, id string) (*entity.Review, error) {
	return uc.reviewRepo.GetByID(ctx, id)
}

func (uc *ReviewUseCase) Update(ctx context.Context, id string, input UpdateReviewInput) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Puntuacion != nil {
		if err := validRating(*input.Puntuacion); err != nil {
			return nil, err
		}
		review.Puntuacion = *input.Puntuacion
	}
	if input.Comentario != nil {
		review.Comentario = *input.Comentario
	}

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) Delete(ctx context.Context, id string) (*entity.Review, error) {
	review, err := uc.reviewRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.dropPhoto(ctx, review.FotoURL)
	return review, nil
}
