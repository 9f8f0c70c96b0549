package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/service"
	"github.com/sabrinaansede/apphib/internal/mocks"
	"github.com/sabrinaansede/apphib/internal/usecase"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

type reviewFixture struct {
	uc      *usecase.ReviewUseCase
	reviews *mocks.MockReviewRepository
	places  *mocks.MockPlaceRepository
	users   *mocks.MockUserRepository
	photos  *mocks.MockPhotoStore
}

func newReviewFixture() reviewFixture {
	f := reviewFixture{
		reviews: new(mocks.MockReviewRepository),
		places:  new(mocks.MockPlaceRepository),
		users:   new(mocks.MockUserRepository),
		photos:  new(mocks.MockPhotoStore),
	}
	f.uc = usecase.NewReviewUseCase(f.reviews, f.places, f.users, f.photos)
	return f
}

func TestReviewCreateRejectsOutOfRangeRating(t *testing.T) {
	f := newReviewFixture()

	for _, n := range []int{0, 6, -1} {
		_, err := f.uc.Create(context.Background(), usecase.CreateReviewInput{Lugar: "p1", Usuario: "u1", Puntuacion: n}, nil)
		assert.True(t, errors.Is(err, errors.CodeBadRequest), "rating %d", n)
	}
	f.places.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReviewCreateRequiresExistingPlace(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	f.places.On("GetByID", ctx, "p404").Return(nil, errors.NotFound("Lugar", nil))

	_, err := f.uc.Create(ctx, usecase.CreateReviewInput{Lugar: "p404", Usuario: "u1", Puntuacion: 4}, nil)
	assert.True(t, errors.IsNotFound(err))
	f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewCreateStoresPhoto(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	body := strings.NewReader("png-bytes")

	f.places.On("GetByID", ctx, "p1").Return(&entity.Place{ID: "p1"}, nil)
	f.users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1"}, nil)
	f.photos.On("Save", ctx, body, "image/png").Return("http://localhost:5000/uploads/resenas/a.png", nil)
	f.reviews.On("Create", ctx, mock.AnythingOfType("*entity.Review")).Return(nil)

	review, err := f.uc.Create(ctx, usecase.CreateReviewInput{Lugar: "p1", Usuario: "u1", Puntuacion: 5, Comentario: "Tranquilo"},
		&usecase.Photo{Body: body, ContentType: "image/png"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/uploads/resenas/a.png", review.FotoURL)
	assert.False(t, review.CreadoEn.IsZero())
	assert.Equal(t, 5, review.Puntuacion)
}

func TestReviewCreateMapsUnsupportedPhoto(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	f.places.On("GetByID", ctx, "p1").Return(&entity.Place{ID: "p1"}, nil)
	f.users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1"}, nil)
	f.photos.On("Save", ctx, mock.Anything, "text/plain").Return("", service.ErrUnsupportedPhoto)

	_, err := f.uc.Create(ctx, usecase.CreateReviewInput{Lugar: "p1", Usuario: "u1", Puntuacion: 3},
		&usecase.Photo{Body: strings.NewReader("hola"), ContentType: "text/plain"})

	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestReviewCreateDropsPhotoWhenInsertFails(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	f.places.On("GetByID", ctx, "p1").Return(&entity.Place{ID: "p1"}, nil)
	f.users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1"}, nil)
	f.photos.On("Save", ctx, mock.Anything, "image/png").Return("url", nil)
	f.photos.On("Delete", ctx, "url").Return(nil)
	f.reviews.On("Create", ctx, mock.Anything).Return(errors.Internal("boom", nil))

	_, err := f.uc.Create(ctx, usecase.CreateReviewInput{Lugar: "p1", Usuario: "u1", Puntuacion: 3},
		&usecase.Photo{Body: strings.NewReader("x"), ContentType: "image/png"})

	require.Error(t, err)
	f.photos.AssertCalled(t, "Delete", ctx, "url")
}

func TestReviewDeleteRemovesPhoto(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	f.reviews.On("Delete", ctx, "r1").Return(&entity.Review{ID: "r1", FotoURL: "url"}, nil)
	f.photos.On("Delete", ctx, "url").Return(nil)

	review, err := f.uc.Delete(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", review.ID)
	f.photos.AssertExpectations(t)
}

func TestReviewUpdateValidatesRating(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	bad := 9

	f.reviews.On("GetByID", ctx, "r1").Return(&entity.Review{ID: "r1", Puntuacion: 2}, nil)

	_, err := f.uc.Update(ctx, "r1", usecase.UpdateReviewInput{Puntuacion: &bad})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	f.reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
