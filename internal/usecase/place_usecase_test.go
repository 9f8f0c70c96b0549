package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/mocks"
	"github.com/sabrinaansede/apphib/internal/usecase"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

func TestPlaceCreateFillsDefaults(t *testing.T) {
	repo := new(mocks.MockPlaceRepository)
	uc := usecase.NewPlaceUseCase(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*entity.Place")).Return(nil)

	place, err := uc.Create(ctx, usecase.CreatePlaceInput{
		Nombre:    " Plaza X ",
		Direccion: "Calle 1",
		Latitud:   -34.6,
		Longitud:  -58.4,
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "Plaza X", place.Nombre)
	assert.Equal(t, entity.CertificationCommunity, place.Certificacion)
	assert.Equal(t, []string{}, place.EtiquetasSensoriales)
	assert.Equal(t, 0, place.Votos)
	assert.Empty(t, place.CreadoPor)
}

func TestPlaceCreateAcceptsLegacyCertificationKey(t *testing.T) {
	repo := new(mocks.MockPlaceRepository)
	uc := usecase.NewPlaceUseCase(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*entity.Place")).Return(nil)

	place, err := uc.Create(ctx, usecase.CreatePlaceInput{
		Nombre:               "Museo",
		CertificadoPor:       "APADEA",
		EtiquetasSensoriales: []string{" silencioso ", "", "luz tenue"},
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, entity.CertificationAPADEA, place.Certificacion)
	assert.Equal(t, []string{"silencioso", "luz tenue"}, place.EtiquetasSensoriales)
	assert.Equal(t, "u1", place.CreadoPor)
}

func TestPlaceVoteIncrements(t *testing.T) {
	repo := new(mocks.MockPlaceRepository)
	uc := usecase.NewPlaceUseCase(repo)
	ctx := context.Background()

	repo.On("IncrementVotes", ctx, "p1").Return(&entity.Place{ID: "p1", Votos: 4}, nil)
	repo.On("IncrementVotes", ctx, "missing").Return(nil, errors.NotFound("Lugar", nil))

	place, err := uc.Vote(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, place.Votos)

	_, err = uc.Vote(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestPlaceUpdateIsPartial(t *testing.T) {
	repo := new(mocks.MockPlaceRepository)
	uc := usecase.NewPlaceUseCase(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "p1").Return(&entity.Place{ID: "p1", Nombre: "Viejo", Provincia: "Córdoba", Certificacion: "APADEA"}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*entity.Place")).Return(nil)

	place, err := uc.Update(ctx, "p1", usecase.UpdatePlaceInput{Nombre: strPtr("Nuevo")})
	require.NoError(t, err)

	assert.Equal(t, "Nuevo", place.Nombre)
	assert.Equal(t, "Córdoba", place.Provincia)
	assert.Equal(t, "APADEA", place.Certificacion)
}
