package usecase

import (
	"context"
	"strings"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

type PlaceUseCase struct {
	placeRepo repository.PlaceRepository
}

func NewPlaceUseCase(placeRepo repository.PlaceRepository) *PlaceUseCase {
	return &PlaceUseCase{
		placeRepo: placeRepo,
	}
}

type CreatePlaceInput struct {
	Nombre               string
	Direccion            string
	Latitud              float64
	Longitud             float64
	Tipo                 string
	Provincia            string
	Descripcion          string
	EtiquetasSensoriales []string
	Certificacion        string
	// CertificadoPor is the legacy name of Certificacion.
	CertificadoPor string
}

type UpdatePlaceInput struct {
	Nombre               *string
	Direccion            *string
	Latitud              *float64
	Longitud             *float64
	Tipo                 *string
	Provincia            *string
	Descripcion          *string
	EtiquetasSensoriales *[]string
	Certificacion        *string
}

func (uc *PlaceUseCase) Create(ctx context.Context, input CreatePlaceInput, creatorID string) (*entity.Place, error) {
	cert := input.Certificacion
	if cert == "" {
		cert = input.CertificadoPor
	}

	place := &entity.Place{
		Nombre:               strings.TrimSpace(input.Nombre),
		Direccion:            strings.TrimSpace(input.Direccion),
		Latitud:              input.Latitud,
		Longitud:             input.Longitud,
		Tipo:                 input.Tipo,
		Provincia:            input.Provincia,
		Descripcion:          input.Descripcion,
		EtiquetasSensoriales: cleanTags(input.EtiquetasSensoriales),
		Certificacion:        cert,
		Votos:                0,
		CreadoPor:            creatorID,
	}
	place.Certificacion = place.Certification()

	if err := uc.placeRepo.Create(ctx, place); err != nil {
		return nil, err
	}

	logger.Info("Lugar creado: %s (%s)", place.ID, place.Nombre)
	return place, nil
}

func (uc *PlaceUseCase) List(ctx context.Context) ([]*entity.Place, error) {
	return uc.placeRepo.List(ctx)
}

func (uc *PlaceUseCase) Get(ctx context.Context, id string) (*entity.Place, error) {
	return uc.placeRepo.GetByID(ctx, id)
}

func (uc *PlaceUseCase) Update(ctx context.Context, id string, input UpdatePlaceInput) (*entity.Place, error) {
	place, err := uc.placeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nombre != nil {
		place.Nombre = strings.TrimSpace(*input.Nombre)
	}
	if input.Direccion != nil {
		place.Direccion = strings.TrimSpace(*input.Direccion)
	}
	if input.Latitud != nil {
		place.Latitud = *input.Latitud
	}
	if input.Longitud != nil {
		place.Longitud = *input.Longitud
	}
	if input.Tipo != nil {
		place.Tipo = *input.Tipo
	}
	if input.Provincia != nil {
		place.Provincia = *input.Provincia
	}
	if input.Descripcion != nil {
		place.Descripcion = *input.Descripcion
	}
	if input.EtiquetasSensoriales != nil {
		place.EtiquetasSensoriales = cleanTags(*input.EtiquetasSensoriales)
	}
	if input.Certificacion != nil {
		place.Certificacion = *input.Certificacion
		place.Certificacion = place.Certification()
	}

	if err := uc.placeRepo.Update(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

func (uc *PlaceUseCase) Delete(ctx context.Context, id string) (*entity.Place, error) {
	return uc.placeRepo.Delete(ctx, id)
}

// Vote adds one to the place's counter. Votes are anonymous and unlimited.
func (uc *PlaceUseCase) Vote(ctx context.Context, id string) (*entity.Place, error) {
	return uc.placeRepo.IncrementVotes(ctx, id)
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
