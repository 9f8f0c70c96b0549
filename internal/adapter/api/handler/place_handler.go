package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/adapter/api/middleware"
	"github.com/sabrinaansede/apphib/internal/usecase"
	"github.com/sabrinaansede/apphib/pkg/response"
)

type PlaceHandler struct {
	placeUseCase *usecase.PlaceUseCase
}

func NewPlaceHandler(placeUseCase *usecase.PlaceUseCase) *PlaceHandler {
	return &PlaceHandler{
		placeUseCase: placeUseCase,
	}
}

type createPlaceRequest struct {
	Nombre               string   `json:"nombre" validate:"required"`
	Direccion            string   `json:"direccion"`
	Latitud              float64  `json:"latitud" validate:"latitude"`
	Longitud             float64  `json:"longitud" validate:"longitude"`
	Tipo                 string   `json:"tipo"`
	Provincia            string   `json:"provincia"`
	Descripcion          string   `json:"descripcion"`
	EtiquetasSensoriales []string `json:"etiquetasSensoriales"`
	Certificacion        string   `json:"certificacion"`
	CertificadoPor       string   `json:"certificadoPor"`
}

type updatePlaceRequest struct {
	Nombre               *string   `json:"nombre"`
	Direccion            *string   `json:"direccion"`
	Latitud              *float64  `json:"latitud" validate:"omitempty,latitude"`
	Longitud             *float64  `json:"longitud" validate:"omitempty,longitude"`
	Tipo                 *string   `json:"tipo"`
	Provincia            *string   `json:"provincia"`
	Descripcion          *string   `json:"descripcion"`
	EtiquetasSensoriales *[]string `json:"etiquetasSensoriales"`
	Certificacion        *string   `json:"certificacion"`
}

// Create records the caller as creator when OptionalAuth identified one.
func (h *PlaceHandler) Create(c echo.Context) error {
	var req createPlaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	place, err := h.placeUseCase.Create(c.Request().Context(), usecase.CreatePlaceInput{
		Nombre:               req.Nombre,
		Direccion:            req.Direccion,
		Latitud:              req.Latitud,
		Longitud:             req.Longitud,
		Tipo:                 req.Tipo,
		Provincia:            req.Provincia,
		Descripcion:          req.Descripcion,
		EtiquetasSensoriales: req.EtiquetasSensoriales,
		Certificacion:        req.Certificacion,
		CertificadoPor:       req.CertificadoPor,
	}, middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.JSON(c, http.StatusCreated, place)
}

func (h *PlaceHandler) List(c echo.Context) error {
	places, err := h.placeUseCase.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, places)
}

func (h *PlaceHandler) Get(c echo.Context) error {
	place, err := h.placeUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, place)
}

func (h *PlaceHandler) Update(c echo.Context) error {
	var req updatePlaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	place, err := h.placeUseCase.Update(c.Request().Context(), c.Param("id"), usecase.UpdatePlaceInput{
		Nombre:               req.Nombre,
		Direccion:            req.Direccion,
		Latitud:              req.Latitud,
		Longitud:             req.Longitud,
		Tipo:                 req.Tipo,
		Provincia:            req.Provincia,
		Descripcion:          req.Descripcion,
		EtiquetasSensoriales: req.EtiquetasSensoriales,
		Certificacion:        req.Certificacion,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, place)
}

func (h *PlaceHandler) Delete(c echo.Context) error {
	place, err := h.placeUseCase.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, place)
}

func (h *PlaceHandler) Vote(c echo.Context) error {
	place, err := h.placeUseCase.Vote(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, place)
}
