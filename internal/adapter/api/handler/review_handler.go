package handler

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/usecase"
	"github.com/sabrinaansede/apphib/pkg/errors"
	"github.com/sabrinaansede/apphib/pkg/response"
)

// PhotoField is the multipart field carrying a review photo.
const PhotoField = "foto"

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	Lugar      string `json:"lugar" form:"lugar" validate:"required"`
	Usuario    string `json:"usuario" form:"usuario" validate:"required"`
	Puntuacion int    `json:"puntuacion" form:"puntuacion" validate:"min=1,max=5"`
	Comentario string `json:"comentario" form:"comentario"`
}

type updateReviewRequest struct {
	Puntuacion *int    `json:"puntuacion" validate:"omitempty,min=1,max=5"`
	Comentario *string `json:"comentario"`
}

// Create accepts either a JSON body or a multipart form with an optional photo.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	var photo *usecase.Photo
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile(PhotoField)
		switch {
		case err == nil:
			f, err := fh.Open()
			if err != nil {
				return response.Error(c, errors.BadRequest("No se pudo leer la foto", err))
			}
			defer f.Close()
			photo = &usecase.Photo{Body: f, ContentType: fh.Header.Get(echo.HeaderContentType)}
		case stderrors.Is(err, http.ErrMissingFile):
		default:
			return response.Error(c, errors.BadRequest("No se pudo leer la foto", err))
		}
	}

	review, err := h.reviewUseCase.Create(c.Request().Context(), usecase.CreateReviewInput{
		Lugar:      req.Lugar,
		Usuario:    req.Usuario,
		Puntuacion: req.Puntuacion,
		Comentario: req.Comentario,
	}, photo)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Data(c, http.StatusCreated, review)
}

func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.reviewUseCase.List(c.Request().Context(), entity.ReviewFilter{
		Lugar:   c.QueryParam("lugar"),
		Usuario: c.QueryParam("usuario"),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Data(c, http.StatusOK, reviews)
}

func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.reviewUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Data(c, http.StatusOK, review)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	var req updateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.Update(c.Request().Context(), c.Param("id"), usecase.UpdateReviewInput{
		Puntuacion: req.Puntuacion,
		Comentario: req.Comentario,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Data(c, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	review, err := h.reviewUseCase.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Data(c, http.StatusOK, review)
}
