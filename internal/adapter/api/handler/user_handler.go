package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/usecase"
	"github.com/sabrinaansede/apphib/pkg/errors"
	"github.com/sabrinaansede/apphib/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateUserRequest struct {
	Nombre      *string `json:"nombre"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=1"`
	Telefono    *string `json:"telefono"`
	TipoUsuario *string `json:"tipoUsuario" validate:"omitempty,oneof=padre persona"`
}

// userError keeps the {msg} body this resource has always answered 404s with.
func userError(c echo.Context, err error) error {
	if errors.IsNotFound(err) {
		return response.Message(c, http.StatusNotFound, "Usuario no encontrado")
	}
	return response.Error(c, err)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.Create(c.Request().Context(), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.DataWithMessage(c, http.StatusCreated, "Usuario creado", user)
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userUseCase.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Data(c, http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return userError(c, err)
	}
	return response.Data(c, http.StatusOK, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.Update(c.Request().Context(), c.Param("id"), usecase.UpdateUserInput{
		Nombre:      req.Nombre,
		Email:       req.Email,
		Password:    req.Password,
		Telefono:    req.Telefono,
		TipoUsuario: req.TipoUsuario,
	})
	if err != nil {
		return userError(c, err)
	}
	return response.Data(c, http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.userUseCase.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return userError(c, err)
	}
	return response.Data(c, http.StatusOK, user)
}
