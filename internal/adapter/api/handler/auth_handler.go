package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/usecase"
	"github.com/sabrinaansede/apphib/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	Telefono    string `json:"telefono"`
	TipoUsuario string `json:"tipoUsuario" validate:"omitempty,oneof=padre persona"`
}

func (r registerRequest) input() usecase.RegisterInput {
	return usecase.RegisterInput{
		Nombre:      r.Nombre,
		Email:       r.Email,
		Password:    r.Password,
		Telefono:    r.Telefono,
		TipoUsuario: r.TipoUsuario,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.JSON(c, http.StatusCreated, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.JSON(c, http.StatusOK, result)
}
