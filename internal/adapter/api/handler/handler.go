package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/usecase"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

var (
	authHandler   *AuthHandler
	userHandler   *UserHandler
	placeHandler  *PlaceHandler
	reviewHandler *ReviewHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	placeUseCase *usecase.PlaceUseCase,
	reviewUseCase *usecase.ReviewUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	placeHandler = NewPlaceHandler(placeUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetPlaceHandler() *PlaceHandler {
	return placeHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.BadRequest("Datos inválidos", err)
	}
	return c.Validate(req)
}
