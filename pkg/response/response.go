package response

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "github.com/sabrinaansede/apphib/pkg/errors"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

// DataEnvelope is the {data: ...} shape used by user and review routes.
type DataEnvelope struct {
	Msg  string      `json:"msg,omitempty"`
	Data interface{} `json:"data"`
}

type MessageBody struct {
	Msg string `json:"msg"`
}

type ErrorBody struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

func Data(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, DataEnvelope{Data: data})
}

func DataWithMessage(c echo.Context, status int, msg string, data interface{}) error {
	return c.JSON(status, DataEnvelope{Msg: msg, Data: data})
}

// JSON writes the value without an envelope; place routes answer this way.
func JSON(c echo.Context, status int, v interface{}) error {
	return c.JSON(status, v)
}

func Message(c echo.Context, status int, msg string) error {
	return c.JSON(status, MessageBody{Msg: msg})
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", c.Request().Method, c.Path(), appErr)
		}
		return c.JSON(appErr.Status, ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorBody{Code: apperrors.CodeBadRequest, Message: msg})
	}

	logger.Error("%s %s: unexpected error: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorBody{
		Code:    apperrors.CodeInternal,
		Message: "Ocurrió un error inesperado",
	})
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	message := "Datos inválidos"
	if len(validationErr) > 0 {
		message = validationMessage(validationErr[0])
	}

	return c.JSON(http.StatusBadRequest, ErrorBody{
		Code:    "VALIDATION_ERROR",
		Message: message,
	})
}

func validationMessage(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return field + " es obligatorio"
	case "min", "gte":
		return field + " debe ser al menos " + param
	case "max", "lte":
		return field + " debe ser como máximo " + param
	case "oneof":
		return field + " debe ser uno de: " + param
	case "email":
		return field + " debe ser un email válido"
	case "latitude", "longitude":
		return field + " está fuera de rango"
	default:
		return field + " es inválido"
	}
}
