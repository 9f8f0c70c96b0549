// Package app is the glue behind each client screen: it calls the API,
// keeps the session and holds what the screen currently shows.
package app

import (
	"context"
	"errors"

	"github.com/sabrinaansede/apphib/internal/client/api"
	"github.com/sabrinaansede/apphib/internal/domain/entity"
)

// Backend is the subset of the API the screens use.
type Backend interface {
	Register(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)
	ListPlaces(ctx context.Context) ([]entity.Place, error)
	CreatePlace(ctx context.Context, p api.NewPlace) (entity.Place, error)
	VotePlace(ctx context.Context, id string) (entity.Place, error)
	ListReviews(ctx context.Context, lugar, usuario string) ([]entity.Review, error)
	CreateReview(ctx context.Context, r api.NewReview, photo *api.Photo) (entity.Review, error)
}

// MessageError carries the text a screen shows to the user.
type MessageError struct {
	Message string
	Err     error
}

func (e *MessageError) Error() string { return e.Message }

func (e *MessageError) Unwrap() error { return e.Err }

func message(text string, err error) *MessageError {
	return &MessageError{Message: text, Err: err}
}

// Message extracts the user-facing text from err.
func Message(err error) string {
	var m *MessageError
	if errors.As(err, &m) {
		return m.Message
	}
	return err.Error()
}
