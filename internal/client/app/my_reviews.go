package app

import (
	"context"

	"github.com/sabrinaansede/apphib/internal/client/session"
	"github.com/sabrinaansede/apphib/internal/domain/entity"
)

const (
	msgMyReviewsNeedsLogin = "Iniciá sesión para ver tus reseñas."
	msgMyReviewsFailed     = "Error al cargar tus reseñas"
	unknownPlaceName       = "Lugar"
)

// MyReview is a review of the signed-in user next to the place it is about.
type MyReview struct {
	entity.Review
	PlaceName    string
	PlaceAddress string
}

type MyReviews struct {
	backend  Backend
	sessions *session.Store
}

func NewMyReviews(backend Backend, sessions *session.Store) *MyReviews {
	return &MyReviews{backend: backend, sessions: sessions}
}

// Load returns the session user's reviews in server order. Place details are
// best effort; unknown places show as "Lugar".
func (m *MyReviews) Load(ctx context.Context) ([]MyReview, error) {
	sess, ok := m.sessions.Current()
	if !ok {
		return nil, message(msgMyReviewsNeedsLogin, nil)
	}

	reviews, err := m.backend.ListReviews(ctx, "", sess.User.ID)
	if err != nil {
		return nil, message(msgMyReviewsFailed, err)
	}

	placesByID := make(map[string]entity.Place)
	if places, err := m.backend.ListPlaces(ctx); err == nil {
		for _, p := range places {
			placesByID[p.ID] = p
		}
	}

	out := make([]MyReview, 0, len(reviews))
	for _, r := range reviews {
		if r.Usuario != sess.User.ID {
			continue
		}
		mr := MyReview{Review: r, PlaceName: unknownPlaceName}
		if p, ok := placesByID[r.Lugar]; ok {
			mr.PlaceName = p.Nombre
			mr.PlaceAddress = p.Direccion
		}
		out = append(out, mr)
	}
	return out, nil
}
