package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sabrinaansede/apphib/internal/client/api"
	"github.com/sabrinaansede/apphib/internal/client/session"
	"github.com/sabrinaansede/apphib/internal/client/view"
	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

const (
	msgLoadPlacesFailed = "Error al cargar los lugares del mapa."
	msgServerDown       = "Error al conectar con el servidor."
	msgReviewNeedsLogin = "Debes iniciar sesión para dejar reseña."
	msgReviewRejected   = "No se pudo enviar la reseña."
	msgReviewFailed     = "Error al enviar la reseña."
)

var (
	// ErrNoRating is returned when a review is submitted without stars.
	ErrNoRating = errors.New("la reseña necesita una puntuación")
	// ErrRatingOutOfRange is returned for a rating outside 1..5.
	ErrRatingOutOfRange = fmt.Errorf("la puntuación debe estar entre %d y %d", entity.MinRating, entity.MaxRating)
)

type Coordinates struct {
	Lat float64
	Lng float64
}

// PlaceDraft is the "add place" form. Location stays nil until the user
// picks a point on the map.
type PlaceDraft struct {
	Nombre               string
	Direccion            string
	Location             *Coordinates
	Tipo                 string
	Provincia            string
	Descripcion          string
	EtiquetasSensoriales []string
	Certificacion        string
}

func (d PlaceDraft) missing() []string {
	var out []string
	if strings.TrimSpace(d.Nombre) == "" {
		out = append(out, "nombre")
	}
	if strings.TrimSpace(d.Direccion) == "" {
		out = append(out, "dirección")
	}
	if d.Location == nil {
		out = append(out, "ubicación en el mapa")
	}
	return out
}

type MapScreen struct {
	backend  Backend
	sessions *session.Store

	mu      sync.RWMutex
	places  []entity.Place
	reviews []entity.Review
	filters view.Filters
	sortKey view.SortKey
}

func NewMapScreen(backend Backend, sessions *session.Store) *MapScreen {
	return &MapScreen{backend: backend, sessions: sessions, sortKey: view.SortDefault}
}

// Load fetches places and reviews. Reviews are best effort: without them
// every place shows no rating.
func (m *MapScreen) Load(ctx context.Context) error {
	places, err := m.backend.ListPlaces(ctx)
	if err != nil {
		return message(msgLoadPlacesFailed, err)
	}
	reviews, err := m.backend.ListReviews(ctx, "", "")
	if err != nil {
		logger.Warn("no se pudieron cargar las reseñas: %v", err)
		reviews = nil
	}

	m.mu.Lock()
	m.places = places
	m.reviews = reviews
	m.mu.Unlock()
	return nil
}

func (m *MapScreen) SetFilters(f view.Filters) {
	m.mu.Lock()
	m.filters = f
	m.mu.Unlock()
}

func (m *MapScreen) SetSort(key view.SortKey) {
	m.mu.Lock()
	m.sortKey = key
	m.mu.Unlock()
}

// View derives the visible places for the given filters and order.
func (m *MapScreen) View(f view.Filters, key view.SortKey) view.Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return view.Build(m.places, m.reviews, f, key)
}

// Current is View with the screen's own filters and order.
func (m *MapScreen) Current() view.Result {
	m.mu.RLock()
	f, key := m.filters, m.sortKey
	m.mu.RUnlock()
	return m.View(f, key)
}

// Options lists the categories and regions present in the loaded places.
func (m *MapScreen) Options() (categories, regions []string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return view.Options(m.places)
}

// SubmitPlace creates a place, reloads the list and clears the filters so
// the new place is visible.
func (m *MapScreen) SubmitPlace(ctx context.Context, d PlaceDraft) (entity.Place, error) {
	if missing := d.missing(); len(missing) > 0 {
		return entity.Place{}, message(fmt.Sprintf("Falta completar: %s.", strings.Join(missing, ", ")), nil)
	}

	cert := d.Certificacion
	if cert == "" {
		cert = entity.CertificationCommunity
	}
	tags := d.EtiquetasSensoriales
	if tags == nil {
		tags = []string{}
	}

	created, err := m.backend.CreatePlace(ctx, api.NewPlace{
		Nombre:               strings.TrimSpace(d.Nombre),
		Direccion:            strings.TrimSpace(d.Direccion),
		Latitud:              d.Location.Lat,
		Longitud:             d.Location.Lng,
		Tipo:                 d.Tipo,
		Provincia:            d.Provincia,
		Descripcion:          d.Descripcion,
		EtiquetasSensoriales: tags,
		Certificacion:        cert,
	})
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			reason := api.Message(err, fmt.Sprintf("Error %d", apiErr.Status))
			return entity.Place{}, message("Error al agregar lugar: "+reason, err)
		}
		return entity.Place{}, message(msgServerDown, err)
	}

	if places, err := m.backend.ListPlaces(ctx); err == nil {
		m.mu.Lock()
		m.places = places
		m.mu.Unlock()
	} else {
		logger.Warn("no se pudo recargar la lista de lugares: %v", err)
		m.mu.Lock()
		m.places = append(m.places, created)
		m.mu.Unlock()
	}

	m.SetFilters(view.Filters{})
	return created, nil
}

// Vote adds one vote and swaps the updated place into the list.
func (m *MapScreen) Vote(ctx context.Context, id string) (entity.Place, error) {
	updated, err := m.backend.VotePlace(ctx, id)
	if err != nil {
		return entity.Place{}, message(api.Message(err, "No se pudo registrar el voto."), err)
	}

	m.mu.Lock()
	for i := range m.places {
		if m.places[i].ID == updated.ID {
			m.places[i] = updated
		}
	}
	m.mu.Unlock()
	return updated, nil
}

// SubmitReview needs a session and a rating in range; both are checked
// before any request is made.
func (m *MapScreen) SubmitReview(ctx context.Context, placeID string, rating int, comment string, photo *api.Photo) (entity.Review, error) {
	sess, ok := m.sessions.Current()
	if !ok || placeID == "" {
		return entity.Review{}, message(msgReviewNeedsLogin, nil)
	}
	if rating == 0 {
		return entity.Review{}, ErrNoRating
	}
	if rating < entity.MinRating || rating > entity.MaxRating {
		return entity.Review{}, ErrRatingOutOfRange
	}

	review, err := m.backend.CreateReview(ctx, api.NewReview{
		Lugar:      placeID,
		Usuario:    sess.User.ID,
		Puntuacion: rating,
		Comentario: comment,
	}, photo)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return entity.Review{}, message(msgReviewRejected, err)
		}
		return entity.Review{}, message(msgReviewFailed, err)
	}

	m.mu.Lock()
	m.reviews = append(m.reviews, review)
	m.mu.Unlock()
	return review, nil
}
