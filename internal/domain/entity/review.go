package entity

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review references its place and author by id; neither reference is enforced by the store.
type Review struct {
	ID         string    `json:"_id" firestore:"id"`
	Lugar      string    `json:"lugar" firestore:"lugar"`
	Usuario    string    `json:"usuario" firestore:"usuario"`
	Puntuacion int       `json:"puntuacion" firestore:"puntuacion"`
	Comentario string    `json:"comentario,omitempty" firestore:"comentario,omitempty"`
	FotoURL    string    `json:"fotoUrl,omitempty" firestore:"fotoUrl,omitempty"`
	CreadoEn   time.Time `json:"creadoEn" firestore:"creadoEn"`
}

type ReviewFilter struct {
	Lugar   string
	Usuario string
}
