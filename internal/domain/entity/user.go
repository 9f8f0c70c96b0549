package entity

import (
	"time"
)

const (
	UserTypeParent = "padre"
	UserTypePerson = "persona"
)

// User never serialises its password hash.
type User struct {
	ID          string    `json:"_id" firestore:"id"`
	Nombre      string    `json:"nombre" firestore:"nombre"`
	Email       string    `json:"email" firestore:"email"`
	Password    string    `json:"-" firestore:"password"`
	Telefono    string    `json:"telefono" firestore:"telefono"`
	TipoUsuario string    `json:"tipoUsuario" firestore:"tipoUsuario"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}
