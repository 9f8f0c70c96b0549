package entity

import (
	"time"
)

// Certification sources. Anything other than APADEA counts as community-vetted.
const (
	CertificationAPADEA    = "APADEA"
	CertificationCommunity = "Comunidad"
)

type Place struct {
	ID                   string    `json:"_id" firestore:"id"`
	Nombre               string    `json:"nombre" firestore:"nombre"`
	Direccion            string    `json:"direccion" firestore:"direccion"`
	Latitud              float64   `json:"latitud" firestore:"latitud"`
	Longitud             float64   `json:"longitud" firestore:"longitud"`
	Tipo                 string    `json:"tipo" firestore:"tipo"`
	Provincia            string    `json:"provincia" firestore:"provincia"`
	Descripcion          string    `json:"descripcion" firestore:"descripcion"`
	EtiquetasSensoriales []string  `json:"etiquetasSensoriales" firestore:"etiquetasSensoriales"`
	Certificacion        string    `json:"certificacion" firestore:"certificacion"`
	Votos                int       `json:"votos" firestore:"votos"`
	CreadoPor            string    `json:"creadoPor,omitempty" firestore:"creadoPor,omitempty"`
	CreatedAt            time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Certification normalises legacy and empty values.
func (p *Place) Certification() string {
	if p.Certificacion == CertificationAPADEA {
		return CertificationAPADEA
	}
	return CertificationCommunity
}
