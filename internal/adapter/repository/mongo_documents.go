package repository

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	apperrors "github.com/sabrinaansede/apphib/pkg/errors"
)

// Documents keep ObjectID ids and references so collections written by the
// previous Mongoose backend stay readable.

type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Nombre      string             `bson:"nombre"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	Telefono    string             `bson:"telefono"`
	TipoUsuario string             `bson:"tipoUsuario"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type placeDocument struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Nombre               string             `bson:"nombre"`
	Direccion            string             `bson:"direccion"`
	Latitud              float64            `bson:"latitud"`
	Longitud             float64            `bson:"longitud"`
	Tipo                 string             `bson:"tipo"`
	Provincia            string             `bson:"provincia"`
	Descripcion          string             `bson:"descripcion"`
	EtiquetasSensoriales []string           `bson:"etiquetasSensoriales"`
	Certificacion        string             `bson:"certificacion"`
	CertificadoPor       string             `bson:"certificadoPor,omitempty"`
	Votos                int                `bson:"votos"`
	CreadoPor            string             `bson:"creadoPor,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt"`
}

type reviewDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Lugar      primitive.ObjectID `bson:"lugar"`
	Usuario    primitive.ObjectID `bson:"usuario"`
	Puntuacion int                `bson:"puntuacion"`
	Comentario string             `bson:"comentario,omitempty"`
	FotoURL    string             `bson:"fotoUrl,omitempty"`
	CreadoEn   time.Time          `bson:"creadoEn"`
}

func objectIDFrom(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}

func mapMongoError(resource string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound(resource, err)
	}
	return apperrors.Internal("Error al acceder a la base de datos", err)
}

func toUserDocument(u *entity.User) userDocument {
	oid, _ := objectIDFrom(u.ID)
	return userDocument{
		ID:          oid,
		Nombre:      u.Nombre,
		Email:       u.Email,
		Password:    u.Password,
		Telefono:    u.Telefono,
		TipoUsuario: u.TipoUsuario,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (d userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:          hexOrEmpty(d.ID),
		Nombre:      d.Nombre,
		Email:       d.Email,
		Password:    d.Password,
		Telefono:    d.Telefono,
		TipoUsuario: d.TipoUsuario,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toPlaceDocument(p *entity.Place) placeDocument {
	oid, _ := objectIDFrom(p.ID)
	tags := p.EtiquetasSensoriales
	if tags == nil {
		tags = []string{}
	}
	return placeDocument{
		ID:                   oid,
		Nombre:               p.Nombre,
		Direccion:            p.Direccion,
		Latitud:              p.Latitud,
		Longitud:             p.Longitud,
		Tipo:                 p.Tipo,
		Provincia:            p.Provincia,
		Descripcion:          p.Descripcion,
		EtiquetasSensoriales: tags,
		Certificacion:        p.Certificacion,
		Votos:                p.Votos,
		CreadoPor:            p.CreadoPor,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func (d placeDocument) toEntity() *entity.Place {
	cert := d.Certificacion
	if cert == "" {
		cert = d.CertificadoPor
	}
	tags := d.EtiquetasSensoriales
	if tags == nil {
		tags = []string{}
	}
	return &entity.Place{
		ID:                   hexOrEmpty(d.ID),
		Nombre:               d.Nombre,
		Direccion:            d.Direccion,
		Latitud:              d.Latitud,
		Longitud:             d.Longitud,
		Tipo:                 d.Tipo,
		Provincia:            d.Provincia,
		Descripcion:          d.Descripcion,
		EtiquetasSensoriales: tags,
		Certificacion:        cert,
		Votos:                d.Votos,
		CreadoPor:            d.CreadoPor,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

func toReviewDocument(r *entity.Review) (reviewDocument, error) {
	oid, _ := objectIDFrom(r.ID)
	lugar, ok := objectIDFrom(r.Lugar)
	if !ok {
		return reviewDocument{}, apperrors.BadRequest("lugar es inválido", nil)
	}
	usuario, ok := objectIDFrom(r.Usuario)
	if !ok {
		return reviewDocument{}, apperrors.BadRequest("usuario es inválido", nil)
	}
	return reviewDocument{
		ID:         oid,
		Lugar:      lugar,
		Usuario:    usuario,
		Puntuacion: r.Puntuacion,
		Comentario: r.Comentario,
		FotoURL:    r.FotoURL,
		CreadoEn:   r.CreadoEn,
	}, nil
}

func (d reviewDocument) toEntity() *entity.Review {
	return &entity.Review{
		ID:         hexOrEmpty(d.ID),
		Lugar:      hexOrEmpty(d.Lugar),
		Usuario:    hexOrEmpty(d.Usuario),
		Puntuacion: d.Puntuacion,
		Comentario: d.Comentario,
		FotoURL:    d.FotoURL,
		CreadoEn:   d.CreadoEn,
	}
}
