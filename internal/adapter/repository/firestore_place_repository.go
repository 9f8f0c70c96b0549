package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

type firestorePlaceRepository struct {
	client *firestore.Client
}

func NewFirestorePlaceRepository(client *firestore.Client) repository.PlaceRepository {
	return &firestorePlaceRepository{
		client: client,
	}
}

func (r *firestorePlaceRepository) Create(ctx context.Context, place *entity.Place) error {
	ref := r.client.Collection(firestorePlaces).NewDoc()
	now := time.Now()
	place.ID = ref.ID
	place.CreatedAt = now
	place.UpdatedAt = now
	if place.EtiquetasSensoriales == nil {
		place.EtiquetasSensoriales = []string{}
	}

	if _, err := ref.Set(ctx, place); err != nil {
		return errors.Internal("Failed to create place", err)
	}
	return nil
}

func (r *firestorePlaceRepository) List(ctx context.Context) ([]*entity.Place, error) {
	iter := r.client.Collection(firestorePlaces).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	places := []*entity.Place{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list places", err)
		}

		place, err := placeFromSnapshot(doc)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	return places, nil
}

func (r *firestorePlaceRepository) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	if id == "" {
		return nil, errors.NotFound("Lugar", nil)
	}

	doc, err := r.client.Collection(firestorePlaces).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Lugar", err)
		}
		return nil, errors.Internal("Failed to get place", err)
	}
	return placeFromSnapshot(doc)
}

func (r *firestorePlaceRepository) Update(ctx context.Context, place *entity.Place) error {
	if _, err := r.GetByID(ctx, place.ID); err != nil {
		return err
	}

	place.UpdatedAt = time.Now()
	if _, err := r.client.Collection(firestorePlaces).Doc(place.ID).Set(ctx, place); err != nil {
		return errors.Internal("Failed to update place", err)
	}
	return nil
}

func (r *firestorePlaceRepository) Delete(ctx context.Context, id string) (*entity.Place, error) {
	place, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.client.Collection(firestorePlaces).Doc(id).Delete(ctx); err != nil {
		return nil, errors.Internal("Failed to delete place", err)
	}
	return place, nil
}

func (r *firestorePlaceRepository) IncrementVotes(ctx context.Context, id string) (*entity.Place, error) {
	if id == "" {
		return nil, errors.NotFound("Lugar", nil)
	}

	_, err := r.client.Collection(firestorePlaces).Doc(id).Update(ctx, []firestore.Update{
		{Path: "votos", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Lugar", err)
		}
		return nil, errors.Internal("Failed to vote place", err)
	}
	return r.GetByID(ctx, id)
}

func placeFromSnapshot(doc *firestore.DocumentSnapshot) (*entity.Place, error) {
	var place entity.Place
	if err := doc.DataTo(&place); err != nil {
		return nil, errors.Internal("Failed to parse place data", err)
	}
	place.ID = doc.Ref.ID
	if place.EtiquetasSensoriales == nil {
		place.EtiquetasSensoriales = []string{}
	}
	return &place, nil
}
