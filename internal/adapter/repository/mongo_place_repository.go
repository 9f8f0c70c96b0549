package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/internal/infrastructure/mongodb"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

type mongoPlaceRepository struct {
	collection *mongo.Collection
}

func NewMongoPlaceRepository(db *mongo.Database) repository.PlaceRepository {
	return &mongoPlaceRepository{
		collection: db.Collection(mongodb.PlacesCollection),
	}
}

func (r *mongoPlaceRepository) Create(ctx context.Context, place *entity.Place) error {
	now := time.Now()
	doc := toPlaceDocument(place)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return errors.Internal("Failed to create place", err)
	}

	place.ID = doc.ID.Hex()
	place.EtiquetasSensoriales = doc.EtiquetasSensoriales
	place.CreatedAt = now
	place.UpdatedAt = now
	return nil
}

func (r *mongoPlaceRepository) List(ctx context.Context) ([]*entity.Place, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Internal("Failed to list places", err)
	}

	var docs []placeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("Failed to parse place data", err)
	}

	places := make([]*entity.Place, 0, len(docs))
	for _, d := range docs {
		places = append(places, d.toEntity())
	}
	return places, nil
}

func (r *mongoPlaceRepository) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	oid, ok := objectIDFrom(id)
	if !ok {
		return nil, errors.NotFound("Lugar", nil)
	}

	var doc placeDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoError("Lugar", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoPlaceRepository) Update(ctx context.Context, place *entity.Place) error {
	oid, ok := objectIDFrom(place.ID)
	if !ok {
		return errors.NotFound("Lugar", nil)
	}

	place.UpdatedAt = time.Now()
	doc := toPlaceDocument(place)
	doc.ID = primitive.NilObjectID

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": doc})
	if err != nil {
		return errors.Internal("Failed to update place", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Lugar", nil)
	}
	return nil
}

func (r *mongoPlaceRepository) Delete(ctx context.Context, id string) (*entity.Place, error) {
	oid, ok := objectIDFrom(id)
	if !ok {
		return nil, errors.NotFound("Lugar", nil)
	}

	var doc placeDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoError("Lugar", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoPlaceRepository) IncrementVotes(ctx context.Context, id string) (*entity.Place, error) {
	oid, ok := objectIDFrom(id)
	if !ok {
		return nil, errors.NotFound("Lugar", nil)
	}

	update := bson.M{
		"$inc": bson.M{"votos": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc placeDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, mapMongoError("Lugar", err)
	}
	return doc.toEntity(), nil
}
