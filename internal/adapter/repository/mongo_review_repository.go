package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/internal/infrastructure/mongodb"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

type mongoReviewRepository struct {
	collection *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &mongoReviewRepository{
		collection: db.Collection(mongodb.ReviewsCollection),
	}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	doc, err := toReviewDocument(review)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return errors.Internal("Failed to create review", err)
	}

	review.ID = doc.ID.Hex()
	return nil
}

// reviewQuery turns the optional filter into a bson query. A malformed id can
// never match a stored reference, so it reports ok=false and callers return an
// empty list.
func reviewQuery(filter entity.ReviewFilter) (bson.M, bool) {
	query := bson.M{}
	if filter.Lugar != "" {
		oid, ok := objectIDFrom(filter.Lugar)
		if !ok {
			return nil, false
		}
		query["lugar"] = oid
	}
	if filter.Usuario != "" {
		oid, ok := objectIDFrom(filter.Usuario)
		if !ok {
			return nil, false
		}
		query["usuario"] = oid
	}
	return query, true
}

func (r *mongoReviewRepository) List(ctx context.Context, filter entity.ReviewFilter) ([]*entity.Review, error) {
	query, ok := reviewQuery(filter)
	if !ok {
		return []*entity.Review{}, nil
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Internal("Failed to list reviews", err)
	}

	var docs []reviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}

	reviews := make([]*entity.Review, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, d.toEntity())
	}
	return reviews, nil
}

func (r *mongoReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	oid, ok := objectIDFrom(id)
	if !ok {
		return nil, errors.NotFound("Reseña", nil)
	}

	var doc reviewDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoError("Reseña", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	oid, ok := objectIDFrom(review.ID)
	if !ok {
		return errors.NotFound("Reseña", nil)
	}

	doc, err := toReviewDocument(review)
	if err != nil {
		return err
	}
	doc.ID = primitive.NilObjectID

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": doc})
	if err != nil {
		return errors.Internal("Failed to update review", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Reseña", nil)
	}
	return nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id string) (*entity.Review, error) {
	oid, ok := objectIDFrom(id)
	if !ok {
		return nil, errors.NotFound("Reseña", nil)
	}

	var doc reviewDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoError("Reseña", err)
	}
	return doc.toEntity(), nil
}
