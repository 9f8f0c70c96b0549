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

type mongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(mongodb.UsersCollection),
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	doc := toUserDocument(user)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Conflict("El email ya está registrado")
		}
		return errors.Internal("Failed to create user", err)
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *mongoUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Internal("Failed to list users", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	users := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toEntity())
	}
	return users, nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, ok := objectIDFrom(id)
	if !ok {
		return nil, errors.NotFound("Usuario", nil)
	}

	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoError("Usuario", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, mapMongoError("Usuario", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoUserRepository) Update(ctx context.Context, user *entity.User) error {
	oid, ok := objectIDFrom(user.ID)
	if !ok {
		return errors.NotFound("Usuario", nil)
	}

	user.UpdatedAt = time.Now()
	doc := toUserDocument(user)
	doc.ID = primitive.NilObjectID

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": doc})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Conflict("El email ya está registrado")
		}
		return errors.Internal("Failed to update user", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Usuario", nil)
	}
	return nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id string) (*entity.User, error) {
	oid, ok := objectIDFrom(id)
	if !ok {
		return nil, errors.NotFound("Usuario", nil)
	}

	var doc userDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoError("Usuario", err)
	}
	return doc.toEntity(), nil
}
