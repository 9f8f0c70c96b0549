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

const (
	firestoreUsers   = "usuarios"
	firestorePlaces  = "lugares"
	firestoreReviews = "resenas"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return errors.Conflict("El email ya está registrado")
	} else if !errors.IsNotFound(err) {
		return err
	}

	ref := r.client.Collection(firestoreUsers).NewDoc()
	now := time.Now()
	user.ID = ref.ID
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := ref.Set(ctx, user); err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	iter := r.client.Collection(firestoreUsers).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	users := []*entity.User{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list users", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return nil, errors.Internal("Failed to parse user data", err)
		}
		user.ID = doc.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, errors.NotFound("Usuario", nil)
	}

	doc, err := r.client.Collection(firestoreUsers).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Usuario", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID
	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := r.client.Collection(firestoreUsers).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Usuario", nil)
		}
		return nil, errors.Internal("Failed to query user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID
	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	ref := r.client.Collection(firestoreUsers).Doc(user.ID)
	if _, err := r.GetByID(ctx, user.ID); err != nil {
		return err
	}

	if other, err := r.GetByEmail(ctx, user.Email); err == nil && other.ID != user.ID {
		return errors.Conflict("El email ya está registrado")
	}

	user.UpdatedAt = time.Now()
	if _, err := ref.Set(ctx, user); err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *firestoreUserRepository) Delete(ctx context.Context, id string) (*entity.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.client.Collection(firestoreUsers).Doc(id).Delete(ctx); err != nil {
		return nil, errors.Internal("Failed to delete user", err)
	}
	return user, nil
}
