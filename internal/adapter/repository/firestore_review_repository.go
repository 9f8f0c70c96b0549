package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/domain/repository"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	ref := r.client.Collection(firestoreReviews).NewDoc()
	review.ID = ref.ID

	if _, err := ref.Set(ctx, review); err != nil {
		return errors.Internal("Failed to create review", err)
	}
	return nil
}

// List filters in the query and orders in memory so no composite index is needed.
func (r *firestoreReviewRepository) List(ctx context.Context, filter entity.ReviewFilter) ([]*entity.Review, error) {
	query := r.client.Collection(firestoreReviews).Query
	if filter.Lugar != "" {
		query = query.Where("lugar", "==", filter.Lugar)
	}
	if filter.Usuario != "" {
		query = query.Where("usuario", "==", filter.Usuario)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	reviews := []*entity.Review{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, errors.Internal("Failed to parse review data", err)
		}
		review.ID = doc.Ref.ID
		reviews = append(reviews, &review)
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreadoEn.Before(reviews[j].CreadoEn)
	})
	return reviews, nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	if id == "" {
		return nil, errors.NotFound("Reseña", nil)
	}

	doc, err := r.client.Collection(firestoreReviews).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Reseña", err)
		}
		return nil, errors.Internal("Failed to get review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}
	review.ID = doc.Ref.ID
	return &review, nil
}

func (r *firestoreReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	if _, err := r.GetByID(ctx, review.ID); err != nil {
		return err
	}

	if _, err := r.client.Collection(firestoreReviews).Doc(review.ID).Set(ctx, review); err != nil {
		return errors.Internal("Failed to update review", err)
	}
	return nil
}

func (r *firestoreReviewRepository) Delete(ctx context.Context, id string) (*entity.Review, error) {
	review, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.client.Collection(firestoreReviews).Doc(id).Delete(ctx); err != nil {
		return nil, errors.Internal("Failed to delete review", err)
	}
	return review, nil
}
