package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type FirestoreHealth struct {
	Client *firestore.Client
}

func (h FirestoreHealth) Name() string { return "firestore" }

// Ping reads at most one place document.
func (h FirestoreHealth) Ping(ctx context.Context) error {
	iter := h.Client.Collection(firestorePlaces).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}
