package repository

import "context"

// StoreHealth is implemented by every backing store so /health can report it.
type StoreHealth interface {
	Name() string
	Ping(ctx context.Context) error
}
