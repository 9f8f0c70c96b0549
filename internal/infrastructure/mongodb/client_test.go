package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectRejectsEmptyURI(t *testing.T) {
	store, err := Connect(context.Background(), "", "lugares_seguros")

	assert.Nil(t, store)
	assert.ErrorContains(t, err, "empty connection string")
}

func TestConnectRejectsMalformedURI(t *testing.T) {
	store, err := Connect(context.Background(), "not-a-mongo-uri", "lugares_seguros")

	assert.Nil(t, store)
	assert.Error(t, err)
}
