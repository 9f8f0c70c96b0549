package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundMessageAndStatus(t *testing.T) {
	err := NotFound("Lugar", nil)

	assert.Equal(t, "Lugar no encontrado", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, IsNotFound(err))
}

func TestIsSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("repository: %w", Conflict("El email ya está registrado"))

	assert.True(t, Is(wrapped, CodeConflict))
	assert.False(t, Is(wrapped, CodeNotFound))
	assert.False(t, Is(assert.AnError, CodeConflict))
}

func TestUnwrapKeepsCause(t *testing.T) {
	err := Internal("falló la base de datos", assert.AnError)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
}
