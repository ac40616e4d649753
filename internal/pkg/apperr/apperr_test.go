//go:build unit
// +build unit

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("SHOW_NOT_FOUND", "Stück nicht gefunden")))
	assert.Equal(t, http.StatusForbidden, StatusOf(fmt.Errorf("wrapped: %w", Forbidden("Keine Berechtigung"))))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestError_WrapAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Conflict("DUPLICATE", "Existiert bereits").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, HasCode(err, "DUPLICATE"))
	assert.False(t, HasCode(cause, "DUPLICATE"))
}

func TestError_WithDetailsCopies(t *testing.T) {
	details := map[string]any{"field": "amount"}
	base := Validation("Ungültige Eingabe", nil)
	withDetails := base.WithDetails(details)
	details["field"] = "changed"

	require.NotNil(t, withDetails)
	assert.Nil(t, base.Details)
	assert.Equal(t, "amount", withDetails.Details["field"])
}
