package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError_WrapKeepsIdentity(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("load profile: %w", ErrPreferenceStore.Wrap(cause))

	assert.True(t, errors.Is(err, ErrPreferenceStore))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrCatalogUnavailable))

	ce := AsCustomError(err)
	assert.Equal(t, http.StatusServiceUnavailable, ce.Status)
	assert.Equal(t, "PREFERENCE_STORE_ERROR", ce.Response(false).Code)
	assert.Empty(t, ce.Response(false).Details)
	assert.Equal(t, cause.Error(), ce.Response(true).Details)
}

func TestAsCustomError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, AsCustomError(NewValidationError("bad")).Status)
	assert.Equal(t, http.StatusInternalServerError, AsCustomError(errors.New("boom")).Status)
	assert.Equal(t, http.StatusNotFound, AsCustomError(ErrTenantNotFound).Status)
}

func TestStableID(t *testing.T) {
	assert.Equal(t, StableID("Green Eatery", "Kasturi"), StableID("Green Eatery", "Kasturi"))
	assert.NotEqual(t, StableID("Green Eatery", "Kasturi"), StableID("Green Eatery/Kasturi", ""))
	assert.Len(t, GenerateUUID(), 36)
}
