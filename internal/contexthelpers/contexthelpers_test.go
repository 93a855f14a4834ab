package contexthelpers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/myrjola/jurassictravel/internal/contexthelpers"
	"github.com/stretchr/testify/assert"
)

func TestContextHelpers(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	ctx := r.Context()
	assert.Empty(t, contexthelpers.CurrentPath(ctx))
	assert.Empty(t, contexthelpers.CSRFToken(ctx))
	assert.Empty(t, contexthelpers.CSPNonce(ctx))

	r = contexthelpers.SetCurrentPath(r, "/bookings")
	r = contexthelpers.SetCSRFToken(r, "token")
	r = contexthelpers.SetCSPNonce(r, "nonce")
	ctx = r.Context()
	assert.Equal(t, "/bookings", contexthelpers.CurrentPath(ctx))
	assert.Equal(t, "token", contexthelpers.CSRFToken(ctx))
	assert.Equal(t, "nonce", contexthelpers.CSPNonce(ctx))
}
