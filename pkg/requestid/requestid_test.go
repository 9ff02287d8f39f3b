package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terryfox-lims/limsclient/pkg/requestid"
)

func TestStamp(t *testing.T) {
	t.Parallel()

	t.Run("generates a UUID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
		require.NoError(t, requestid.Stamp(req))
		_, err := uuid.Parse(req.Header.Get(requestid.Header))
		assert.NoError(t, err)
	})

	t.Run("uses id from context", func(t *testing.T) {
		ctx := requestid.WithContext(context.Background(), "cli-run-42")
		req := httptest.NewRequest(http.MethodGet, "/users/me/", nil).WithContext(ctx)
		require.NoError(t, requestid.Stamp(req))
		assert.Equal(t, "cli-run-42", req.Header.Get(requestid.Header))
	})

	t.Run("keeps a valid caller header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
		req.Header.Set(requestid.Header, "explicit_id")
		require.NoError(t, requestid.Stamp(req))
		assert.Equal(t, "explicit_id", req.Header.Get(requestid.Header))
	})

	t.Run("replaces invalid ids", func(t *testing.T) {
		ctx := requestid.WithContext(context.Background(), strings.Repeat("a", 129))
		req := httptest.NewRequest(http.MethodGet, "/users/me/", nil).WithContext(ctx)
		req.Header.Set(requestid.Header, "bad id\n")
		require.NoError(t, requestid.Stamp(req))
		_, err := uuid.Parse(req.Header.Get(requestid.Header))
		assert.NoError(t, err)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Empty(t, requestid.FromContext(nil)) //nolint:staticcheck // nil context is handled

	ctx, id := requestid.WithNew(context.Background())
	assert.Equal(t, id, requestid.FromContext(ctx))

	attr, ok := requestid.LoggerExtractor()(ctx)
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, id, attr.Value.String())

	_, ok = requestid.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
