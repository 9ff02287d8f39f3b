package credential_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terryfox-lims/limsclient/pkg/credential"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("LIMS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("LIMS_TEST_REDIS_URL not set")
	}

	cfg := credential.DefaultConfig()
	cfg.RedisURL = url
	cfg.RedisRetryAttempts = 1

	client, err := credential.ConnectRedis(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store, err := credential.NewRedisStore(client, "limsclient-test:", t.Name())
	require.NoError(t, err)
	assert.Equal(t, "limsclient-test:"+t.Name(), store.Key())

	exerciseStore(t, store)
}

func TestNewRedisStore_Validation(t *testing.T) {
	t.Parallel()

	_, err := credential.NewRedisStore(nil, "p:", "token")
	assert.Error(t, err)
}
