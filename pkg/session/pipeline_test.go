package session_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terryfox-lims/limsclient/pkg/httpclient"
	"github.com/terryfox-lims/limsclient/pkg/session"
)

func TestPipeline_Bearer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f, err := newFixture(t, "")
	require.NoError(t, err)

	get := func() { require.NoError(t, f.api.Get(ctx, "/samples/", nil)) }

	get()
	require.NoError(t, f.mgr.Login(ctx, "alice", "secret"))
	get()
	require.NoError(t, f.mgr.Login(ctx, "carol", "secret"))
	get()
	require.NoError(t, f.mgr.Logout(ctx))
	get()

	assert.Equal(t, []string{
		"",
		"Bearer alice-token",
		"Bearer carol-token",
		"",
	}, f.server.headers())
}

func TestPipeline_ExplicitAuthorizationWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f, err := newFixture(t, "alice-token")
	require.NoError(t, err)

	req, err := f.api.NewRequest(ctx, http.MethodGet, "/samples/", nil, httpclient.WithBearer("carol-token"))
	require.NoError(t, err)
	require.NoError(t, f.api.Do(req, nil))

	assert.Equal(t, []string{"Bearer carol-token"}, f.server.headers())
}

func TestPipeline_UnauthorizedForcesLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f, err := newFixture(t, "alice-token")
	require.NoError(t, err)
	require.True(t, f.mgr.State().IsAuthenticated())

	sub := f.mgr.Subscribe(ctx)
	defer sub.Close()

	err = f.api.Get(ctx, "/expired/", nil)
	require.Error(t, err, "caller still observes the failure")
	assert.True(t, httpclient.IsUnauthorized(err))

	got := drain(sub)
	assert.Equal(t, 1, countActions(got, session.ActionLogout))
	assert.Len(t, got, 1)

	st := f.mgr.State()
	assert.True(t, st.RequiresLogin())
	assert.Empty(t, st.Error, "forced logout is not surfaced as an error")
	assert.Empty(t, persistedToken(t, f.creds))

	require.NoError(t, f.api.Get(ctx, "/samples/", nil))
	assert.Equal(t, []string{""}, f.server.headers())
}

func TestPipeline_UnauthorizedFromAnyEndpoint(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f, err := newFixture(t, "alice-token")
	require.NoError(t, err)

	sub := f.mgr.Subscribe(ctx)
	defer sub.Close()

	// the profile endpoint rejects an unknown explicit token
	_, err = identityCall(f, "revoked-token")
	require.Error(t, err)

	assert.Equal(t, 1, countActions(drain(sub), session.ActionLogout))
	assert.True(t, f.mgr.State().RequiresLogin())
}

func TestPipeline_Teardown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f, err := newFixture(t, "alice-token")
	require.NoError(t, err)

	reqHooks, respHooks := f.api.HookCount()
	assert.Equal(t, 1, reqHooks)
	assert.Equal(t, 1, respHooks)

	require.NoError(t, f.mgr.Start(ctx, f.api))
	reqHooks, respHooks = f.api.HookCount()
	assert.Equal(t, 1, reqHooks, "start installs the pipeline once")
	assert.Equal(t, 1, respHooks)

	require.NoError(t, f.mgr.Close())
	require.NoError(t, f.mgr.Close())
	reqHooks, respHooks = f.api.HookCount()
	assert.Zero(t, reqHooks)
	assert.Zero(t, respHooks)

	require.NoError(t, f.api.Get(ctx, "/samples/", nil))
	assert.Equal(t, []string{""}, f.server.headers())

	err = f.api.Get(ctx, "/expired/", nil)
	require.Error(t, err)
	assert.True(t, f.mgr.State().IsAuthenticated(), "no forced logout after teardown")
}

func TestInstallPipeline_TeardownIdempotent(t *testing.T) {
	t.Parallel()

	f, err := newFixture(t, "")
	require.NoError(t, err)

	p := session.InstallPipeline(f.api, f.mgr)
	reqHooks, _ := f.api.HookCount()
	assert.Equal(t, 2, reqHooks)

	p.Teardown()
	p.Teardown()
	reqHooks, respHooks := f.api.HookCount()
	assert.Equal(t, 1, reqHooks)
	assert.Equal(t, 1, respHooks)
}
