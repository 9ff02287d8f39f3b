package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terryfox-lims/limsclient/pkg/credential"
	"github.com/terryfox-lims/limsclient/pkg/httpclient"
	"github.com/terryfox-lims/limsclient/pkg/identity"
	"github.com/terryfox-lims/limsclient/pkg/session"
)

var (
	alice = &identity.User{
		ID:          1,
		Username:    "alice",
		Groups:      []string{"editor"},
		Permissions: identity.Permissions{CanEdit: true, IsPI: true},
	}
	carol = &identity.User{
		ID:          3,
		Username:    "carol",
		Groups:      []string{"viewer"},
		Permissions: identity.Permissions{IsViewer: true},
	}
)

// limsServer fakes the identity endpoints plus two data endpoints.
type limsServer struct {
	*httptest.Server

	mu           sync.Mutex
	authHeaders  []string
	profileCalls atomic.Int32
}

func newLIMSServer(t *testing.T) *limsServer {
	t.Helper()

	s := &limsServer{}
	users := map[string]*identity.User{"alice-token": alice, "carol-token": carol}
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		assert.NoError(t, json.NewEncoder(w).Encode(v))
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/token/", func(w http.ResponseWriter, r *http.Request) {
			var body struct{ Username, Password string }
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body.Password == "secret" && (body.Username == "alice" || body.Username == "carol") {
				writeJSON(w, http.StatusOK, map[string]string{
					"access":  body.Username + "-token",
					"refresh": body.Username + "-refresh",
				})
				return
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		})
		r.Get("/users/me/", func(w http.ResponseWriter, r *http.Request) {
			s.profileCalls.Add(1)
			const prefix = "Bearer "
			auth := r.Header.Get("Authorization")
			if len(auth) > len(prefix) {
				if u, ok := users[auth[len(prefix):]]; ok {
					writeJSON(w, http.StatusOK, u)
					return
				}
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
		})
		r.Get("/samples/", func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			s.authHeaders = append(s.authHeaders, r.Header.Get("Authorization"))
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, []string{})
		})
		r.Get("/expired/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is expired"})
		})
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func (s *limsServer) headers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authHeaders...)
}

type fixture struct {
	server *limsServer
	api    *httpclient.Client
	creds  *credential.MemoryStore
	mgr    *session.Manager
}

// newFixture wires a Manager to the fake server, seeded with persisted, and
// starts it. The bootstrap error is returned for inspection.
func newFixture(t *testing.T, persisted string, opts ...session.Option) (*fixture, error) {
	t.Helper()

	server := newLIMSServer(t)
	api, err := httpclient.New(server.URL + "/api")
	require.NoError(t, err)

	creds := credential.NewMemoryStore(persisted)
	mgr, err := session.New(context.Background(), identity.NewClient(api), creds, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })

	startErr := mgr.Start(context.Background(), api)
	return &fixture{server: server, api: api, creds: creds, mgr: mgr}, startErr
}

func persistedToken(t *testing.T, creds credential.Store) string {
	t.Helper()
	token, err := creds.Load(context.Background())
	if errors.Is(err, credential.ErrNotFound) {
		return ""
	}
	require.NoError(t, err)
	return token
}

// drain returns the transitions buffered on sub without blocking.
func drain(sub *session.Subscription) []session.Transition {
	var out []session.Transition
	for {
		select {
		case t, ok := <-sub.Updates():
			if !ok {
				return out
			}
			out = append(out, t)
		default:
			return out
		}
	}
}

func countActions(ts []session.Transition, typ session.ActionType) int {
	n := 0
	for _, t := range ts {
		if t.Action.Type == typ {
			n++
		}
	}
	return n
}

// fakeIdentity is an in-process IdentityService with optional blocking points.
type fakeIdentity struct {
	obtainCalls  atomic.Int32
	profileCalls atomic.Int32

	// obtainGate, when set for a username, blocks ObtainToken until closed.
	obtainGate  map[string]chan struct{}
	obtainEnter chan string

	// profileGate, when set for a token, blocks CurrentUser until closed.
	profileGate  map[string]chan struct{}
	profileEnter chan string

	profileErr error
}

func (f *fakeIdentity) ObtainToken(ctx context.Context, username, password string) (string, error) {
	f.obtainCalls.Add(1)
	if gate, ok := f.obtainGate[username]; ok {
		if f.obtainEnter != nil {
			f.obtainEnter <- username
		}
		<-gate
	}
	if password != "secret" {
		return "", &identity.APIError{StatusCode: http.StatusUnauthorized, Detail: "Invalid credentials", Err: errors.New("request failed with status code 401")}
	}
	return username + "-token", nil
}

func (f *fakeIdentity) CurrentUser(ctx context.Context, token string) (*identity.User, error) {
	f.profileCalls.Add(1)
	if gate, ok := f.profileGate[token]; ok {
		if f.profileEnter != nil {
			f.profileEnter <- token
		}
		<-gate
	}
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	switch token {
	case "alice-token", "old-alice-token":
		return alice, nil
	case "carol-token":
		return carol, nil
	}
	return nil, &identity.APIError{StatusCode: http.StatusUnauthorized, Err: errors.New("request failed with status code 401")}
}

// brokenStore returns the configured errors and counts deletes.
type brokenStore struct {
	loadErr   error
	saveErr   error
	deleteErr error
	deletes   atomic.Int32
}

func (b *brokenStore) Load(ctx context.Context) (string, error) {
	if b.loadErr != nil {
		return "", b.loadErr
	}
	return "", credential.ErrNotFound
}

func (b *brokenStore) Save(ctx context.Context, token string) error { return b.saveErr }

func (b *brokenStore) Delete(ctx context.Context) error {
	b.deletes.Add(1)
	return b.deleteErr
}

func identityCall(f *fixture, token string) (any, error) {
	return identity.NewClient(f.api).CurrentUser(context.Background(), token)
}
