package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/terryfox-lims/limsclient/pkg/credential"
	"github.com/terryfox-lims/limsclient/pkg/identity"
	"github.com/terryfox-lims/limsclient/pkg/logger"
)

// IdentityService is the remote identity contract used by the Manager.
type IdentityService interface {
	ObtainToken(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*identity.User, error)
}

const loginFlightKey = "login"

// Manager runs login, logout and bootstrap against a Store. It is safe for
// concurrent use.
type Manager struct {
	store       *Store
	identity    IdentityService
	credentials credential.Store
	config      Config
	logger      *slog.Logger

	// credMu serializes access to the persisted credential slot.
	credMu sync.Mutex

	logins        singleflight.Group
	bootstrapping atomic.Bool

	pipelineMu sync.Mutex
	pipeline   *Pipeline
}

// New reads the persisted credential once and returns a Manager seeded with
// it. An unreadable credential is erased and the session starts logged out.
func New(ctx context.Context, ids IdentityService, creds credential.Store, opts ...Option) (*Manager, error) {
	if ids == nil {
		return nil, ErrNoIdentityService
	}
	if creds == nil {
		return nil, ErrNoCredentialStore
	}

	m := &Manager{
		identity:    ids,
		credentials: creds,
		config:      DefaultConfig(),
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("session"))

	token, err := creds.Load(ctx)
	switch {
	case errors.Is(err, credential.ErrNotFound):
		token = ""
	case err != nil:
		m.logger.WarnContext(ctx, "discarding unreadable credential", logger.Error(err))
		token = ""
		if derr := creds.Delete(ctx); derr != nil {
			m.logger.WarnContext(ctx, "failed to erase credential", logger.Error(derr))
		}
	}

	m.store = NewStore(token, m.config.SubscriberBuffer)
	return m, nil
}

// State returns the current session snapshot.
func (m *Manager) State() State {
	return m.store.Snapshot()
}

// Token returns the current token, or "".
func (m *Manager) Token() string {
	return m.store.Token()
}

// Subscribe streams state transitions until ctx is done.
func (m *Manager) Subscribe(ctx context.Context) *Subscription {
	return m.store.Subscribe(ctx)
}

// CurrentUser returns the loaded profile or ErrNotAuthenticated.
func (m *Manager) CurrentUser() (*identity.User, error) {
	st := m.store.Snapshot()
	if st.User == nil {
		return nil, ErrNotAuthenticated
	}
	return st.User, nil
}

// Login exchanges username and password for a token, persists it and loads
// the profile with that token. On failure the state records the message and
// a *LoginError is returned.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if !m.config.SingleFlightLogin {
		return m.login(ctx, username, password)
	}
	_, err, shared := m.logins.Do(loginFlightKey, func() (any, error) {
		return nil, m.login(ctx, username, password)
	})
	if shared {
		m.logger.DebugContext(ctx, "joined login in flight", logger.Username(username))
	}
	return err
}

func (m *Manager) login(ctx context.Context, username, password string) error {
	m.store.Dispatch(LoginStart())

	token, err := m.identity.ObtainToken(ctx, username, password)
	if err != nil {
		return m.loginFailed(ctx, username, err)
	}

	m.credMu.Lock()
	err = m.credentials.Save(ctx, token)
	m.credMu.Unlock()
	if err != nil {
		return m.loginFailed(ctx, username, err)
	}

	user, err := m.identity.CurrentUser(ctx, token)
	if err != nil {
		return m.loginFailed(ctx, username, err)
	}

	m.store.Dispatch(LoginSuccess(user, token))
	m.logger.InfoContext(ctx, "login succeeded", logger.Username(user.Username), logger.UserID(user.ID))
	return nil
}

func (m *Manager) loginFailed(ctx context.Context, username string, cause error) error {
	m.credMu.Lock()
	derr := m.credentials.Delete(ctx)
	m.credMu.Unlock()
	if derr != nil {
		m.logger.WarnContext(ctx, "failed to erase credential", logger.Error(derr))
	}

	msg := loginFailureMessage(cause)
	m.store.Dispatch(LoginFailure(msg))
	m.logger.WarnContext(ctx, "login failed", logger.Username(username), logger.Error(cause))
	return &LoginError{Message: msg, Err: cause}
}

// loginFailureMessage prefers the server detail, then the error text.
func loginFailureMessage(err error) string {
	var apiErr *identity.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return DefaultLoginFailureMessage
}

// Logout erases the persisted credential and clears the session. It always
// transitions the state; a storage error is logged and returned.
func (m *Manager) Logout(ctx context.Context) error {
	m.credMu.Lock()
	err := m.credentials.Delete(ctx)
	m.credMu.Unlock()

	m.store.Dispatch(Logout())
	if err != nil {
		m.logger.WarnContext(ctx, "failed to erase credential", logger.Error(err))
	}
	return err
}

// ClearError dismisses the last login error.
func (m *Manager) ClearError() {
	m.store.Dispatch(ClearError())
}

// Bootstrap loads the profile for a persisted token. It does nothing when no
// token is held, the profile is already loaded, or another bootstrap is
// running. A failed fetch erases the token and logs the session out; the
// returned error wraps ErrBootstrapFailed.
func (m *Manager) Bootstrap(ctx context.Context) error {
	if !m.bootstrapping.CompareAndSwap(false, true) {
		return nil
	}
	defer m.bootstrapping.Store(false)

	st := m.store.Snapshot()
	if !st.Bootstrapping() {
		return nil
	}
	token := st.Token

	user, err := m.identity.CurrentUser(ctx, token)
	if err != nil {
		m.discardToken(ctx, token)
		m.logger.WarnContext(ctx, "persisted session rejected", logger.Error(err))
		return errors.Join(ErrBootstrapFailed, err)
	}

	sameSession := func(s State) bool { return s.Token == token && s.User == nil }
	if _, ok := m.store.dispatchIf(SetUser(user), sameSession); !ok {
		m.logger.DebugContext(ctx, "discarding stale bootstrap profile", logger.Username(user.Username))
		return nil
	}
	m.logger.InfoContext(ctx, "session restored", logger.Username(user.Username), logger.UserID(user.ID))
	return nil
}

// discardToken logs out the session holding token. Nothing happens when a
// different session has taken its place.
func (m *Manager) discardToken(ctx context.Context, token string) {
	m.credMu.Lock()
	defer m.credMu.Unlock()

	if persisted, err := m.credentials.Load(ctx); err == nil && persisted == token {
		if err := m.credentials.Delete(ctx); err != nil {
			m.logger.WarnContext(ctx, "failed to erase credential", logger.Error(err))
		}
	}
	m.store.dispatchIf(Logout(), func(s State) bool { return s.Token == token })
}

// Start installs the interceptor pipeline on client, once, and bootstraps
// the persisted session.
func (m *Manager) Start(ctx context.Context, client Interceptable) error {
	m.pipelineMu.Lock()
	if m.pipeline == nil && client != nil {
		m.pipeline = InstallPipeline(client, m)
	}
	m.pipelineMu.Unlock()

	return m.Bootstrap(ctx)
}

// Close removes the interceptor pipeline and ends all subscriptions.
func (m *Manager) Close() error {
	m.pipelineMu.Lock()
	if m.pipeline != nil {
		m.pipeline.Teardown()
		m.pipeline = nil
	}
	m.pipelineMu.Unlock()

	m.store.Close()
	return nil
}
