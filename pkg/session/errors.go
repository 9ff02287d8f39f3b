package session

import "errors"

// DefaultLoginFailureMessage is recorded when a failed login carries no message.
const DefaultLoginFailureMessage = "Login failed"

var (
	// ErrLoginFailed matches every error returned by Manager.Login.
	ErrLoginFailed = errors.New("session.login_failed")

	// ErrBootstrapFailed wraps the profile fetch error of a rejected persisted token.
	ErrBootstrapFailed = errors.New("session.bootstrap_failed")

	// ErrNotAuthenticated indicates no user profile is loaded.
	ErrNotAuthenticated = errors.New("session.not_authenticated")

	ErrNoIdentityService = errors.New("session.no_identity_service")
	ErrNoCredentialStore = errors.New("session.no_credential_store")
)

// LoginError is returned by Manager.Login. Message is the text recorded in
// State.Error.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() []error {
	return []error{ErrLoginFailed, e.Err}
}
