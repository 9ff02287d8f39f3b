package session

import "github.com/terryfox-lims/limsclient/pkg/identity"

// State is a snapshot of the session. Empty strings mean absent.
// User is never mutated after it is stored; treat it as read-only.
type State struct {
	User      *identity.User
	Token     string
	IsLoading bool
	Error     string
}

// IsAuthenticated reports whether both the token and the profile are present.
func (s State) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// RequiresLogin reports whether the login surface should be shown.
func (s State) RequiresLogin() bool {
	return s.Token == "" && s.User == nil
}

// Bootstrapping reports whether a token is held whose profile is not loaded yet.
func (s State) Bootstrapping() bool {
	return s.Token != "" && s.User == nil
}
