package session

import "github.com/terryfox-lims/limsclient/pkg/identity"

// ActionType names a state transition.
type ActionType string

const (
	ActionLoginStart   ActionType = "LOGIN_START"
	ActionLoginSuccess ActionType = "LOGIN_SUCCESS"
	ActionLoginFailure ActionType = "LOGIN_FAILURE"
	ActionLogout       ActionType = "LOGOUT"
	ActionSetUser      ActionType = "SET_USER"
	ActionClearError   ActionType = "CLEAR_ERROR"
)

// Action is a request to transition the session state.
type Action struct {
	Type    ActionType
	User    *identity.User
	Token   string
	Message string
}

func LoginStart() Action { return Action{Type: ActionLoginStart} }

func LoginSuccess(user *identity.User, token string) Action {
	return Action{Type: ActionLoginSuccess, User: user, Token: token}
}

func LoginFailure(message string) Action {
	return Action{Type: ActionLoginFailure, Message: message}
}

func Logout() Action { return Action{Type: ActionLogout} }

func SetUser(user *identity.User) Action { return Action{Type: ActionSetUser, User: user} }

func ClearError() Action { return Action{Type: ActionClearError} }

// Reduce returns the state that results from applying a to s.
// Unknown actions leave s unchanged. A user is never stored without a token.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionLoginStart:
		s.IsLoading = true
		s.Error = ""
	case ActionLoginSuccess:
		s.IsLoading = false
		s.Token = a.Token
		s.User = a.User
		s.Error = ""
		if s.Token == "" {
			s.User = nil
		}
	case ActionLoginFailure:
		s.IsLoading = false
		s.User = nil
		s.Token = ""
		s.Error = a.Message
	case ActionLogout:
		s.User = nil
		s.Token = ""
		s.Error = ""
	case ActionSetUser:
		if s.Token != "" {
			s.User = a.User
		}
	case ActionClearError:
		s.Error = ""
	}
	return s
}
