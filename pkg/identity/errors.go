package identity

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/terryfox-lims/limsclient/pkg/httpclient"
)

var (
	// ErrEmptyToken indicates the credential exchange succeeded without returning an access token.
	ErrEmptyToken = errors.New("identity.empty_token")

	// ErrMissingCredentials indicates an empty username or password.
	ErrMissingCredentials = errors.New("identity.missing_credentials")

	// ErrInvalidProfile indicates the current-user endpoint returned an unusable profile.
	ErrInvalidProfile = errors.New("identity.invalid_profile")
)

// APIError is a failed identity call. Detail holds the server-supplied
// human-readable message, when the server sent one.
type APIError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Err.Error()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// wrapError converts an httpclient error into an APIError, extracting the
// {"detail": "..."} message from the response body. Transport errors are
// returned unchanged.
func wrapError(err error) error {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	apiErr := &APIError{StatusCode: httpErr.StatusCode, Err: err}
	var body struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(httpErr.Body, &body) == nil {
		apiErr.Detail = strings.TrimSpace(body.Detail)
	}
	return apiErr
}
