package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidBaseURL indicates the configured base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("httpclient.invalid_base_url")

	// ErrEncodeBody indicates the request payload could not be marshaled to JSON.
	ErrEncodeBody = errors.New("httpclient.encode_body_failed")

	// ErrDecodeBody indicates the response payload could not be unmarshaled.
	ErrDecodeBody = errors.New("httpclient.decode_body_failed")
)

// HTTPError is returned for responses with a non-2xx status code.
type HTTPError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// IsUnauthorized reports whether err is an HTTPError with status 401.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// StatusCode returns the status code carried by an HTTPError in err's chain, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
