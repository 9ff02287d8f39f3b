package httpclient

import "time"

// Config holds the HTTP client configuration.
type Config struct {
	// BaseURL is the API root every relative request path is resolved against.
	BaseURL string `env:"API_URL" envDefault:"https://localhost:443/api"`

	// Timeout bounds a single request including reading the response body.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`

	// InsecureSkipVerify disables TLS certificate checks (self-signed development servers only).
	InsecureSkipVerify bool `env:"API_INSECURE_TLS" envDefault:"false"`

	// UserAgent is sent with every request.
	UserAgent string `env:"API_USER_AGENT" envDefault:"limsclient/1.0"`
}

// DefaultConfig returns the development defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://localhost:443/api",
		Timeout:   30 * time.Second,
		UserAgent: "limsclient/1.0",
	}
}
