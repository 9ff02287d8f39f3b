package session

import "log/slog"

// Option configures a Manager.
type Option func(*Manager)

// WithConfig replaces the configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSingleFlightLogin makes concurrent Login calls share one attempt.
func WithSingleFlightLogin() Option {
	return func(m *Manager) {
		m.config.SingleFlightLogin = true
	}
}

// WithSubscriberBuffer sets the per-subscriber channel capacity.
func WithSubscriberBuffer(n int) Option {
	return func(m *Manager) {
		m.config.SubscriberBuffer = n
	}
}
