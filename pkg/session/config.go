package session

// Config holds the session manager configuration.
type Config struct {
	// SingleFlightLogin makes concurrent Login calls join the attempt in flight
	// instead of racing with last-write-wins.
	SingleFlightLogin bool `env:"SESSION_SINGLE_FLIGHT_LOGIN" envDefault:"false"`

	// SubscriberBuffer is the channel capacity of each Subscribe call.
	SubscriberBuffer int `env:"SESSION_SUBSCRIBER_BUFFER" envDefault:"16"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{SubscriberBuffer: 16}
}
