package credential

import "time"

// Backend names accepted by Config.Backend.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures the credential backend.
type Config struct {
	// Backend is one of "file", "memory" or "redis".
	Backend string `env:"CREDENTIAL_BACKEND" envDefault:"file"`

	// Key is the fixed slot name the token is stored under.
	Key string `env:"CREDENTIAL_KEY" envDefault:"token"`

	// Dir is the file backend directory; empty selects DefaultDir.
	Dir string `env:"CREDENTIAL_DIR"`

	// EncryptionSecret enables at-rest encryption of the token when set.
	EncryptionSecret string `env:"CREDENTIAL_ENCRYPTION_SECRET"`

	RedisURL            string        `env:"CREDENTIAL_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix         string        `env:"CREDENTIAL_REDIS_PREFIX" envDefault:"limsclient:"`
	RedisRetryAttempts  int           `env:"CREDENTIAL_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RedisRetryInterval  time.Duration `env:"CREDENTIAL_REDIS_RETRY_INTERVAL" envDefault:"1s"`
	RedisConnectTimeout time.Duration `env:"CREDENTIAL_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// DefaultConfig returns the file backend under DefaultDir with the "token" key.
func DefaultConfig() Config {
	return Config{
		Backend:             BackendFile,
		Key:                 "token",
		RedisURL:            "redis://localhost:6379/0",
		RedisPrefix:         "limsclient:",
		RedisRetryAttempts:  3,
		RedisRetryInterval:  time.Second,
		RedisConnectTimeout: 10 * time.Second,
	}
}
