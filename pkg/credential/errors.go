package credential

import "errors"

var (
	// ErrNotFound indicates the slot holds no token.
	ErrNotFound = errors.New("credential.not_found")

	// ErrEmptyToken indicates an attempt to persist an empty token.
	ErrEmptyToken = errors.New("credential.empty_token")

	// ErrUnknownBackend indicates Config.Backend names no supported backend.
	ErrUnknownBackend = errors.New("credential.unknown_backend")

	// ErrInvalidKey indicates an empty slot key or encryption secret.
	ErrInvalidKey = errors.New("credential.invalid_key")

	// ErrCorrupted indicates a persisted token could not be decrypted or decoded.
	ErrCorrupted = errors.New("credential.corrupted")

	// ErrRedisNotReady indicates Redis did not answer within the connect timeout.
	ErrRedisNotReady = errors.New("credential.redis_not_ready")

	// ErrInvalidRedisURL indicates the Redis connection URL could not be parsed.
	ErrInvalidRedisURL = errors.New("credential.invalid_redis_url")
)
