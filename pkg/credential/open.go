package credential

import (
	"context"
	"fmt"
	"strings"
)

// Open builds the Store selected by cfg. The returned close function releases
// backend resources (the Redis connection) and is never nil.
func Open(ctx context.Context, cfg Config) (Store, func() error, error) {
	noop := func() error { return nil }

	var (
		store   Store
		closeFn = noop
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendFile, "":
		fs, err := NewFileStore(cfg.Dir, cfg.Key)
		if err != nil {
			return nil, noop, err
		}
		store = fs
	case BackendMemory:
		store = NewMemoryStore("")
	case BackendRedis:
		client, err := ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		rs, err := NewRedisStore(client, cfg.RedisPrefix, cfg.Key)
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		store = rs
		closeFn = client.Close
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if cfg.EncryptionSecret != "" {
		es, err := NewEncryptedStore(store, []byte(cfg.EncryptionSecret), cfg.Key)
		if err != nil {
			_ = closeFn()
			return nil, noop, err
		}
		store = es
	}

	return store, closeFn, nil
}
