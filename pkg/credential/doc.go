// Package credential persists the API access token between process runs.
//
// A Store holds a single token in a durable slot addressed by a fixed key. The
// token is written on login, read once at start-up and erased on logout or
// when the server rejects it. Backends:
//
//   - FileStore keeps the token in a 0600 file under the user's config
//     directory (the default).
//   - RedisStore keeps it in a Redis key, for shared or headless deployments.
//   - MemoryStore keeps it in process memory (tests, one-shot runs).
//   - EncryptedStore wraps any Store and seals the token with AES-256-GCM
//     under a key derived from a configured secret.
//
// Use Open to build the backend selected by Config.
package credential
