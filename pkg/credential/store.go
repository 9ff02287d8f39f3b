package credential

import "context"

// Store is a single durable slot holding the raw access token.
// Implementations are safe for concurrent use.
type Store interface {
	// Load returns the persisted token, or ErrNotFound when the slot is empty.
	Load(ctx context.Context) (string, error)

	// Save replaces the persisted token.
	Save(ctx context.Context, token string) error

	// Delete empties the slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context) error
}
