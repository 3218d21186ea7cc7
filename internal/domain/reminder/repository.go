package reminder

import "context"

// Store is the remote document store the reminders live in. Paths are
// relative to the store root and carry no extension.
type Store interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, record any) error
	Put(ctx context.Context, path string, record any) error
	Delete(ctx context.Context, path string) error
}
