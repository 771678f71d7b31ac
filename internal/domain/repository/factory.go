package repository

import "context"

// Factory describes access to domain repositories backed by one store.
type Factory interface {
	Users() UserRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
