package database

import "context"

// TxManager runs a function inside a single database transaction. Services
// depend on this interface so the engine can be exercised without Postgres.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
