package ports

import "context"

// UnitOfWork defines transaction boundaries for the application layer.
//
// Execute runs fn inside a database transaction: the context passed to fn
// carries the transaction, and every repository call inside fn must use that
// context. A nil return commits; an error rolls back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
