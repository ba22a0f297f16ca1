package repo

import "context"

type ConnHandler func(context.Context, Conn) error

// Pool represents a database connections pool. Use cases acquire one
// connection per operation with the Conn method and the pool releases
// it when the handler returns.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}
