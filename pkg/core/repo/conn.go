package repo

import "context"

type TxHandler func(context.Context, Tx) error

// Conn represents a single database connection which is acquired from
// a Pool. Statements which are executed directly on a Conn are
// auto-committed, while the Tx method runs `handler` in a transaction
// which commits if handler returns nil and rolls back otherwise.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}
