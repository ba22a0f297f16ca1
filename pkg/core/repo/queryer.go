package repo

import "context"

// Queryer runs raw SQL statements. It is embedded by both Conn and Tx,
// so schema initializers and tests may run DDL statements without
// depending on the ORM which is used by the repositories.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is the result set of a Query call. It must be closed after use.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
	Values() ([]any, error)
}
