package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/car-management/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SlowThreshold is the duration which makes GORM report a statement
// as a slow query.
const SlowThreshold = 200 * time.Millisecond

// Pool is the GORM-backed implementation of the repo.Pool interface.
type Pool struct {
	*gorm.DB
}

// NewPool opens a pool of connections to the PostgreSQL server which
// is identified by the `url` connection string and ensures that a
// connection can be established.
func NewPool(ctx context.Context, url string) (*Pool, error) {
	return NewPoolWithDialector(ctx, postgres.Open(url))
}

// NewPoolWithDialector is like NewPool, but takes the dialector
// directly. Tests use it to pass a postgres dialector which wraps a
// mocked *sql.DB instance.
func NewPoolWithDialector(
	ctx context.Context, d gorm.Dialector,
) (*Pool, error) {
	gdb, err := gorm.Open(d, &gorm.Config{Logger: newLogger()})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

// newLogger writes GORM warnings (including slow queries) and errors
// using the default slog handler.
func newLogger() logger.Interface {
	w := slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn)
	return logger.New(w, logger.Config{
		SlowThreshold:             SlowThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
		ParameterizedQueries:      true,
	})
}

type ConnHandler = repo.ConnHandler

// NoOpConnHandler ignores the acquired connection. It is useful for
// checking that a connection can be acquired at all.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a dedicated connection and passes it to `f`.
// The connection is released when f returns.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		return f(ctx, &Conn{DB: c})
	})
}

// Close closes the underlying *sql.DB, so all idle connections are
// closed and new connections may not be acquired anymore.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("obtaining *sql.DB: %w", err)
	}
	return db.Close()
}
