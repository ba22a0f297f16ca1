package postgres

import (
	"context"

	"github.com/momeni/car-management/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is the type constraint of generic repository functions,
// so they can run on a connection or in a transaction alike.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}
