package repo

import (
	"context"

	"github.com/momeni/car-management/pkg/core/model"
)

type CarsConnQueryer interface {
	CarsQueryer
}

type CarsTxQueryer interface {
	CarsQueryer
}

// CarsQueryer lists the operations of the cars repository. They
// may run on a connection or in an ongoing transaction.
type CarsQueryer interface {
	// Create inserts the `c` car and returns it with the ID which is
	// assigned by the database. The c.ID must be zero.
	Create(ctx context.Context, c model.Car) (model.Car, error)

	// List returns all stored cars, ordered by their IDs.
	List(ctx context.Context) ([]model.Car, error)

	// Find returns the car with the given ID. If there is no such car,
	// a false boolean and a nil error will be returned.
	Find(ctx context.Context, id int64) (model.Car, bool, error)

	// Delete removes the car with the given ID (if any) and returns
	// the number of removed rows.
	Delete(ctx context.Context, id int64) (int64, error)
}

type Cars interface {
	Conn(Conn) CarsConnQueryer
	Tx(Tx) CarsTxQueryer
}
