// Package carsrp implements the repo.Cars interface for PostgreSQL
// using GORM. All operations are implemented once as generic functions
// and are exposed on connections and transactions by thin adapters.
package carsrp

import (
	"context"

	"github.com/momeni/car-management/pkg/adapter/db/postgres"
	"github.com/momeni/car-management/pkg/core/model"
	"github.com/momeni/car-management/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (cars *Repo) Conn(c repo.Conn) repo.CarsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, c model.Car) (model.Car, error) {
	return Create(ctx, cq.Conn, c)
}

func (cq connQueryer) List(ctx context.Context) ([]model.Car, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) Find(ctx context.Context, id int64) (model.Car, bool, error) {
	return Find(ctx, cq.Conn, id)
}

func (cq connQueryer) Delete(ctx context.Context, id int64) (int64, error) {
	return Delete(ctx, cq.Conn, id)
}

type txQueryer struct {
	*postgres.Tx
}

func (cars *Repo) Tx(tx repo.Tx) repo.CarsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, c model.Car) (model.Car, error) {
	return Create(ctx, tq.Tx, c)
}

func (tq txQueryer) List(ctx context.Context) ([]model.Car, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) Find(ctx context.Context, id int64) (model.Car, bool, error) {
	return Find(ctx, tq.Tx, id)
}

func (tq txQueryer) Delete(ctx context.Context, id int64) (int64, error) {
	return Delete(ctx, tq.Tx, id)
}
