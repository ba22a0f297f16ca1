// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sch1 provides database schema major version 1 verification
// logic. This implementation may be instantiated indirectly using
// the github.com/momeni/car-management/internal/test/schema package.
package sch1

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/car-management/pkg/adapter/db/postgres/migration/settle/stlmig1"
	"github.com/momeni/car-management/pkg/core/model"
	"github.com/momeni/car-management/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These constants present the relevant major, minor, and patch semantic
// versions of this schema verifier package. They are initialized based
// on the stlmig1 package because whenever a new minor version is
// released, the stlmig1 has to be updated based on it and this verifier
// needs to verify its updated changes too.
const (
	Major = stlmig1.Major
	Minor = stlmig1.Minor
	Patch = stlmig1.Patch
)

// checkViolation is the SQLSTATE of a failed CHECK constraint.
const checkViolation = "23514"

var errRollback = errors.New("rollback verification changes")

// Verifier implements the schema major version 1 verification logic.
// It wraps a database connection as noted in New function.
type Verifier struct {
	c repo.Conn // database connection which is used for testing
}

// New instantiates a Verifier struct, wrapping the `c` database
// connection.
func New(c repo.Conn) *Verifier {
	return &Verifier{c}
}

// VerifySchema inserts temporary cars in a transaction which is rolled
// back eventually, ensuring that the cars table assigns distinct IDs
// and rejects the rows which violate the car constraints.
// This process failures are reported using the `t` testing argument.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	const ins = `INSERT INTO cars(marca, model, an, pret)
VALUES ($1, $2, $3, $4) RETURNING id`
	err := v.c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		id1 := insertedID(ctx, t, tx, ins, "Dacia", "Logan", 2015, 5000.0)
		id2 := insertedID(ctx, t, tx, ins, "Dacia", "Logan", 2015, 5000.0)
		assert.NotEqual(t, id1, id2, "IDs must be distinct")
		_, err := tx.Exec(ctx, ins, "Tesla", "Model 3", 1800, 40000.0)
		var pgErr *pgconn.PgError
		if assert.ErrorAs(t, err, &pgErr, "year 1800 was accepted") {
			assert.Equal(t, checkViolation, pgErr.SQLState())
		}
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)
}

func insertedID(
	ctx context.Context, t *testing.T, q repo.Queryer,
	sql string, args ...any,
) (id int64) {
	rows, err := q.Query(ctx, sql, args...)
	require.NoError(t, err, "inserting a car")
	defer rows.Close()
	require.True(t, rows.Next(), "expected one returned id")
	require.NoError(t, rows.Scan(&id))
	require.NoError(t, rows.Err())
	return id
}

// VerifyDevData checks for presence of the development suitable initial
// data and marks possible issues using the `t` testing argument.
// Presence of extra rows is acceptable.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	expected, err := stlmig1.DevCars()
	require.NoError(t, err)
	actual := v.cars(ctx, t)
	for _, c := range expected {
		assert.Contains(t, actual, c, "dev car is missing")
	}
}

// VerifyProdData checks for presence of the production suitable initial
// data and marks possible issues using the `t` testing argument.
// There are no production cars, so it only ensures that cars can be
// queried.
func (v *Verifier) VerifyProdData(ctx context.Context, t *testing.T) {
	_ = v.cars(ctx, t)
}

// cars returns all stored cars with their IDs zeroed, so they can be
// compared with the inserted cars.
func (v *Verifier) cars(ctx context.Context, t *testing.T) []model.Car {
	rows, err := v.c.Query(
		ctx, `SELECT marca, model, an, pret FROM cars ORDER BY id`,
	)
	require.NoError(t, err, "querying cars")
	defer rows.Close()
	var cars []model.Car
	for rows.Next() {
		var c model.Car
		require.NoError(t, rows.Scan(&c.Marca, &c.Model, &c.An, &c.Pret))
		cars = append(cars, c)
	}
	require.NoError(t, rows.Err())
	return cars
}
