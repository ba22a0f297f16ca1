// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package stlmig1 provides the Initializer type for database schema
// major version 1. It creates the v1 tables in an existing database
// and fills them with the development or production suitable data.
package stlmig1

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/momeni/car-management/pkg/core/model"
	"github.com/momeni/car-management/pkg/core/repo"
)

// These constants indicate the major, minor, and patch components of
// the database schema which is created by this package. Each major
// version has a separate stlmigN package and the Minor is the latest
// supported minor version within the Major major version series.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// createTables creates the v1.0 tables. The CHECK constraints repeat
// the validation rules of the model package, so rows which are
// inserted by other clients may not violate them either.
const createTables = `CREATE TABLE cars (
    id bigint GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    marca text NOT NULL CHECK (btrim(marca) <> ''),
    model text NOT NULL CHECK (btrim(model) <> ''),
    an integer NOT NULL CHECK (an >= 1886),
    pret double precision NOT NULL CHECK (pret >= 1)
)`

const insertCar = `INSERT INTO cars(marca, model, an, pret)
VALUES ($1, $2, $3, $4)`

//go:embed devcars.json
var devCarsJSON []byte

// DevCars returns the sample cars which are inserted by the
// InitDevSchema method. Their IDs are zero because they are assigned
// by the database.
func DevCars() ([]model.Car, error) {
	var cars []model.Car
	if err := json.Unmarshal(devCarsJSON, &cars); err != nil {
		return nil, fmt.Errorf("decoding dev cars: %w", err)
	}
	return cars, nil
}

// Initializer creates and fills the major version 1 tables.
//
// Each instance wraps and uses a single transaction of the destination
// database, but the caller is responsible to commit that transaction
// in order to finalize the initialization.
type Initializer struct {
	tx repo.Tx // destination database transaction
}

// New creates a new Initializer instance, wrapping the given `tx`
// database transaction.
func New(tx repo.Tx) *Initializer {
	return &Initializer{
		tx: tx,
	}
}

// InitDevSchema creates major version 1 tables and fills them with
// the development suitable initial data, i.e., the DevCars.
func (si1 *Initializer) InitDevSchema(ctx context.Context) error {
	if err := si1.createTables(ctx); err != nil {
		return err
	}
	cars, err := DevCars()
	if err != nil {
		return err
	}
	for _, c := range cars {
		_, err := si1.tx.Exec(ctx, insertCar, c.Marca, c.Model, c.An, c.Pret)
		if err != nil {
			return fmt.Errorf("inserting %s %s: %w", c.Marca, c.Model, err)
		}
	}
	return nil
}

// InitProdSchema creates major version 1 tables. There are no
// production suitable cars, so tables are left empty.
func (si1 *Initializer) InitProdSchema(ctx context.Context) error {
	return si1.createTables(ctx)
}

func (si1 *Initializer) createTables(ctx context.Context) error {
	if _, err := si1.tx.Exec(ctx, createTables); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// MajorVersion returns the major semantic version of this Initializer
// instance. This value matches with the Major constant which is defined
// in this package. Indeed, this method can be called with a nil
// instance too because it only depends on the Initializer type.
func (si1 *Initializer) MajorVersion() uint {
	return Major
}
