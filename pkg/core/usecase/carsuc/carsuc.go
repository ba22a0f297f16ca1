// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsuc contains the cars UseCase which supports the
// cars related use cases. Currently, four uses cases are supported:
//  1. Listing all cars,
//  2. Adding a new car,
//  3. Fetching a car by its ID,
//  4. Deleting a car by its ID.
package carsuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/car-management/pkg/core/cerr"
	"github.com/momeni/car-management/pkg/core/log"
	"github.com/momeni/car-management/pkg/core/model"
	"github.com/momeni/car-management/pkg/core/repo"
)

// UseCase represents a cars use case. It holds a database connection
// pool, the cars repository instance (to be guided with the DB pool),
// and the cars use case specific settings.
// A UseCase keeps no mutable state, so it may be used concurrently.
type UseCase struct {
	pool   repo.Pool
	carsrp repo.Cars

	createLogLevel *slog.Level
}

// New instantiates a cars use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(p repo.Pool, c repo.Cars, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, carsrp: c}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.createLogLevel == nil {
		lvl := slog.LevelInfo
		uc.createLogLevel = &lvl
	}
	return uc, nil
}

// GetAllCars use case returns all stored cars, with no filtering
// or pagination.
func (cars *UseCase) GetAllCars(ctx context.Context) (all []model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		all, err = cars.carsrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// AddCar use case validates the `d` draft and stores it as a new car.
// The stored car, including its database assigned ID, is returned.
// If some fields violate their constraints, a bad request error which
// wraps a model.FieldErrors (listing all violations) is returned and
// nothing is stored.
func (cars *UseCase) AddCar(ctx context.Context, d model.CarDraft) (car model.Car, err error) {
	if err = d.Validate(); err != nil {
		return model.Car{}, cerr.BadRequest(err)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		car, err = cars.carsrp.Conn(c).Create(ctx, d.Car())
		return err
	})
	if err != nil {
		return model.Car{}, err
	}
	log.Log(ctx, *cars.createLogLevel, "car created", log.Valuer("car", car))
	return car, nil
}

// GetCarByID use case returns the `id` car. Absence of that car is not
// an error and is reported by a false found return value.
func (cars *UseCase) GetCarByID(ctx context.Context, id int64) (car model.Car, found bool, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		car, found, err = cars.carsrp.Conn(c).Find(ctx, id)
		return err
	})
	if err != nil {
		return model.Car{}, false, err
	}
	return car, found, nil
}

// DeleteCar use case removes the `id` car. The existence of that car
// is not checked, so deleting a missing car is a successful no-op.
func (cars *UseCase) DeleteCar(ctx context.Context, id int64) error {
	var n int64
	err := cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		n, err = cars.carsrp.Conn(c).Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if n == 0 {
		log.Debug(ctx, "no car to delete", slog.Int64("id", id))
	}
	return nil
}
