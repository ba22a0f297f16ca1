// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbinituc contains the database initialization use case.
// It creates the tables of the latest supported schema version and
// fills them with the development or production suitable rows.
package dbinituc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/car-management/pkg/core/log"
	"github.com/momeni/car-management/pkg/core/repo"
)

// UseCase represents the database initialization use case. It may
// be used to initialize database with development or production
// suitable data as asked by the InitDev and InitProd methods.
type UseCase struct {
	pool repo.Pool
	sif  repo.SchemaInitializerFactory
}

// New creates a database initialization UseCase which takes
// connections from the `p` pool and creates a schema initializer
// using the `sif` factory within a fresh transaction.
func New(p repo.Pool, sif repo.SchemaInitializerFactory) *UseCase {
	return &UseCase{pool: p, sif: sif}
}

// InitDev creates all relevant tables and fills them with the
// development suitable data in a single transaction.
func (uc *UseCase) InitDev(ctx context.Context) error {
	return uc.initDB(
		ctx, "dev",
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitDevSchema(ctx)
		},
	)
}

// InitProd creates all relevant tables and fills them with the
// production suitable data in a single transaction.
func (uc *UseCase) InitProd(ctx context.Context) error {
	return uc.initDB(
		ctx, "prod",
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitProdSchema(ctx)
		},
	)
}

func (uc *UseCase) initDB(
	ctx context.Context,
	mode string,
	dbi func(ctx context.Context, si repo.SchemaInitializer) error,
) error {
	var major uint
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := uc.sif(tx)
			if err != nil {
				return fmt.Errorf("creating SchemaInitializer: %w", err)
			}
			if err := dbi(ctx, si); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
			major = si.MajorVersion()
			return nil
		})
	})
	if err != nil {
		return err
	}
	log.Info(
		ctx, "database is initialized",
		slog.String("mode", mode), slog.Uint64("major", uint64(major)),
	)
	return nil
}
