// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer is an internal helper for the test packages.
// It starts a temporary postgres:16 container (using docker or podman)
// and connects to it, using a *postgres.Pool connection pool.
// It may be used in all integration-level test suites which require
// a real PostgreSQL DBMS server.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/car-management/pkg/adapter/db/postgres"
	"github.com/stretchr/testify/assert"
)

// DBMSVersion is the tag of the postgres image which is started.
const DBMSVersion = "16"

// cannotConnectNow is the SQLSTATE which is reported while the
// database system is starting up.
const cannotConnectNow = "57P03"

// New creates and starts up a postgres container.
// For podman, the podman.service needs to be started and the
// DOCKER_HOST environment variable needs to be initialized like
// DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock
// beforehand.
// The ctx will be used during the container start up and shutdown,
// while the timeout will be considered only during the start up phase.
// Returned dfrs functions must be called (in order) when the container
// is not needed anymore, even if ok is false. Failures are reported
// using `t`, so callers may return silently if ok is false.
func New(ctx context.Context, timeout time.Duration, t *testing.T) (
	pg *sqltestutil.PostgresContainer,
	pool *postgres.Pool,
	dfrs []func(),
	ok bool,
) {
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(ctx2, DBMSVersion)
	ok = assert.NoError(t, err, "failed to set up a test database")
	if !ok {
		return
	}
	dfrs = append(dfrs, func() {
		err := pg.Shutdown(ctx)
		assert.NoError(t, err, "failed to shutdown test database")
	})
	pool, err = connect(ctx2, pg.ConnectionString())
	ok = assert.NoError(t, err, "cannot connect to test database")
	if !ok {
		return
	}
	dfrs = append(dfrs, func() {
		err := pool.Close()
		assert.NoError(t, err, "failed to close the connections pool")
	})
	return
}

// connect retries until the starting up database accepts connections
// or ctx expires.
func connect(ctx context.Context, url string) (*postgres.Pool, error) {
	for {
		pool, err := postgres.NewPool(ctx, url)
		if err == nil {
			return pool, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == cannotConnectNow {
			continue
		}
		var netErr net.Error
		if ctx.Err() == nil && errors.As(err, &netErr) {
			continue // tolerate network errors until a timeout
		}
		return nil, err
	}
}
