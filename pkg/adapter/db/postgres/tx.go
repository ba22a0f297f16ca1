// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/car-management/pkg/core/repo"
	"gorm.io/gorm"
)

// Tx is the GORM-backed implementation of the repo.Tx interface.
// It is created by the Conn.Tx method and is valid only until its
// handler returns. Tx embeds the *gorm.DB, hence, may be used like
// GORM from within the repository packages (which can depend on
// frameworks).
type Tx struct {
	*gorm.DB
}

// Exec runs SQL statements with given args given ctx context.
// Number of affected rows and possible errors will be returned.
// In absence of args, sql may contain multiple semi-colon separated
// statements, which is how the schema initializers create tables.
//
// Parameters may be written as $1, $2, etc. or as the ? and @name
// placeholders which are supported by GORM.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return execOn(tx.DB.WithContext(ctx), sql, args...)
}

// Query runs SQL statement with given args given ctx context.
// The Query or Exec may not be called again until the returned Rows
// is closed since only one ongoing statement may be used on each
// connection.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return queryOn(tx.DB.WithContext(ctx), sql, args...)
}

// IsTx method prevents a non-Tx object (such as a Conn) to
// mistakenly implement the Tx interface.
func (tx *Tx) IsTx() {
}

// GORM returns the embedded *gorm.DB instance, configuring it
// to operate on the given ctx context (in a gorm.Session).
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
