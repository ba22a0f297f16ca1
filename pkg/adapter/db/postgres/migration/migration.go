// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration is the top-level database schema package which
// acts as a facade for all supported database schema versions.
//
// The NewInitializer and LatestVersion functions can be used to find
// out the latest supported minor version for each major version and
// create its schema initializer object.
// This package depends on its sub-packages and returns the relevant
// types as version-independent interfaces.
package migration

import (
	"fmt"

	"github.com/momeni/car-management/pkg/adapter/db/postgres/migration/settle/stlmig1"
	"github.com/momeni/car-management/pkg/core/model"
	"github.com/momeni/car-management/pkg/core/repo"
)

// LatestVersion returns the latest supported database schema version
// within the major version of the given `v` semantic version.
// If the minor version of `v` argument is beyond the supported database
// schema versions, an error will be returned.
func LatestVersion(v model.SemVer) (lv model.SemVer, err error) {
	switch major := v[0]; major {
	case 1:
		if minor := v[1]; minor > stlmig1.Minor {
			err = fmt.Errorf("unsupported minor: %d", minor)
			return
		}
		lv = model.SemVer{1, stlmig1.Minor, stlmig1.Patch}

	default:
		err = fmt.Errorf("unsupported major: %d", major)
	}
	return
}

// NewInitializer creates a database schema initializer instance for the
// given `v` semantic version. Its major version selects the stlmigN
// package which creates the tables of the latest supported minor
// version of that major version. Code which expects an older minor
// version may use those tables too since minor versions only add
// tables and columns.
//
// If the minor version of `v` is beyond the supported versions of
// stlmigN package, an error will be returned because the created tables
// would lack the columns which are expected by that minor version.
//
// The returned instance wraps the `tx` transaction argument and
// uses it for creation and initialization of tables. The caller remains
// responsible to commit that transaction.
func NewInitializer(tx repo.Tx, v model.SemVer) (
	repo.SchemaInitializer, error,
) {
	switch major := v[0]; major {
	case 1:
		if minor := v[1]; minor > stlmig1.Minor {
			return nil, fmt.Errorf("unsupported minor: %d", minor)
		}
		return stlmig1.New(tx), nil
	default:
		return nil, fmt.Errorf("unsupported major: %d", major)
	}
}

// Factory returns a repo.SchemaInitializerFactory which creates the
// initializer of the `v` schema version for each given transaction.
func Factory(v model.SemVer) repo.SchemaInitializerFactory {
	return func(tx repo.Tx) (repo.SchemaInitializer, error) {
		return NewInitializer(tx, v)
	}
}
