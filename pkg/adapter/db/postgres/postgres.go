// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres implements the repo.Pool, repo.Conn, and repo.Tx
// interfaces using GORM and its PostgreSQL driver. Repositories in the
// sub-packages use the embedded *gorm.DB through the GORM methods.
package postgres

import (
	"github.com/momeni/car-management/pkg/adapter/db/postgres/migration/settle/stlmig1"
	"github.com/momeni/car-management/pkg/core/model"
)

// These constants represent the major, minor, and patch components of
// the current database schema semantic version. Since each schema major
// version is backed by one stlmigN package for its initialization, the
// latest version can be taken from that package (for the largest
// supported N major version) too.
const (
	Major = stlmig1.Major // latest supported schema major version
	Minor = stlmig1.Minor // latest schema minor version in Major series
	Patch = stlmig1.Patch // latest schema patch version in Minor series
)

// Version is the latest supported database schema semantic version.
var Version = model.SemVer{Major, Minor, Patch}
