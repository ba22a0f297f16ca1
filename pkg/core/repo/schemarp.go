// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaInitializer interface is exposed by each schema version
// implementation. It provides two methods of InitDevSchema and
// InitProdSchema in order to create new tables, using the development
// and production suitable initial data rows respectively.
// Each implementation (for the latest minor version of a specific major
// version) should contain the relevant information for finding the
// destination database (such as a database transaction) so the
// SchemaInitializer does not need to take any argument.
type SchemaInitializer interface {
	// InitDevSchema creates tables and fills them with the development
	// suitable initial data, e.g., a few sample cars.
	InitDevSchema(ctx context.Context) error

	// InitProdSchema creates tables and fills them with the production
	// suitable initial data. There is no such data for cars, so the
	// tables are left empty.
	InitProdSchema(ctx context.Context) error

	// MajorVersion returns the major semantic version of the schema
	// which is created by this initializer.
	MajorVersion() uint
}

// SchemaInitializerFactory creates a SchemaInitializer which wraps the
// `tx` transaction, so all tables and rows are created atomically.
type SchemaInitializerFactory func(tx Tx) (SchemaInitializer, error)
