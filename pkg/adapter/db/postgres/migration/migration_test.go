// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migration_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/momeni/car-management/pkg/adapter/db/postgres"
	"github.com/momeni/car-management/pkg/adapter/db/postgres/migration"
	"github.com/momeni/car-management/pkg/adapter/db/postgres/migration/settle/stlmig1"
	"github.com/momeni/car-management/pkg/core/model"
	"github.com/momeni/car-management/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpg "gorm.io/driver/postgres"
)

func TestLatestVersion(t *testing.T) {
	lv, err := migration.LatestVersion(model.SemVer{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, postgres.Version, lv)

	_, err = migration.LatestVersion(model.SemVer{1, 9, 0})
	assert.Error(t, err, "minor version from the future")
	_, err = migration.LatestVersion(model.SemVer{2, 0, 0})
	assert.Error(t, err, "unknown major version")
}

func TestDevCars(t *testing.T) {
	cars, err := stlmig1.DevCars()
	require.NoError(t, err)
	require.NotEmpty(t, cars)
	for _, c := range cars {
		assert.Zero(t, c.ID)
		assert.GreaterOrEqual(t, c.An, model.MinYear, "%s %s", c.Marca, c.Model)
		assert.GreaterOrEqual(t, c.Pret, model.MinPrice)
		assert.NotEmpty(t, c.Marca)
		assert.NotEmpty(t, c.Model)
	}
}

func TestInitializer(t *testing.T) {
	cars, err := stlmig1.DevCars()
	require.NoError(t, err)

	for _, tc := range []struct {
		name    string
		inserts int
		init    func(context.Context, repo.SchemaInitializer) error
	}{
		{"dev", len(cars), func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitDevSchema(ctx)
		}},
		{"prod", 0, func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitProdSchema(ctx)
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			ctx := context.Background()
			p, err := postgres.NewPoolWithDialector(
				ctx, gormpg.New(gormpg.Config{Conn: db}),
			)
			require.NoError(t, err)
			defer p.Close()

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE cars`)).
				WillReturnResult(sqlmock.NewResult(0, 0))
			for i := 0; i < tc.inserts; i++ {
				c := cars[i]
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cars`)).
					WithArgs(c.Marca, c.Model, c.An, c.Pret).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}
			mock.ExpectCommit()

			err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
				return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
					si, err := migration.Factory(postgres.Version)(tx)
					if err != nil {
						return err
					}
					assert.EqualValues(t, postgres.Major, si.MajorVersion())
					return tc.init(ctx, si)
				})
			})
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNewInitializerRejectsUnknownVersions(t *testing.T) {
	_, err := migration.NewInitializer(nil, model.SemVer{3, 0, 0})
	assert.Error(t, err)
	_, err = migration.NewInitializer(nil, model.SemVer{1, 5, 0})
	assert.Error(t, err)
}
