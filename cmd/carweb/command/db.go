// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/car-management/pkg/adapter/config"
	"github.com/momeni/car-management/pkg/adapter/db/postgres/migration"
	"github.com/momeni/car-management/pkg/core/usecase/dbinituc"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used.`,
}

// initDB loads the configuration file, connects to its database, and
// passes a database initialization use case to the `init` function.
func initDB(
	ctx context.Context,
	init func(ctx context.Context, uc *dbinituc.UseCase) error,
) error {
	c, err := config.Load(ctx, cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	setUpLogging(c)
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	uc := dbinituc.New(p, migration.Factory(c.SchemaVersion()))
	return init(ctx, uc)
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
