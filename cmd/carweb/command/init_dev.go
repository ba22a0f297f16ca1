// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/car-management/pkg/core/usecase/dbinituc"
	"github.com/spf13/cobra"
)

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data
for the database schema version which is specified in the configuration
file. The database connection information are also read from the config
file (or the DATABASE_URL environment variable).

The cars table is created and a few sample cars are inserted into it.
It must not exist beforehand, otherwise, nothing will be modified and
an error will be reported.`,
	RunE: initDev,
	Args: cobra.NoArgs,
}

func initDev(cmd *cobra.Command, _ []string) error {
	err := initDB(
		cmd.Context(),
		func(ctx context.Context, uc *dbinituc.UseCase) error {
			return uc.InitDev(ctx)
		},
	)
	if err != nil {
		return fmt.Errorf("initializing DB with dev data: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd)
}
