// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/momeni/car-management/pkg/adapter/config"
	"github.com/momeni/car-management/pkg/adapter/config/cfg1"
	"github.com/momeni/car-management/pkg/core/cerr"
	"github.com/momeni/car-management/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePath = "../../../configs/sample-config.yaml"

func TestLoadSampleConfig(t *testing.T) {
	t.Setenv(cfg1.DatabaseURLEnv, "")
	c, err := config.Load(context.Background(), samplePath)
	require.NoError(t, err)
	assert.Equal(t, "carweb", c.Database.Name)
	assert.Equal(t, ":8080", *c.Gin.Address)
	assert.True(t, c.Metrics.Enabled())
	assert.Equal(t, []string{"/cars/**"}, c.Security.PermitAll)
	assert.Equal(t, cfg1.Version, c.Version())
}

func TestLoadRejectsMismatchingVersions(t *testing.T) {
	sample, err := os.ReadFile(samplePath)
	require.NoError(t, err)
	dir := t.TempDir()
	for _, tc := range []struct {
		name, old, new, subject string
		actual                  model.SemVer
	}{
		{
			"config", "config: 1.0.0", "config: 2.0.0",
			"config", model.SemVer{2, 0, 0},
		},
		{
			"database", "database: 1.0.0", "database: 1.4.0",
			"database schema", model.SemVer{1, 4, 0},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			data := strings.Replace(string(sample), tc.old, tc.new, 1)
			require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
			_, err := config.Load(context.Background(), path)
			var msve *cerr.MismatchingSemVerError
			require.ErrorAs(t, err, &msve)
			assert.Equal(t, tc.subject, msve.Subject)
			assert.Equal(t, tc.actual, msve.Actual)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(context.Background(), "no/such/config.yaml")
	assert.ErrorContains(t, err, "reading config file")
}
