// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers parses the versions block of the carweb configuration
// files. Two versions are tracked, namely the configuration file format
// and the database schema. Versions are parsed before the rest of the
// file, so an unsupported file is reported as such instead of as a
// confusing decoding error.
package vers

import (
	"fmt"

	"github.com/momeni/car-management/pkg/core/cerr"
	"github.com/momeni/car-management/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config may be embedded inline in the configuration structs in order
// to parse and report their versions block.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file and database schema versions.
type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Marshalled replaces the model.SemVer fields of Config by their
// string representation, so nested structs may be serialized without
// relying on the yaml.Marshaler interface (which is only consulted
// for the top level value).
type Marshalled struct {
	Versions struct {
		Database string
		Config   string
	}
}

// Marshal creates a Marshalled instance representing `vc`.
func (vc *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Versions.Database = vc.Versions.Database.Marshal()
	m.Versions.Config = vc.Versions.Config.Marshal()
	return m
}

// Load deserializes the versions block of the data byte slice.
// Other fields are ignored.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Expect returns a *cerr.MismatchingSemVerError if the stored versions
// differ from the `config` and `db` versions which are supported by
// this binary. The configuration file version is checked first.
func (vc *Config) Expect(config, db model.SemVer) error {
	switch {
	case vc.Versions.Config != config:
		return &cerr.MismatchingSemVerError{
			Subject:  "config",
			Expected: config,
			Actual:   vc.Versions.Config,
		}
	case vc.Versions.Database != db:
		return &cerr.MismatchingSemVerError{
			Subject:  "database schema",
			Expected: db,
			Actual:   vc.Versions.Database,
		}
	}
	return nil
}

// Validate returns an error if the stored configuration file version
// is not supported by the given major and minor versions. That is, the
// major versions must match and the stored minor version may not be
// newer than the `minor` argument.
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	if v[0] != major {
		return fmt.Errorf("incompatible major version: %d", v[0])
	}
	if v[1] > minor {
		return fmt.Errorf("unsupported minor version: %d", v[1])
	}
	return nil
}
