// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 makes it possible to load configuration settings with
// version 1.x.y since all minor and patch versions (which are known)
// with the same major version, can be loaded with one implementation.
// When trying to serialize and write out settings, the latest known
// minor and patch version will be used since older versions (with the
// same major version) can ignore the extra fields too.
package cfg1

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/momeni/car-management/pkg/adapter/config/settings"
	"github.com/momeni/car-management/pkg/adapter/config/vers"
	"github.com/momeni/car-management/pkg/adapter/db/postgres"
	"github.com/momeni/car-management/pkg/adapter/restful/gin"
	"github.com/momeni/car-management/pkg/adapter/restful/gin/metrics"
	"github.com/momeni/car-management/pkg/adapter/restful/gin/security"
	"github.com/momeni/car-management/pkg/core/log"
	"github.com/momeni/car-management/pkg/core/model"
	"github.com/momeni/car-management/pkg/core/repo"
	"github.com/momeni/car-management/pkg/core/usecase/carsuc"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// DatabaseURLEnv names the environment variable which overrides the
// database connection URL that is composed from the Database settings.
const DatabaseURLEnv = "DATABASE_URL"

// Default values of the optional settings.
const (
	DefaultAddress         = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Acceptable range of the gin.shutdown-timeout setting.
var (
	minShutdownTimeout = settings.Duration(time.Second)
	maxShutdownTimeout = settings.Duration(5 * time.Minute)
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config contains all settings which are required by different parts
// of the project following the v1.x.y format, such as adapters or
// use cases. It is preferred to implement Config with primitive fields
// or other structs which are defined locally, not models or structs
// which are defined in lower layers, so the configuration can be
// versioned and kept intact while other layers can change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Metrics  Metrics  // Prometheus metrics exposition settings
	Logging  Logging  // Default slog handler settings
	Security Security // Access policy of the REST APIs
	Usecases Usecases // Configuration settings for supported use cases

	// Vers contains the configuration file and database schema version
	// strings corresponding to this Config instance and its Database
	// target.
	Vers vers.Config `yaml:",inline"`
}

// Database contains the database related configuration settings.
// The password of the User role is read from the .pgpass file in the
// PassDir directory.
type Database struct {
	Host    string `validate:"required,hostname_rfc1123|ip"`
	Port    int    `validate:"min=1,max=65535"`
	Name    string `validate:"required"` // database name, like carweb
	User    string `validate:"required"` // database role name
	PassDir string `yaml:"pass-dir" validate:"required"`
	SSLMode string `yaml:"sslmode,omitempty" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`

	// url is taken from the DATABASE_URL environment variable and
	// takes precedence over other fields if it is not empty.
	url string
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("database %q: %w", c.Database.Name, err)
	}
	return p, nil
}

// SchemaVersion returns the semantic version of the database schema
// which its connection information are kept by this Config struct.
func (c *Config) SchemaVersion() model.SemVer {
	return c.Vers.Versions.Database
}

// ConnectionPool creates a database connection pool using the
// connection URL which is returned by the ConnectionURL method.
func (d Database) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	u, err := d.ConnectionURL()
	if err != nil {
		return nil, err
	}
	return postgres.NewPool(ctx, u)
}

// ConnectionURL returns the DATABASE_URL environment variable value
// (as captured by the Load function) if it was set. Otherwise, it
// returns the database connection URL embedding the host, port, role
// name, database name, and password value. The password is read from
// the .pgpass file in the `d.PassDir` folder. That file may contain
// empty or `#`-commented lines in addition to the password specifying
// lines which should conform with the pgpass files format like this:
//
//	host:port:dbname:role:password
//
// Returned URL has the postgresql scheme.
func (d Database) ConnectionURL() (string, error) {
	if d.url != "" {
		return d.url, nil
	}
	path := filepath.Join(d.PassDir, ".pgpass")
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, d.User)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line in %q", path)
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String(), nil
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill them by their default values.
type Gin struct {
	Logger   *bool   // Whether to register the gin.Logger() middleware
	Recovery *bool   // Whether to register the gin.Recovery() middleware
	Address  *string `validate:"omitempty,hostname_port"`

	// ShutdownTimeout is the maximum time that ongoing requests may
	// take after a shutdown signal is received.
	ShutdownTimeout *settings.Duration `yaml:"shutdown-timeout"`
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings. The request identifier middleware comes first, so
// all subsequent middlewares and handlers may log it. If `m` is not nil,
// requests are instrumented by it. At last, the `p` access policy is
// enforced on all requests, including those which match no route.
func (g Gin) NewEngine(p security.Policy, m *metrics.Metrics) *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 5)
	middlewares = append(middlewares, gin.RequestID())
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	if m != nil {
		middlewares = append(middlewares, m.Middleware())
	}
	middlewares = append(middlewares, p.Middleware())
	return gin.New(middlewares...)
}

// Metrics contains the Prometheus related configuration settings.
type Metrics struct {
	// Address is the listening address of the metrics server.
	// An empty address disables the metrics exposition.
	Address string `yaml:",omitempty" validate:"omitempty,hostname_port"`
}

// Enabled reports whether metrics should be collected and served.
func (m Metrics) Enabled() bool {
	return m.Address != ""
}

// Logging contains the settings of the default slog handler.
type Logging struct {
	Level  *string `validate:"omitempty,oneof=debug info warn error"`
	Format *string `validate:"omitempty,oneof=text json"`
}

// NewHandler creates a slog handler which writes into `w` with the
// configured format and drops records below the configured level.
func (l Logging) NewHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(*l.Level)}
	if *l.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Security contains the access policy settings of the REST APIs.
type Security struct {
	// PermitAll lists the path patterns which are served without
	// authentication. It defaults to security.DefaultPermitAll.
	PermitAll []string `yaml:"permit-all" validate:"dive,startswith=/"`
}

// Policy returns the access policy which is described by `s`.
func (s Security) Policy() security.Policy {
	return security.Policy{PermitAll: s.PermitAll}
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Cars Cars // cars use cases related settings
}

// Cars contains the configuration settings for the cars use cases.
type Cars struct {
	// CreateLogLevel is the level of records which are logged for
	// each created car. A nil value lets the use case choose.
	CreateLogLevel *string `yaml:"create-log-level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// NewUseCase instantiates a new cars use case based on the settings
// in the `c` struct.
func (c Cars) NewUseCase(
	p repo.Pool, r repo.Cars,
) (*carsuc.UseCase, error) {
	opts := make([]carsuc.Option, 0, 1)
	if c.CreateLogLevel != nil {
		lvl := parseLevel(*c.CreateLogLevel)
		opts = append(opts, carsuc.WithCreateLogLevel(lvl))
	}
	return carsuc.New(p, r, opts...)
}

// parseLevel parses a validated level name.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Load unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. Thereafter, the DATABASE_URL environment variable (if set)
// overrides the database connection settings and the loaded Config
// will be validated and normalized in order to ensure that provided
// settings are acceptable (for example the major version which is
// reported by data settings must match with number 1 which is the
// major version of this config package).
func Load(ctx context.Context, data []byte) (*Config, error) {
	n := &yaml.Node{}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if l := len(n.Content); l != 1 {
		return nil, fmt.Errorf(
			"found %d children nodes, instead of 1 mapping child", l,
		)
	}
	c := &Config{}
	if err := n.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding yaml node: %w", err)
	}
	c.Database.url = os.Getenv(DatabaseURLEnv)
	if err := c.ValidateAndNormalize(ctx); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It also replaces nil
// settings with their default values. A shutdown timeout which is out
// of its acceptable range is replaced by the nearest boundary value
// and a warning is logged.
// Database settings are not validated if DATABASE_URL was set.
func (c *Config) ValidateAndNormalize(ctx context.Context) error {
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	if c.Database.url == "" {
		if err := validate.Struct(&c.Database); err != nil {
			return fmt.Errorf("validating database settings: %w", err)
		}
	}
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	settings.Default(&c.Gin.Address, DefaultAddress)
	settings.Default(
		&c.Gin.ShutdownTimeout, settings.Duration(DefaultShutdownTimeout),
	)
	if err := settings.VerifyRange(
		&c.Gin.ShutdownTimeout, &minShutdownTimeout, &maxShutdownTimeout,
	); err != nil {
		log.Warn(
			ctx, "shutdown timeout is adjusted by boundary values",
			log.Valuer("value", err.Value),
			log.Valuer("bound", err.Bound),
			log.Err("violation", err),
		)
	}
	settings.Default(&c.Logging.Level, DefaultLogLevel)
	settings.Default(&c.Logging.Format, DefaultLogFormat)
	if c.Security.PermitAll == nil {
		c.Security.PermitAll = append(
			[]string(nil), security.DefaultPermitAll...,
		)
	}
	for name, s := range map[string]any{
		"gin":      &c.Gin,
		"metrics":  &c.Metrics,
		"logging":  &c.Logging,
		"security": &c.Security,
		"usecases": &c.Usecases,
	} {
		if err := validate.Struct(s); err != nil {
			return fmt.Errorf("validating %s settings: %w", name, err)
		}
	}
	return nil
}

// Marshalled struct contains a field for each one of the Config struct
// fields. The types of those fields are the same if their default
// serialization format is acceptable, otherwise, they will be
// serialized manually using the Marshal method and their target
// primitive types will be used in the Marshalled struct.
type Marshalled struct {
	Database Database
	Gin      struct {
		Logger          *bool   `yaml:",omitempty"`
		Recovery        *bool   `yaml:",omitempty"`
		Address         *string `yaml:",omitempty"`
		ShutdownTimeout *string `yaml:"shutdown-timeout,omitempty"`
	}
	Metrics  Metrics `yaml:",omitempty"`
	Logging  Logging `yaml:",omitempty"`
	Security Security
	Usecases Usecases
	Vers     *vers.Marshalled `yaml:",inline"`
}

// MarshalYAML returns an instance of the Marshalled struct, as created
// by the Marshal method, so it may be marshalled instead of the `c`
// Config instance.
func (c *Config) MarshalYAML() (interface{}, error) {
	return c.Marshal(), nil
}

// Marshal creates an instance of the Marshalled struct and fills it
// with the `c` Config instance contents.
func (c *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Database = c.Database
	m.Gin.Logger = c.Gin.Logger
	m.Gin.Recovery = c.Gin.Recovery
	m.Gin.Address = c.Gin.Address
	m.Gin.ShutdownTimeout = c.Gin.ShutdownTimeout.Marshal()
	m.Metrics = c.Metrics
	m.Logging = c.Logging
	m.Security = c.Security
	m.Usecases = c.Usecases
	m.Vers = c.Vers.Marshal()
	return m
}

// LogValue implements slog.LogValuer, so the configuration settings
// may be logged with their values instead of their pointer addresses.
// The DATABASE_URL override is omitted since it may hold a password.
func (m *Marshalled) LogValue() slog.Value {
	db := m.Database
	return slog.GroupValue(
		slog.Group(
			"database",
			"host", db.Host, "port", db.Port, "name", db.Name,
			"user", db.User, "pass-dir", db.PassDir, "sslmode", db.SSLMode,
		),
		slog.Group(
			"gin",
			"logger", deref(m.Gin.Logger),
			"recovery", deref(m.Gin.Recovery),
			"address", deref(m.Gin.Address),
			"shutdown-timeout", deref(m.Gin.ShutdownTimeout),
		),
		slog.Group("metrics", "address", m.Metrics.Address),
		slog.Group(
			"logging",
			"level", deref(m.Logging.Level),
			"format", deref(m.Logging.Format),
		),
		slog.Group("security", "permit-all", m.Security.PermitAll),
		slog.Group(
			"usecases.cars",
			"create-log-level", deref(m.Usecases.Cars.CreateLogLevel),
		),
		slog.Group(
			"versions",
			"database", m.Vers.Versions.Database,
			"config", m.Vers.Versions.Config,
		),
	)
}

// deref returns the pointed value, or an empty string for nil.
func deref[T any](p *T) any {
	if p == nil {
		return ""
	}
	return *p
}

// Version returns the semantic version of this Config struct contents
// which its major version is equal to 1.
func (c *Config) Version() model.SemVer {
	return c.Vers.Versions.Config
}
