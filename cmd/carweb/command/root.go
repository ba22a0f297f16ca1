// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the carweb
// project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database initialization actions.
// The init-dev and init-prod actions create the cars table and fill
// it with the development or production suitable data records.
//
//	./carweb [-c /path/of/main/config.yaml]           # start web server
//	./carweb db init-dev [-c /path/of/main/config.yaml]
//	./carweb db init-prod [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/car-management/pkg/adapter/config"
	"github.com/momeni/car-management/pkg/adapter/config/cfg1"
	"github.com/momeni/car-management/pkg/adapter/restful/gin"
	"github.com/momeni/car-management/pkg/adapter/restful/gin/metrics"
	"github.com/momeni/car-management/pkg/adapter/restful/gin/routes"
	"github.com/momeni/car-management/pkg/core/log"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "carweb",
	Short: "A REST API backend for managing a catalog of cars",
	Long: `A REST API backend for managing a catalog of cars.
Each car has a brand (marca), a model, a manufacturing year (an), and
a price (pret). Cars can be listed, added, fetched, and deleted using
the /cars endpoints. All /cars paths are publicly accessible with no
sessions and no CSRF protection, while other paths are rejected.
Cars are persisted in a PostgreSQL database which may be initialized
using the db sub-commands.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func setUpLogging(c *cfg1.Config) {
	slog.SetDefault(slog.New(c.Logging.NewHandler(os.Stderr)))
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := config.Load(ctx, cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	setUpLogging(c)
	log.Info(ctx, "configuration is loaded", slog.Any("config", c.Marshal()))
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()

	var m *metrics.Metrics
	servers := make([]*http.Server, 0, 2)
	if c.Metrics.Enabled() {
		m = metrics.New("")
		servers = append(servers, &http.Server{
			Addr:              c.Metrics.Address,
			Handler:           m.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}
	var e *gin.Engine = c.Gin.NewEngine(c.Security.Policy(), m)
	if err = routes.Register(ctx, e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	servers = append(servers, &http.Server{
		Addr:              *c.Gin.Address,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	})
	return serve(ctx, time.Duration(*c.Gin.ShutdownTimeout), servers...)
}

// serve runs all `servers` until ctx is cancelled or one of them fails.
// Thereafter, all servers are shut down gracefully, waiting at most for
// the `timeout` duration for the ongoing requests to be completed.
func serve(
	ctx context.Context, timeout time.Duration, servers ...*http.Server,
) error {
	errs := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			log.Info(ctx, "listening", slog.String("address", srv.Addr))
			err := srv.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			errs <- err
		}(srv)
	}
	var serveErr error
	select {
	case <-ctx.Done():
		log.Info(ctx, "shutting down", slog.Duration("timeout", timeout))
	case serveErr = <-errs:
		log.Error(ctx, "server stopped", log.Err("err", serveErr))
	}
	shutdownCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), timeout,
	)
	defer cancel()
	var shutdownErrs []error
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			shutdownErrs = append(
				shutdownErrs,
				fmt.Errorf("shutting down %q server: %w", srv.Addr, err),
			)
		}
	}
	if serveErr != nil {
		return fmt.Errorf("serving HTTP: %w", serveErr)
	}
	return errors.Join(shutdownErrs...)
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
// By the way, default value is not necessarily a single path and may
// check several paths sequentially and take the highest priority one
// among the existing paths. For example, a user-specific path may take
// precedence over a file in /etc which is selected over a file in /usr.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
