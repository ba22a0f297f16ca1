// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc

import (
	"errors"
	"fmt"
	"log/slog"
)

// Option is a functional option for the cars use case.
type Option func(uc *UseCase) error

// WithCreateLogLevel option configures a cars UseCase instance in order
// to log each created car at the given level. Info is used by default.
// This option may be passed to the New() function.
func WithCreateLogLevel(level slog.Level) Option {
	return func(uc *UseCase) error {
		if level < slog.LevelDebug || level > slog.LevelError {
			return fmt.Errorf("log level (%d) is out of range", level)
		}
		if uc.createLogLevel != nil {
			return errors.New("create log level is already configured")
		}
		uc.createLogLevel = &level
		return nil
	}
}
