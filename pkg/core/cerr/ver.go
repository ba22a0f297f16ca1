// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/car-management/pkg/core/model"
)

// MismatchingSemVerError indicates an error condition where a specific
// semantic version was expected, but another version was present.
// The Subject names the versioned resource, such as "config" or
// "database schema", so the error reads well without further wrapping.
type MismatchingSemVerError struct {
	Subject  string
	Expected model.SemVer
	Actual   model.SemVer
}

// Error returns a string representation of `msve` error instance. This
// method causes *MismatchingSemVerError to implement error interface.
func (msve *MismatchingSemVerError) Error() string {
	return fmt.Sprintf(
		"unexpected %s version: expected v%s, but got v%s",
		msve.Subject, msve.Expected.String(), msve.Actual.String(),
	)
}
