// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors indicates that one or more fields of a model violate
// their constraints. Each key is a field name (as seen by the clients)
// and its value lists the messages of all violated constraints of that
// field. A nil FieldErrors contains no violation and may not be
// returned as an error.
//
// The REST adapter serializes this type as a json object, using the
// same format which is used for reporting the request binding errors.
type FieldErrors map[string][]string

// Add appends msgs to the list of messages of the `field` field,
// allocating the map on its first use.
func (fe *FieldErrors) Add(field string, msgs ...string) {
	if *fe == nil {
		*fe = make(FieldErrors)
	}
	(*fe)[field] = append((*fe)[field], msgs...)
}

// Error implements the error interface. Fields are reported in
// their lexicographical order, so the string is deterministic.
func (fe FieldErrors) Error() string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf(
			"%s: %s", name, strings.Join(fe[name], "; "),
		))
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}
