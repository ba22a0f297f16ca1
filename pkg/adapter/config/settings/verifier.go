// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
)

// OutOfRangeError reports a setting which was replaced by one of its
// boundary values, such as a gin shutdown-timeout longer than the
// accepted maximum. Config loaders log it as a warning and go on with
// the clamped value, so a typo in a timeout does not stop the server.
type OutOfRangeError[T cmp.Ordered] struct {
	Value *T // the configured value, before clamping
	Bound *T // the boundary which replaced Value

	LessThanMin  bool // Bound is the minimum
	InvalidRange bool // min is greater than max, nothing was clamped
}

func (e *OutOfRangeError[T]) Error() string {
	switch {
	case e.InvalidRange:
		return "min is greater than max"
	case e.LessThanMin:
		return "value is less than min, min is used instead"
	default:
		return "value is greater than max, max is used instead"
	}
}

// VerifyRange clamps the optional `*value` setting into the minb..maxb
// range. A nil `*value` is left for the Default helper, and a nil
// boundary is not checked. When clamping happens, `*value` points to
// the boundary value (the caller's variable is updated in place) and
// an error describing the adjustment is returned.
func VerifyRange[T cmp.Ordered](
	value **T, minb, maxb *T,
) *OutOfRangeError[T] {
	if minb != nil && maxb != nil && *minb > *maxb {
		return &OutOfRangeError[T]{InvalidRange: true}
	}
	if *value == nil {
		return nil
	}
	v := **value
	var bound T
	less := false
	switch {
	case minb != nil && v < *minb:
		bound, less = *minb, true
	case maxb != nil && v > *maxb:
		bound = *maxb
	default:
		return nil
	}
	**value = bound
	return &OutOfRangeError[T]{Value: &v, Bound: &bound, LessThanMin: less}
}
