// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/car-management/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestSemVerUnmarshalText(t *testing.T) {
	for text, expected := range map[string]model.SemVer{
		"1.0.0":  {1, 0, 0},
		"2.3":    {2, 3, 0},
		"4":      {4, 0, 0},
		"10.2.7": {10, 2, 7},
	} {
		sv := model.SemVer{}
		assert.NoError(t, sv.UnmarshalText([]byte(text)), text)
		assert.Equal(t, expected, sv, text)
		assert.Equal(t, expected.String(), sv.Marshal())
	}
	for _, text := range []string{"", "1.2.3.4", "1.-2", "v1", "1..2"} {
		sv := model.SemVer{9, 9, 9}
		assert.Error(t, sv.UnmarshalText([]byte(text)), text)
		assert.Equal(t, model.SemVer{9, 9, 9}, sv, "must be left unchanged")
	}
}
