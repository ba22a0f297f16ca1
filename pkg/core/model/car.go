// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., the json tags which are used
// by the REST API adapter) since adding more tags does not complicate
// definition of a struct, but can prevent unnecessary structs
// duplication. The database mapping is kept in the adapter layer, see
// the unexported gCar struct in pkg/adapter/db/postgres/carsrp package.
package model

import (
	"log/slog"
	"math"
	"strings"
)

// These constants are the inclusive lower bounds of the numeric Car
// fields. The MinYear is the year that the automobile was invented.
const (
	MinYear  = 1886
	MinPrice = 1.0
)

// MaxYear is the inclusive upper bound of the An field, so it fits in
// the 32-bit integer column of the cars table.
const MaxYear = math.MaxInt32

// Car models a car listing which may be persisted in a database.
// The ID is assigned by the storage layer on insertion and remains
// zero until then. Other fields are checked by the CarDraft.Validate
// method before a car may be stored.
type Car struct {
	ID    int64   `json:"id"`    // storage assigned identifier
	Marca string  `json:"marca"` // brand of the car
	Model string  `json:"model"` // model name within the brand
	An    int     `json:"an"`    // manufacturing year
	Pret  float64 `json:"pret"`  // price of the listing
}

// LogValue implements slog.LogValuer, so a Car may be logged as a
// group of its fields using the log.Valuer helper.
func (c Car) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("id", c.ID),
		slog.String("marca", c.Marca),
		slog.String("model", c.Model),
		slog.Int("an", c.An),
		slog.Float64("pret", c.Pret),
	)
}

// CarDraft contains the client provided fields of a car which is not
// stored yet. A nil field indicates that it was missing in the request,
// so presence and range constraints can be told apart.
type CarDraft struct {
	Marca *string
	Model *string
	An    *int
	Pret  *float64
}

// These messages are attached to the violating fields of a CarDraft
// and are reported to the frontend as they are.
const (
	MsgBlankMarca = "Marca nu poate fi goală"
	MsgBlankModel = "Modelul nu poate fi gol"
	MsgNullAn     = "Anul nu poate fi null"
	MsgMinAn      = "Anul trebuie să fie mai mare decât 1886"
	MsgMaxAn      = "Anul este prea mare"
	MsgNullPret   = "Prețul nu poate fi null"
	MsgMinPret    = "Prețul trebuie să fie pozitiv"
)

// Validate checks all constraints of the `d` draft and returns nil if
// it may be stored. Otherwise, a FieldErrors instance is returned which
// lists every violated constraint (not just the first one), keyed by
// the json name of the offending field.
func (d *CarDraft) Validate() error {
	var errs FieldErrors
	if d.Marca == nil || isBlank(*d.Marca) {
		errs.Add("marca", MsgBlankMarca)
	}
	if d.Model == nil || isBlank(*d.Model) {
		errs.Add("model", MsgBlankModel)
	}
	switch {
	case d.An == nil:
		errs.Add("an", MsgNullAn)
	case *d.An < MinYear:
		errs.Add("an", MsgMinAn)
	case *d.An > MaxYear:
		errs.Add("an", MsgMaxAn)
	}
	switch {
	case d.Pret == nil:
		errs.Add("pret", MsgNullPret)
	case math.IsNaN(*d.Pret) || *d.Pret < MinPrice:
		errs.Add("pret", MsgMinPret)
	}
	if errs == nil {
		return nil
	}
	return errs
}

// Car converts the `d` draft into a Car model with a zero ID.
// It must be called after a successful Validate call, otherwise,
// dereferencing the missing fields causes a panic.
func (d *CarDraft) Car() Car {
	return Car{
		Marca: *d.Marca,
		Model: *d.Model,
		An:    *d.An,
		Pret:  *d.Pret,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
