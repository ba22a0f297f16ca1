// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the cars
// manipulation REST APIs to be accepted and delegated to the
// cars use cases respectively.
package carsrs

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-management/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-management/pkg/core/cerr"
	"github.com/momeni/car-management/pkg/core/model"
)

var errCarNotFound = errors.New("car not found")

// UseCase lists the cars use cases which are exposed as REST APIs.
// It is implemented by the *carsuc.UseCase.
type UseCase interface {
	GetAllCars(ctx context.Context) ([]model.Car, error)
	AddCar(ctx context.Context, d model.CarDraft) (model.Car, error)
	GetCarByID(ctx context.Context, id int64) (model.Car, bool, error)
	DeleteCar(ctx context.Context, id int64) error
}

type resource struct {
	cars UseCase
}

// Register instantiates a resource adapting the cars use case instance
// with the relevant REST APIs including:
//  1. GET request to /cars in order to list all cars,
//  2. POST request to /cars in order to add a car,
//  3. GET request to /cars/:id in order to fetch one car,
//  4. DELETE request to /cars/:id in order to delete one car.
func Register(r gin.IRouter, cars UseCase) {
	rs := &resource{cars: cars}
	r.GET("/cars", rs.GetAllCars)
	r.POST("/cars", rs.AddCar)
	r.GET("/cars/:id", rs.GetCarByID)
	r.DELETE("/cars/:id", rs.DeleteCar)
}

func (rs *resource) GetAllCars(c *gin.Context) {
	cars, err := rs.cars.GetAllCars(c.Request.Context())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

func (rs *resource) AddCar(c *gin.Context) {
	d, ok := rs.DserAddCarReq(c)
	if !ok {
		return
	}
	car, err := rs.cars.AddCar(c.Request.Context(), d)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

func (rs *resource) GetCarByID(c *gin.Context) {
	id, ok := rs.DserCarIDReq(c)
	if !ok {
		return
	}
	car, found, err := rs.cars.GetCarByID(c.Request.Context(), id)
	switch {
	case err != nil:
		serdser.SerErr(c, err)
	case !found:
		serdser.SerErr(c, cerr.NotFound(errCarNotFound))
	default:
		c.JSON(http.StatusOK, car)
	}
}

func (rs *resource) DeleteCar(c *gin.Context) {
	id, ok := rs.DserCarIDReq(c)
	if !ok {
		return
	}
	if err := rs.cars.DeleteCar(c.Request.Context(), id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
