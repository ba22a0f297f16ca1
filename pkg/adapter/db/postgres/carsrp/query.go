package carsrp

import (
	"context"
	"fmt"
	"math"

	"github.com/momeni/car-management/pkg/adapter/db/postgres"
	"github.com/momeni/car-management/pkg/core/model"
)

type gCar struct {
	ID    int64 `gorm:"primaryKey;autoIncrement"`
	Marca string
	Model string
	An    int32
	Pret  float64
}

func (gc *gCar) TableName() string {
	return "cars"
}

func (gc *gCar) Car() model.Car {
	return model.Car{
		ID:    gc.ID,
		Marca: gc.Marca,
		Model: gc.Model,
		An:    int(gc.An),
		Pret:  gc.Pret,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, c model.Car) (model.Car, error) {
	if c.ID != 0 {
		return model.Car{}, fmt.Errorf("car ID is already set: %d", c.ID)
	}
	if c.An < math.MinInt32 || c.An > math.MaxInt32 {
		return model.Car{}, fmt.Errorf("car year is out of range: %d", c.An)
	}
	gc := gCar{Marca: c.Marca, Model: c.Model, An: int32(c.An), Pret: c.Pret}
	if err := q.GORM(ctx).Create(&gc).Error; err != nil {
		return model.Car{}, fmt.Errorf("insert: %w", err)
	}
	return gc.Car(), nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Car, error) {
	var gcs []gCar
	if err := q.GORM(ctx).Order("id").Find(&gcs).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	cars := make([]model.Car, 0, len(gcs))
	for i := range gcs {
		cars = append(cars, gcs[i].Car())
	}
	return cars, nil
}

func Find[Q postgres.Queryer](ctx context.Context, q Q, id int64) (model.Car, bool, error) {
	var gcs []gCar
	err := q.GORM(ctx).Where("id = ?", id).Limit(1).Find(&gcs).Error
	if err != nil {
		return model.Car{}, false, fmt.Errorf("query: %w", err)
	}
	if len(gcs) == 0 {
		return model.Car{}, false, nil
	}
	return gcs[0].Car(), true, nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id int64) (int64, error) {
	res := q.GORM(ctx).Where("id = ?", id).Delete(&gCar{})
	if err := res.Error; err != nil {
		return 0, fmt.Errorf("delete: %w", err)
	}
	return res.RowsAffected, nil
}
