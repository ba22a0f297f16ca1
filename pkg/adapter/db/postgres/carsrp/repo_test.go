package carsrp_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/momeni/car-management/pkg/adapter/db/postgres"
	"github.com/momeni/car-management/pkg/adapter/db/postgres/carsrp"
	"github.com/momeni/car-management/pkg/core/model"
	"github.com/momeni/car-management/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpg "gorm.io/driver/postgres"
)

var carColumns = []string{"id", "marca", "model", "an", "pret"}

func newMockPool(t *testing.T) (*postgres.Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "cannot create sqlmock")
	p, err := postgres.NewPoolWithDialector(
		context.Background(), gormpg.New(gormpg.Config{Conn: db}),
	)
	require.NoError(t, err, "cannot create pool")
	t.Cleanup(func() {
		_ = p.Close()
	})
	return p, mock
}

func withCars(
	t *testing.T, p *postgres.Pool, f func(repo.CarsConnQueryer) error,
) {
	t.Helper()
	rp := carsrp.New()
	err := p.Conn(context.Background(), func(
		ctx context.Context, c repo.Conn,
	) error {
		return f(rp.Conn(c))
	})
	require.NoError(t, err)
}

func TestCreate(t *testing.T) {
	p, mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "cars"`)).
		WithArgs("Dacia", "Logan", 2015, 5000.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	withCars(t, p, func(q repo.CarsConnQueryer) error {
		c, err := q.Create(context.Background(), model.Car{
			Marca: "Dacia", Model: "Logan", An: 2015, Pret: 5000,
		})
		if err != nil {
			return err
		}
		assert.Equal(t, model.Car{
			ID: 7, Marca: "Dacia", Model: "Logan", An: 2015, Pret: 5000,
		}, c)
		return nil
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsStoredCars(t *testing.T) {
	p, mock := newMockPool(t)
	withCars(t, p, func(q repo.CarsConnQueryer) error {
		_, err := q.Create(context.Background(), model.Car{ID: 3})
		assert.Error(t, err)
		_, err = q.Create(context.Background(), model.Car{
			Marca: "Dacia", Model: "Logan", An: 3_000_000_000, Pret: 5000,
		})
		assert.ErrorContains(t, err, "out of range", "no query is sent")
		return nil
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	p, mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "cars" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows(carColumns).
			AddRow(1, "Dacia", "Logan", 2015, 5000.0).
			AddRow(2, "Ford", "Model T", 1908, 35000.0))

	withCars(t, p, func(q repo.CarsConnQueryer) error {
		cars, err := q.List(context.Background())
		if err != nil {
			return err
		}
		assert.Equal(t, []model.Car{
			{ID: 1, Marca: "Dacia", Model: "Logan", An: 2015, Pret: 5000},
			{ID: 2, Marca: "Ford", Model: "Model T", An: 1908, Pret: 35000},
		}, cars)
		return nil
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmpty(t *testing.T) {
	p, mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "cars"`)).
		WillReturnRows(sqlmock.NewRows(carColumns))

	withCars(t, p, func(q repo.CarsConnQueryer) error {
		cars, err := q.List(context.Background())
		if err != nil {
			return err
		}
		assert.NotNil(t, cars, "empty list must not be nil")
		assert.Empty(t, cars)
		return nil
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFind(t *testing.T) {
	p, mock := newMockPool(t)
	q := regexp.QuoteMeta(`SELECT * FROM "cars" WHERE id = $1 LIMIT 1`)
	mock.ExpectQuery(q).WithArgs(1).WillReturnRows(
		sqlmock.NewRows(carColumns).AddRow(1, "Dacia", "Logan", 2015, 5000.0),
	)
	mock.ExpectQuery(q).WithArgs(2).WillReturnRows(
		sqlmock.NewRows(carColumns),
	)

	withCars(t, p, func(cq repo.CarsConnQueryer) error {
		ctx := context.Background()
		c, found, err := cq.Find(ctx, 1)
		if err != nil {
			return err
		}
		assert.True(t, found)
		assert.Equal(t, "Logan", c.Model)

		c, found, err = cq.Find(ctx, 2)
		if err != nil {
			return err
		}
		assert.False(t, found)
		assert.Zero(t, c)
		return nil
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	p, mock := newMockPool(t)
	q := regexp.QuoteMeta(`DELETE FROM "cars" WHERE id = $1`)
	mock.ExpectBegin()
	mock.ExpectExec(q).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(q).WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	withCars(t, p, func(cq repo.CarsConnQueryer) error {
		ctx := context.Background()
		n, err := cq.Delete(ctx, 1)
		if err != nil {
			return err
		}
		assert.EqualValues(t, 1, n)
		n, err = cq.Delete(ctx, 99)
		if err != nil {
			return err
		}
		assert.Zero(t, n, "deleting a missing car removes nothing")
		return nil
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	p, mock := newMockPool(t)
	boom := errors.New("connection reset by peer")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "cars"`)).
		WillReturnError(boom)

	err := p.Conn(context.Background(), func(
		ctx context.Context, c repo.Conn,
	) error {
		_, err := carsrp.New().Conn(c).List(ctx)
		return err
	})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "query")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxQueryer(t *testing.T) {
	p, mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "cars"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectRollback()

	boom := errors.New("abort")
	err := p.Conn(context.Background(), func(
		ctx context.Context, c repo.Conn,
	) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			car, err := carsrp.New().Tx(tx).Create(ctx, model.Car{
				Marca: "Dacia", Model: "Logan", An: 2015, Pret: 5000,
			})
			if err != nil {
				return err
			}
			assert.EqualValues(t, 11, car.ID)
			return boom
		})
	})
	require.ErrorIs(t, err, boom, "handler error causes a rollback")
	assert.NoError(t, mock.ExpectationsWereMet())
}
