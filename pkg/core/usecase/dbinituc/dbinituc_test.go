// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dbinituc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/momeni/car-management/pkg/core/repo"
	"github.com/momeni/car-management/pkg/core/usecase/dbinituc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	repo.Tx
}

type fakeConn struct {
	repo.Conn
	committed  bool
	rolledBack bool
}

func (c *fakeConn) Tx(ctx context.Context, h repo.TxHandler) error {
	if err := h(ctx, fakeTx{}); err != nil {
		c.rolledBack = true
		return err
	}
	c.committed = true
	return nil
}

type fakePool struct {
	conn *fakeConn
}

func (p *fakePool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, p.conn)
}

func (p *fakePool) Close() error {
	return nil
}

type fakeInitializer struct {
	calls []string
	err   error
}

func (fi *fakeInitializer) InitDevSchema(context.Context) error {
	fi.calls = append(fi.calls, "dev")
	return fi.err
}

func (fi *fakeInitializer) InitProdSchema(context.Context) error {
	fi.calls = append(fi.calls, "prod")
	return fi.err
}

func (fi *fakeInitializer) MajorVersion() uint {
	return 1
}

func factoryOf(fi *fakeInitializer) repo.SchemaInitializerFactory {
	return func(tx repo.Tx) (repo.SchemaInitializer, error) {
		if _, ok := tx.(fakeTx); !ok {
			return nil, errors.New("unexpected transaction type")
		}
		return fi, nil
	}
}

func TestInitDevAndProd(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name string
		run  func(*dbinituc.UseCase) error
	}{
		{"dev", func(uc *dbinituc.UseCase) error { return uc.InitDev(ctx) }},
		{"prod", func(uc *dbinituc.UseCase) error { return uc.InitProd(ctx) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fi := &fakeInitializer{}
			p := &fakePool{conn: &fakeConn{}}
			uc := dbinituc.New(p, factoryOf(fi))
			require.NoError(t, tc.run(uc))
			assert.Equal(t, []string{tc.name}, fi.calls)
			assert.True(t, p.conn.committed)
		})
	}
}

func TestInitFailureRollsBack(t *testing.T) {
	boom := errors.New("relation already exists")
	fi := &fakeInitializer{err: boom}
	p := &fakePool{conn: &fakeConn{}}
	uc := dbinituc.New(p, factoryOf(fi))
	err := uc.InitDev(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, p.conn.rolledBack)
	assert.False(t, p.conn.committed)
}

func TestFactoryFailure(t *testing.T) {
	boom := errors.New("unsupported major version")
	p := &fakePool{conn: &fakeConn{}}
	uc := dbinituc.New(p, func(repo.Tx) (repo.SchemaInitializer, error) {
		return nil, boom
	})
	err := uc.InitProd(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "creating SchemaInitializer")
}
