package logic

import (
	"context"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
)

// Mocks shared by the service tests.

type MockPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (m *MockPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockRows{}, nil
}

func (m *MockPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockRow{}
}

// MockRows implements pgx.Rows for testing
type MockRows struct {
	pgx.Rows
	Data  [][]any
	Index int
}

func (m *MockRows) Next() bool {
	m.Index++
	return m.Index <= len(m.Data)
}

func (m *MockRows) Scan(dest ...any) error {
	if m.Index > len(m.Data) {
		return nil
	}
	row := m.Data[m.Index-1]
	for i, val := range row {
		if i < len(dest) {
			setDest(dest[i], val)
		}
	}
	return nil
}

func (m *MockRows) Close()     {}
func (m *MockRows) Err() error { return nil }

// MockRow implements pgx.Row for testing
type MockRow struct {
	Data    []any
	ScanErr error
}

func (m *MockRow) Scan(dest ...any) error {
	if m.ScanErr != nil {
		return m.ScanErr
	}
	for i, val := range m.Data {
		if i < len(dest) {
			setDest(dest[i], val)
		}
	}
	return nil
}

func setDest(dest any, val any) {
	v := reflect.ValueOf(dest).Elem()
	valV := reflect.ValueOf(val)
	if valV.Type().ConvertibleTo(v.Type()) {
		v.Set(valV.Convert(v.Type()))
	} else {
		v.Set(valV)
	}
}

// nopCache always computes; caching behaviour is covered in the cache
// package tests.
type nopCache struct{}

func (nopCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, dest any, compute func() error) error {
	return compute()
}
