package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// fakeRedis is an in-memory RedisClient for testing.
type fakeRedis struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	setKeys []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if f.getErr != nil {
		cmd.SetErr(f.getErr)
		return cmd
	}
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(v))
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.setErr != nil {
		cmd.SetErr(f.setErr)
		return cmd
	}
	f.data[key] = value.([]byte)
	f.setKeys = append(f.setKeys, key)
	cmd.SetVal("OK")
	return cmd
}

func TestGetOrComputeMiss(t *testing.T) {
	rdb := newFakeRedis()
	s := New(rdb, zap.NewNop())

	computed := 0
	var v float64
	err := s.GetOrCompute(context.Background(), "stats:player:foo:dpm", time.Minute, &v, func() error {
		computed++
		v = 42.5
		return nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() error = %v", err)
	}
	if computed != 1 {
		t.Errorf("compute ran %d times, want 1", computed)
	}
	if v != 42.5 {
		t.Errorf("dest = %v, want 42.5", v)
	}
	if len(rdb.setKeys) != 1 || rdb.setKeys[0] != "stats:player:foo:dpm" {
		t.Errorf("stored keys = %v", rdb.setKeys)
	}
}

func TestGetOrComputeHit(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data["k"] = []byte("17.5")
	s := New(rdb, zap.NewNop())

	var v float64
	err := s.GetOrCompute(context.Background(), "k", time.Minute, &v, func() error {
		t.Fatal("compute ran on cache hit")
		return nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() error = %v", err)
	}
	if v != 17.5 {
		t.Errorf("dest = %v, want cached 17.5", v)
	}
}

func TestGetOrComputeRedisDown(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	rdb.setErr = errors.New("connection refused")
	s := New(rdb, zap.NewNop())

	var v int
	err := s.GetOrCompute(context.Background(), "k", time.Minute, &v, func() error {
		v = 7
		return nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() must degrade to compute, got error %v", err)
	}
	if v != 7 {
		t.Errorf("dest = %d, want 7", v)
	}
}

func TestGetOrComputeError(t *testing.T) {
	rdb := newFakeRedis()
	s := New(rdb, zap.NewNop())

	want := errors.New("query failed")
	var v int
	err := s.GetOrCompute(context.Background(), "k", time.Minute, &v, func() error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("GetOrCompute() error = %v, want %v", err, want)
	}
	if len(rdb.data) != 0 {
		t.Errorf("failed compute was cached: %v", rdb.data)
	}
}

func TestGetOrComputeCorruptEntry(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data["k"] = []byte("{not json")
	s := New(rdb, zap.NewNop())

	var v int
	err := s.GetOrCompute(context.Background(), "k", time.Minute, &v, func() error {
		v = 3
		return nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() error = %v", err)
	}
	if v != 3 {
		t.Errorf("dest = %d, want recomputed 3", v)
	}
	if string(rdb.data["k"]) != "3" {
		t.Errorf("corrupt entry not overwritten: %q", rdb.data["k"])
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"NoArgs", Key("player", "foo", "dpm"), "stats:player:foo:dpm"},
		{"OneArg", Key("player", "foo", "dpm", 50), "stats:player:foo:dpm:50"},
		{"SortedArgs", Key("map", "bath", "topraces", true, 10), "stats:map:bath:topraces:10:true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Key() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
