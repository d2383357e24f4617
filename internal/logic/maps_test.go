package logic

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/redeclipse/stats-api/internal/models"
)

func newMapService(pool *MockPool, maxResults int) *mapService {
	return &mapService{pg: pool, cache: nopCache{}, ttl: time.Minute, maxResults: maxResults}
}

func TestTopRaces(t *testing.T) {
	// rows: game_id, handle, name, score, when
	rows := [][]any{
		{int64(1), "ace", "Ace", int64(20), int64(100)},
		{int64(2), "ace", "Ace", int64(10), int64(200)},
		{int64(3), "bob", "Bob", int64(15), int64(300)},
		{int64(4), "zed", "Zed", int64(0), int64(400)}, // never finished
	}

	tests := []struct {
		name       string
		maxResults int
		want       []models.RaceResult
	}{
		{
			name:       "BestPerHandleAscending",
			maxResults: 10,
			want: []models.RaceResult{
				{GameID: 2, Handle: "ace", Name: "Ace", Score: 10, When: 200},
				{GameID: 3, Handle: "bob", Name: "Bob", Score: 15, When: 300},
			},
		},
		{
			name:       "Truncated",
			maxResults: 1,
			want: []models.RaceResult{
				{GameID: 2, Handle: "ace", Name: "Ace", Score: 10, When: 200},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := &MockPool{
				QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
					return &MockRows{Data: rows}, nil
				},
			}
			s := newMapService(pool, tt.maxResults)
			m := &models.Map{Name: "albatross", GameIDs: []int64{1, 2, 3, 4}}

			got, err := s.TopRaces(context.Background(), m, false)
			if err != nil {
				t.Fatalf("TopRaces() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopRaces() = %v, want %v", got, tt.want)
			}
			for _, r := range got {
				if r.Score <= 0 {
					t.Errorf("TopRaces() contains incomplete attempt: %+v", r)
				}
			}
		})
	}
}

func TestMapGetNotFound(t *testing.T) {
	pool := &MockPool{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &MockRows{}, nil
		},
	}
	s := newMapService(pool, 10)

	if _, err := s.Get(context.Background(), "no-such-map"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMapList(t *testing.T) {
	var lastSQL string
	pool := &MockPool{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			lastSQL = sql
			return &MockRows{Data: [][]any{{"bath"}, {"albatross"}}}, nil
		},
	}
	s := newMapService(pool, 10)

	got, err := s.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"bath", "albatross"}) {
		t.Errorf("List() = %v", got)
	}
	// The race restriction must be pushed down, not filtered in-process.
	if want := "fg.mode = $1"; !strings.Contains(lastSQL, want) {
		t.Errorf("List(race) SQL %q missing mode pushdown %q", lastSQL, want)
	}
}
