// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package recommend

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/cce459/AniLifeClone/internal/models"
)

// catalogFixture mirrors the seeded catalog: ID, genre and rating only.
func catalogFixture() []models.Title {
	rows := []struct{ id, genre, rating string }{
		{"aot", "액션", "9.8"},
		{"kny", "액션", "9.5"},
		{"jjk", "액션", "9.3"},
		{"op", "모험", "9.7"},
		{"tog", "액션", "8.9"},
		{"ghost", "드라마", "8.7"},
		{"csm", "액션", "9.1"},
		{"spy", "코미디", "9.4"},
		{"mha", "액션", "8.8"},
		{"idol", "판타지", "8.5"},
	}
	out := make([]models.Title, len(rows))
	for i, r := range rows {
		out[i] = models.Title{ID: r.id, Name: r.id, Genre: r.genre, Rating: r.rating}
	}
	return out
}

func ids(titles []models.Title) string {
	out := make([]string, len(titles))
	for i, t := range titles {
		out[i] = t.ID
	}
	return strings.Join(out, ",")
}

func TestRank(t *testing.T) {
	tests := []struct {
		name       string
		favorites  []string
		history    []string
		want       string
		coldStart  bool
		genres     []string
		backfilled int
	}{
		{
			name:      "cold start returns top eight by rating",
			want:      "aot,op,kny,spy,jjk,csm,tog,mha",
			coldStart: true,
			genres:    []string{},
		},
		{
			name:      "cold start excludes favorites only",
			favorites: []string{"unknown-id"},
			history:   []string{"also-unknown"},
			want:      "aot,op,kny,spy,jjk,csm,tog,mha",
			coldStart: true,
			genres:    []string{},
		},
		{
			name:       "comedy favorite backfills with top rated",
			favorites:  []string{"spy"},
			want:       "aot,op,kny,jjk,csm,tog",
			genres:     []string{"코미디"},
			backfilled: 6,
		},
		{
			name:       "action favorite",
			favorites:  []string{"aot"},
			want:       "kny,jjk,csm,tog,mha,op",
			genres:     []string{"액션"},
			backfilled: 1,
		},
		{
			name:       "history genres and exclusion",
			history:    []string{"ghost", "op"},
			want:       "aot,kny,spy,jjk,csm,tog",
			genres:     []string{"드라마", "모험"},
			backfilled: 6,
		},
		{
			name:       "favorites genres come before history genres",
			favorites:  []string{"idol"},
			history:    []string{"spy"},
			want:       "aot,op,kny,jjk,csm,tog",
			genres:     []string{"판타지", "코미디"},
			backfilled: 6,
		},
		{
			name:       "only the first five history entries contribute genres",
			history:    []string{"aot", "kny", "jjk", "tog", "csm", "spy"},
			want:       "mha,op,ghost,idol",
			genres:     []string{"액션"},
			backfilled: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(catalogFixture(), tt.favorites, tt.history, DefaultConfig())
			if ids(got.Titles) != tt.want {
				t.Errorf("titles = %s, want %s", ids(got.Titles), tt.want)
			}
			if got.ColdStart != tt.coldStart {
				t.Errorf("ColdStart = %v, want %v", got.ColdStart, tt.coldStart)
			}
			if !reflect.DeepEqual(got.PreferredGenres, tt.genres) {
				t.Errorf("PreferredGenres = %v, want %v", got.PreferredGenres, tt.genres)
			}
			if got.Backfilled != tt.backfilled {
				t.Errorf("Backfilled = %d, want %d", got.Backfilled, tt.backfilled)
			}
		})
	}
}

func TestRank_NeverReturnsFavoritesOrHistory(t *testing.T) {
	favorites := []string{"aot", "spy"}
	history := []string{"kny", "ghost", "idol"}

	got := Rank(catalogFixture(), favorites, history, DefaultConfig())
	excluded := toSet(append(append([]string{}, favorites...), history...))
	for _, title := range got.Titles {
		if _, bad := excluded[title.ID]; bad {
			t.Errorf("recommended excluded title %s", title.ID)
		}
	}
	if len(got.Titles) > DefaultConfig().Limit {
		t.Errorf("len = %d exceeds limit", len(got.Titles))
	}
}

func TestRank_Deterministic(t *testing.T) {
	first := Rank(catalogFixture(), []string{"op"}, []string{"csm"}, DefaultConfig())
	for i := 0; i < 20; i++ {
		again := Rank(catalogFixture(), []string{"op"}, []string{"csm"}, DefaultConfig())
		if ids(again.Titles) != ids(first.Titles) {
			t.Fatalf("run %d = %s, want %s", i, ids(again.Titles), ids(first.Titles))
		}
	}
}

func TestRank_EqualRatingsKeepCatalogOrder(t *testing.T) {
	titles := []models.Title{
		{ID: "a", Genre: "g", Rating: "9.0"},
		{ID: "b", Genre: "g", Rating: "9.5"},
		{ID: "c", Genre: "g", Rating: "9.0"},
		{ID: "d", Genre: "g", Rating: "9.0"},
	}
	got := Rank(titles, nil, nil, DefaultConfig())
	if ids(got.Titles) != "b,a,c,d" {
		t.Errorf("titles = %s, want b,a,c,d", ids(got.Titles))
	}
}

func TestRank_MalformedRatingSortsLast(t *testing.T) {
	titles := []models.Title{
		{ID: "bad", Genre: "g", Rating: "N/A"},
		{ID: "low", Genre: "g", Rating: "1.0"},
		{ID: "empty", Genre: "g", Rating: ""},
		{ID: "high", Genre: "g", Rating: "9.9"},
	}
	got := Rank(titles, nil, nil, DefaultConfig())
	if ids(got.Titles) != "high,low,bad,empty" {
		t.Errorf("titles = %s, want high,low,bad,empty", ids(got.Titles))
	}
}

func TestRank_EmptyResults(t *testing.T) {
	if got := Rank(nil, nil, nil, DefaultConfig()); got.Titles == nil || len(got.Titles) != 0 {
		t.Errorf("empty catalog = %v", got.Titles)
	}

	titles := []models.Title{{ID: "only", Genre: "g", Rating: "5"}}
	got := Rank(titles, []string{"only"}, nil, DefaultConfig())
	if len(got.Titles) != 0 {
		t.Errorf("everything excluded = %s", ids(got.Titles))
	}
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	titles := catalogFixture()
	before := ids(titles)
	_ = Rank(titles, []string{"spy"}, nil, DefaultConfig())
	if ids(titles) != before {
		t.Errorf("titles reordered to %s", ids(titles))
	}
}

func TestRank_CustomLimits(t *testing.T) {
	cfg := Config{Limit: 2, ColdLimit: 3, HistoryWindow: 1}

	cold := Rank(catalogFixture(), nil, nil, cfg)
	if ids(cold.Titles) != "aot,op,kny" {
		t.Errorf("cold = %s", ids(cold.Titles))
	}

	warm := Rank(catalogFixture(), nil, []string{"ghost", "spy"}, cfg)
	if ids(warm.Titles) != "aot,op" || !reflect.DeepEqual(warm.PreferredGenres, []string{"드라마"}) {
		t.Errorf("warm = %s genres %v", ids(warm.Titles), warm.PreferredGenres)
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"9.8", 9.8},
		{" 7 ", 7},
		{"", math.Inf(-1)},
		{"great", math.Inf(-1)},
		{"NaN", math.Inf(-1)},
		{"Inf", math.Inf(-1)},
		{"+Infinity", math.Inf(-1)},
	}
	for _, tt := range tests {
		if got := ParseRating(tt.in); got != tt.want {
			t.Errorf("ParseRating(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	for _, cfg := range []Config{
		{Limit: 0, ColdLimit: 8, HistoryWindow: 5},
		{Limit: 6, ColdLimit: 0, HistoryWindow: 5},
		{Limit: 6, ColdLimit: 8, HistoryWindow: -1},
	} {
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", cfg)
		}
	}
}
