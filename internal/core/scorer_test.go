package core

import (
	"math"
	"testing"
)

func TestScorePlaceLiteralValues(t *testing.T) {
	cases := []struct {
		name  string
		place Place
		want  float64
	}{
		{
			name:  "worst case: central chain attraction",
			place: Place{DistanceFromCenter: 0, IsChain: true, IsTouristAttraction: true},
			// 0.4*1.0 + 0.3*0.8 + 0.3*0.7
			want: 0.85,
		},
		{
			name:  "best case: far independent place",
			place: Place{DistanceFromCenter: 7.5},
			want:  0,
		},
		{
			name:  "central independent place",
			place: Place{DistanceFromCenter: 0},
			want:  0.4,
		},
		{
			name:  "halfway out, attraction only",
			place: Place{DistanceFromCenter: 2.5, IsTouristAttraction: true},
			// 0.4*0.5 + 0.3*0.8
			want: 0.44,
		},
		{
			name:  "clamped at normalize radius",
			place: Place{DistanceFromCenter: 5.0, IsChain: true},
			// 0.3*0.7
			want: 0.21,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScorePlace(&tc.place, DefaultNormalizeKM)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("score = %v, want %v", got, tc.want)
			}
			if tc.place.CrowdScore != got {
				t.Fatalf("score not stored on place: %v vs %v", tc.place.CrowdScore, got)
			}
		})
	}
}

func TestScorePlaceBounds(t *testing.T) {
	places := []Place{
		{DistanceFromCenter: 0, IsChain: true, IsTouristAttraction: true},
		{DistanceFromCenter: 1.3, IsChain: true},
		{DistanceFromCenter: 100},
		{DistanceFromCenter: 4.99, IsTouristAttraction: true},
	}
	for i := range places {
		score := ScorePlace(&places[i], DefaultNormalizeKM)
		if score < 0 || score > 0.85 {
			t.Errorf("place %d score %v outside [0, 0.85]", i, score)
		}
	}
}

func TestRankPlacesOrder(t *testing.T) {
	build := func() []Place {
		return []Place{
			{Name: "chain near center", DistanceFromCenter: 0.1, IsChain: true},
			{Name: "quiet park", DistanceFromCenter: 4.2},
			{Name: "museum", DistanceFromCenter: 1.0, IsTouristAttraction: true},
			{Name: "local cafe", DistanceFromCenter: 2.0},
		}
	}

	t.Run("avoid crowds ascending", func(t *testing.T) {
		ranked := RankPlaces(build(), true)
		for i := 1; i < len(ranked); i++ {
			if ranked[i].CrowdScore < ranked[i-1].CrowdScore {
				t.Fatalf("not ascending at %d: %v", i, ranked)
			}
		}
		if ranked[0].Name != "quiet park" {
			t.Errorf("least crowded should rank first, got %q", ranked[0].Name)
		}
	})

	t.Run("seek crowds descending", func(t *testing.T) {
		ranked := RankPlaces(build(), false)
		for i := 1; i < len(ranked); i++ {
			if ranked[i].CrowdScore > ranked[i-1].CrowdScore {
				t.Fatalf("not descending at %d: %v", i, ranked)
			}
		}
	})
}

func TestRankPlacesStable(t *testing.T) {
	// Identical places keep their input order for equal scores.
	places := []Place{
		{Name: "first", DistanceFromCenter: 1.0},
		{Name: "second", DistanceFromCenter: 1.0},
		{Name: "third", DistanceFromCenter: 1.0},
	}
	ranked := RankPlaces(places, true)
	for i, want := range []string{"first", "second", "third"} {
		if ranked[i].Name != want {
			t.Fatalf("stability broken at %d: %v", i, ranked)
		}
	}
}
