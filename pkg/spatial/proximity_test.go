package spatial

import (
	"testing"

	"table_merge/pkg/input"
	"table_merge/pkg/merge"
)

// Three points ~50m apart on a line, and one ~5km away.
var (
	testLat = []float64{1.3000, 1.30045, 1.3009, 1.3450}
	testLon = []float64{103.8000, 103.8000, 103.8000, 103.8000}
)

func TestNewIndex_LengthMismatch(t *testing.T) {
	if _, err := NewIndex([]float64{1}, nil); err == nil {
		t.Error("expected error for mismatched coordinate slices")
	}
}

func TestIndex_Within(t *testing.T) {
	idx, err := NewIndex(testLat, testLon)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if idx.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", idx.Len())
	}

	var got []int
	idx.Within(1, 60, func(j int) bool {
		got = append(got, j)
		return true
	})
	if len(got) != 2 {
		t.Fatalf("Within(1, 60m) = %v, want neighbours 0 and 2", got)
	}
	for _, j := range got {
		if j != 0 && j != 2 {
			t.Errorf("unexpected neighbour %d", j)
		}
	}
}

func TestProximityRequests(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		want   []input.Request
	}{
		{"tight radius", 10, nil},
		{"adjacent only", 60, []input.Request{{Destination: 0, Source: 1}, {Destination: 1, Source: 2}}},
		{"whole cluster", 120, []input.Request{{Destination: 0, Source: 1}, {Destination: 0, Source: 2}, {Destination: 1, Source: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProximityRequests(testLat, testLon, tt.radius)
			if err != nil {
				t.Fatalf("ProximityRequests: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("request %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestProximityRequests_LargestCluster(t *testing.T) {
	requests, err := ProximityRequests(testLat, testLon, 60)
	if err != nil {
		t.Fatalf("ProximityRequests: %v", err)
	}

	m := merge.NewMerger([]int64{1, 1, 1, 1})
	for _, r := range requests {
		m.Merge(r.Destination, r.Source)
	}
	if m.Max() != 3 {
		t.Errorf("largest cluster = %d, want 3", m.Max())
	}
	if m.Forest().Connected(0, 3) {
		t.Error("distant point should stay in its own group")
	}
}

func TestProximityRequests_Antimeridian(t *testing.T) {
	lat := []float64{0, 0, 0}
	lon := []float64{179.9999, -179.9999, 179.0}

	got, err := ProximityRequests(lat, lon, 60)
	if err != nil {
		t.Fatalf("ProximityRequests: %v", err)
	}
	want := []input.Request{{Destination: 0, Source: 1}}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIndex_WithinStops(t *testing.T) {
	idx, err := NewIndex(testLat, testLon)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	calls := 0
	idx.Within(1, 120, func(int) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Errorf("fn called %d times after returning false, want 1", calls)
	}
}
