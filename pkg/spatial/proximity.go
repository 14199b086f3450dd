// Package spatial turns point proximity into merge requests.
package spatial

import (
	"fmt"
	"sort"

	"github.com/tidwall/rtree"

	"table_merge/pkg/geo"
	"table_merge/pkg/input"
)

// Index is an R-tree over point positions keyed by element index.
type Index struct {
	tr  rtree.RTreeG[int]
	lat []float64
	lon []float64
}

// NewIndex builds an index over the given coordinates. lat and lon must
// have equal length.
func NewIndex(lat, lon []float64) (*Index, error) {
	if len(lat) != len(lon) {
		return nil, fmt.Errorf("coordinate length mismatch: %d lat, %d lon", len(lat), len(lon))
	}
	idx := &Index{lat: lat, lon: lon}
	for i := range lat {
		p := [2]float64{lon[i], lat[i]}
		idx.tr.Insert(p, p, i)
	}
	return idx, nil
}

// Len returns the number of indexed points.
func (idx *Index) Len() int {
	return idx.tr.Len()
}

// Within calls fn for every point within radiusMeters of point i,
// excluding i itself. Iteration stops when fn returns false. Search
// windows that cross the antimeridian are split in two.
func (idx *Index) Within(i int, radiusMeters float64, fn func(j int) bool) {
	lat, lon := idx.lat[i], idx.lon[i]
	dLat, dLon := geo.MetersToDegrees(lat, radiusMeters)
	// Cheap reject first; equirectangular is within 1% at search radii.
	prefilter := radiusMeters * 1.01

	stopped := false
	visit := func(_, _ [2]float64, j int) bool {
		if j == i {
			return true
		}
		if geo.EquirectangularDist(lat, lon, idx.lat[j], idx.lon[j]) > prefilter {
			return true
		}
		if geo.Haversine(lat, lon, idx.lat[j], idx.lon[j]) > radiusMeters {
			return true
		}
		if !fn(j) {
			stopped = true
		}
		return !stopped
	}
	search := func(west, east float64) {
		if stopped {
			return
		}
		idx.tr.Search([2]float64{west, lat - dLat}, [2]float64{east, lat + dLat}, visit)
	}

	if dLon >= 180 {
		search(-180, 180)
		return
	}
	west, east := lon-dLon, lon+dLon
	search(max(west, -180), min(east, 180))
	if west < -180 {
		search(west+360, 180)
	}
	if east > 180 {
		search(-180, east-360)
	}
}

// ProximityRequests returns a merge request for every pair of points no
// more than radiusMeters apart. Each pair appears once, as (lower, higher),
// sorted by destination then source.
func ProximityRequests(lat, lon []float64, radiusMeters float64) ([]input.Request, error) {
	idx, err := NewIndex(lat, lon)
	if err != nil {
		return nil, err
	}
	if radiusMeters < 0 {
		return nil, nil
	}

	var requests []input.Request
	for i := range lat {
		start := len(requests)
		idx.Within(i, radiusMeters, func(j int) bool {
			if j > i {
				requests = append(requests, input.Request{Destination: i, Source: j})
			}
			return true
		})
		found := requests[start:]
		sort.Slice(found, func(a, b int) bool { return found[a].Source < found[b].Source })
	}
	return requests, nil
}
