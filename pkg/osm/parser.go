package osm

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"

	"table_merge/pkg/input"
)

// Segment joins two consecutive way nodes, as indices into Network.NodeIDs.
type Segment struct {
	From int
	To   int
}

// Network is a road network reduced to a merge problem: every node is an
// element of weight 1 and every segment merges its endpoints.
type Network struct {
	NodeIDs  []osm.NodeID
	Lat      []float64
	Lon      []float64
	Segments []Segment
}

// Problem returns the merge workload for the network.
func (n *Network) Problem() *input.Problem {
	weights := make([]int64, len(n.NodeIDs))
	for i := range weights {
		weights[i] = 1
	}
	requests := make([]input.Request, len(n.Segments))
	for i, s := range n.Segments {
		requests[i] = input.Request{Destination: s.From, Source: s.To}
	}
	return &input.Problem{Weights: weights, Requests: requests}
}

// carHighways lists highway tag values accessible by car.
var carHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// isCarAccessible returns true if the way is drivable by car.
func isCarAccessible(tags osm.Tags) bool {
	if !carHighways[tags.Find("highway")] {
		return false
	}

	// Skip area highways (pedestrian plazas).
	if tags.Find("area") == "yes" {
		return false
	}

	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}
	return tags.Find("motor_vehicle") != "no"
}

// BBox defines a geographic bounding box for filtering.
// If non-zero, only segments with both endpoints inside the box are kept.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero returns true if the bbox is unset.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}

// Contains returns true if the point is inside the bounding box.
func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// ParseOptions configures the OSM parser.
type ParseOptions struct {
	BBox BBox
}

// Pass names the object type a parse pass consumes.
type Pass int

const (
	PassWays Pass = iota
	PassNodes
)

// ScannerFunc opens a scanner over r for the given pass. Scanners may skip
// objects the pass does not need.
type ScannerFunc func(ctx context.Context, r io.Reader, pass Pass) osm.Scanner

// PBF scans .osm.pbf data with a single decoder goroutine, decoding only
// the objects the pass needs.
func PBF(ctx context.Context, r io.Reader, pass Pass) osm.Scanner {
	scanner := osmpbf.New(ctx, r, 1)
	scanner.SkipRelations = true
	scanner.SkipNodes = pass != PassNodes
	scanner.SkipWays = pass != PassWays
	return scanner
}

// XML scans .osm XML data. The XML decoder cannot skip objects.
func XML(ctx context.Context, r io.Reader, _ Pass) osm.Scanner {
	return osmxml.New(ctx, r)
}

// Parse reads car-accessible ways and their node coordinates and returns the
// resulting network. The reader is consumed twice (ways first, then nodes),
// so it must implement io.ReadSeeker.
func Parse(ctx context.Context, rs io.ReadSeeker, open ScannerFunc, opts ParseOptions) (*Network, error) {
	// Pass 1: ways.
	referenced := make(map[osm.NodeID]struct{})
	var ways [][]osm.NodeID

	scanner := open(ctx, rs, PassWays)
	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok || len(w.Nodes) < 2 || !isCarAccessible(w.Tags) {
			continue
		}

		ids := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			ids[i] = wn.ID
			referenced[wn.ID] = struct{}{}
		}
		ways = append(ways, ids)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()

	log.Printf("Pass 1 complete: %d ways, %d referenced nodes", len(ways), len(referenced))

	// Pass 2: coordinates of referenced nodes.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	type coord struct{ lat, lon float64 }
	coords := make(map[osm.NodeID]coord, len(referenced))

	scanner = open(ctx, rs, PassNodes)
	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[n.ID]; needed {
			coords[n.ID] = coord{n.Lat, n.Lon}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()

	log.Printf("Pass 2 complete: %d node coordinates collected", len(coords))

	// Build the network, numbering nodes in order of first use.
	net := &Network{}
	index := make(map[osm.NodeID]int)
	addNode := func(id osm.NodeID, c coord) int {
		if i, ok := index[id]; ok {
			return i
		}
		i := len(net.NodeIDs)
		index[id] = i
		net.NodeIDs = append(net.NodeIDs, id)
		net.Lat = append(net.Lat, c.lat)
		net.Lon = append(net.Lon, c.lon)
		return i
	}

	useBBox := !opts.BBox.IsZero()
	var skipped, filtered int
	for _, ids := range ways {
		for i := 0; i < len(ids)-1; i++ {
			from, fromOk := coords[ids[i]]
			to, toOk := coords[ids[i+1]]
			if !fromOk || !toOk {
				skipped++
				continue
			}
			if useBBox && (!opts.BBox.Contains(from.lat, from.lon) || !opts.BBox.Contains(to.lat, to.lon)) {
				filtered++
				continue
			}
			net.Segments = append(net.Segments, Segment{
				From: addNode(ids[i], from),
				To:   addNode(ids[i+1], to),
			})
		}
	}

	if skipped > 0 {
		log.Printf("Warning: skipped %d segments due to missing node coordinates", skipped)
	}
	if filtered > 0 {
		log.Printf("Filtered %d segments outside bounding box", filtered)
	}
	log.Printf("Built %d segments over %d nodes", len(net.Segments), len(net.NodeIDs))

	return net, nil
}
