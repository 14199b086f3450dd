package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"table_merge/pkg/merge"
	osmparser "table_merge/pkg/osm"
	"table_merge/pkg/spatial"
)

func main() {
	inputPath := flag.String("input", "", "Path to .osm.pbf or .osm file")
	bbox := flag.String("bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng (e.g. 1.15,103.6,1.48,104.1)")
	singapore := flag.Bool("singapore", false, "Shortcut for --bbox 1.15,103.6,1.48,104.1 (Singapore bounding box)")
	radius := flag.Float64("radius", 0, "Also merge nodes closer than this many meters (0 = off)")
	top := flag.Int("top", 5, "Log the sizes of this many largest components")
	every := flag.Int("every", 100000, "Log the largest component after this many merges")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: components --input <file.osm.pbf|file.osm> [--singapore | --bbox minLat,minLng,maxLat,maxLng] [--radius meters]")
		os.Exit(1)
	}

	var opts osmparser.ParseOptions
	if *singapore {
		opts.BBox = osmparser.BBox{MinLat: 1.15, MaxLat: 1.48, MinLng: 103.6, MaxLng: 104.1}
		log.Println("Using Singapore bounding box filter: lat [1.15, 1.48], lng [103.6, 104.1]")
	} else if *bbox != "" {
		var minLat, minLng, maxLat, maxLng float64
		_, err := fmt.Sscanf(*bbox, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng)
		if err != nil {
			log.Fatalf("Invalid bbox format (expected minLat,minLng,maxLat,maxLng): %v", err)
		}
		opts.BBox = osmparser.BBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
		log.Printf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]", minLat, maxLat, minLng, maxLng)
	}

	start := time.Now()

	f, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	open := osmparser.PBF
	if filepath.Ext(*inputPath) == ".osm" {
		open = osmparser.XML
	}

	log.Println("Parsing OSM data...")
	net, err := osmparser.Parse(context.Background(), f, open, opts)
	if err != nil {
		log.Fatalf("Failed to parse OSM data: %v", err)
	}
	p := net.Problem()

	if *radius > 0 {
		log.Printf("Indexing %d nodes for %.1f m proximity merges...", len(net.NodeIDs), *radius)
		extra, err := spatial.ProximityRequests(net.Lat, net.Lon, *radius)
		if err != nil {
			log.Fatalf("Failed to build proximity merges: %v", err)
		}
		log.Printf("Added %d proximity merges", len(extra))
		p.Requests = append(p.Requests, extra...)
	}

	log.Printf("Merging %d nodes with %d requests...", len(p.Weights), len(p.Requests))
	m := merge.NewMerger(p.Weights)
	for i, r := range p.Requests {
		largest := m.Merge(r.Destination, r.Source)
		if *every > 0 && (i+1)%*every == 0 {
			log.Printf("%d merges: largest component %d nodes, %d components", i+1, largest, m.Forest().Groups())
		}
	}

	if len(p.Weights) == 0 {
		log.Printf("No nodes found. Done in %s", time.Since(start).Round(time.Millisecond))
		return
	}
	log.Printf("Largest component: %d of %d nodes (%.1f%%), %d components",
		m.Max(), len(p.Weights), float64(m.Max())/float64(len(p.Weights))*100, m.Forest().Groups())
	for i, set := range m.Forest().Sets() {
		if i == *top {
			break
		}
		first := set[0]
		log.Printf("  #%d: %d nodes, e.g. node %d (%.6f, %.6f)", i+1, m.Forest().SizeOf(first), net.NodeIDs[first], net.Lat[first], net.Lon[first])
	}
	log.Printf("Done in %s", time.Since(start).Round(time.Millisecond))
}
