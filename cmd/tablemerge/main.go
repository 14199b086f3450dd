package main

import (
	"flag"
	"io"
	"log"
	"os"

	"table_merge/pkg/input"
)

func main() {
	inputPath := flag.String("input", "", "Read the problem from this file instead of stdin")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("tablemerge: ")

	var r io.Reader = os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatalf("Failed to open input file: %v", err)
		}
		defer f.Close()
		r = f
	}

	p, err := input.Read(r)
	if err != nil {
		log.Fatalf("Invalid input: %v", err)
	}
	if err := input.Run(p, os.Stdout); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}
}
