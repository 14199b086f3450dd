package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"table_merge/pkg/api"
)

// envInt reads an integer environment variable, returning def when unset.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid %s=%q: %v", key, v, err)
	}
	return n
}

func main() {
	// Optional .env file; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	port := flag.Int("port", envInt("TABLEMERGE_PORT", 8080), "HTTP port")
	maxElements := flag.Int("max-elements", envInt("TABLEMERGE_MAX_ELEMENTS", 1_000_000), "Largest forest a client may create")
	maxForests := flag.Int("max-forests", envInt("TABLEMERGE_MAX_FORESTS", 1024), "Most forests held at once (0 = unlimited)")
	corsOrigin := flag.String("cors-origin", os.Getenv("TABLEMERGE_CORS_ORIGIN"), "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	handlers := api.NewHandlers(api.NewRegistry(*maxForests), *maxElements)
	srv := api.NewServer(cfg, handlers)

	log.Printf("Accepting up to %d forests of up to %d elements", *maxForests, *maxElements)
	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
