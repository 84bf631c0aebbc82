// Command perftd serves perft and divide counts over HTTP.
//
// Usage: go run ./cmd/perftd -addr :8080 -max-depth 5
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"chess-core/coremg"
	"chess-core/perftserver"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	maxDepth := flag.Int("max-depth", perftserver.DefaultMaxDepth, "deepest perft a request may ask for")
	flag.Parse()

	if *maxDepth <= 0 {
		fmt.Fprintln(os.Stderr, "-max-depth must be > 0")
		os.Exit(2)
	}

	gen := coremg.NewGenerator(nil)
	if err := gen.Tables().Verify(); err != nil {
		log.Fatalf("perftd: attack tables: %v", err)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           perftserver.New(gen, perftserver.Config{MaxDepth: *maxDepth}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("perftd: listening on %s (max depth %d)", *addr, *maxDepth)
	log.Fatal(srv.ListenAndServe())
}
