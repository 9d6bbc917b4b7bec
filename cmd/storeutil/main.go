package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"creatorlane/internal/config"
	"creatorlane/internal/marketplace"
	"creatorlane/internal/portfolio"
	"creatorlane/internal/store"
)

// storeutil inspects and maintains the record store without starting the server.
// Usage:
//   go run cmd/storeutil/main.go -seed
//   go run cmd/storeutil/main.go -keys
//   go run cmd/storeutil/main.go -dump userServices
func main() {
	seed := flag.Bool("seed", false, "Load the featured catalog into empty collections")
	keys := flag.Bool("keys", false, "List every key present in the store")
	dump := flag.String("dump", "", "Print the raw JSON value under a key")
	clear := flag.String("clear", "", "Remove a key and its value")
	flag.Parse()

	if !*seed && !*keys && *dump == "" && *clear == "" {
		flag.Usage()
		os.Exit(2)
	}

	config.Load()

	s, err := store.New(config.StorePath())
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if *seed {
		n, err := marketplace.SeedServices(s)
		if err != nil {
			log.Fatalf("failed to seed services: %v", err)
		}
		fmt.Printf("Seeded %d services.\n", n)

		n, err = portfolio.SeedPortfolios(s)
		if err != nil {
			log.Fatalf("failed to seed portfolios: %v", err)
		}
		fmt.Printf("Seeded %d portfolios.\n", n)
	}

	if *keys {
		for _, k := range s.Keys() {
			fmt.Println(k)
		}
	}

	if *dump != "" {
		raw, ok, err := s.GetRaw(*dump)
		if err != nil {
			log.Fatalf("failed to read %s: %v", *dump, err)
		}
		if !ok {
			log.Fatalf("no value under key: %s", *dump)
		}
		var pretty json.RawMessage = raw
		out, err := json.MarshalIndent(pretty, "", "  ")
		if err != nil {
			fmt.Println(string(raw))
		} else {
			fmt.Println(string(out))
		}
	}

	if *clear != "" {
		if err := s.Delete(*clear); err != nil {
			log.Fatalf("failed to clear %s: %v", *clear, err)
		}
		fmt.Printf("Cleared %s.\n", *clear)
	}
}
