package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/game"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/gen"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/server"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var listing *store.Listing
	if cfg.DatabaseURL != "" {
		listing, err = store.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("store: %v", err)
		}
		defer listing.Close()
	} else {
		log.Printf("DATABASE_URL not set, room listing disabled")
	}

	generator := gen.NewGemini(cfg.GeminiKey, cfg.GeminiModel)

	var roomListing game.RoomListing
	if listing != nil {
		roomListing = listing
	}
	registry := game.NewRegistry(generator, roomListing)

	srv := server.New(cfg, registry, listing)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
