package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/game"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/store"
	ws "github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/websocket"
)

type Server struct {
	cfg      Config
	registry *game.Registry
	listing  *store.Listing
	hub      *ws.Hub
}

func New(cfg Config, registry *game.Registry, listing *store.Listing) *Server {
	return &Server{
		cfg:      cfg,
		registry: registry,
		listing:  listing,
		hub:      ws.NewHub(registry),
	}
}

func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Printf("[Server] listening on %s", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.RegisterRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // websockets stay open
	}
	return srv.ListenAndServe()
}

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(s.corsMiddleware)

	r.HandleFunc("/health", s.HealthHandler)
	r.HandleFunc("/rooms", s.ListRoomsHandler)
	r.HandleFunc("/ws/{roomId}", s.hub.HandleWebSocket)

	return r
}

// CORS middleware; websocket upgrades skip the preflight handling.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")

		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.registry.Count(),
	})
}

// ListRoomsHandler serves the public room listing from the store.
func (s *Server) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	if s.listing == nil {
		writeJSON(w, http.StatusOK, []internal.RoomSummary{})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rooms, err := s.listing.List(ctx)
	if err != nil {
		log.Printf("[ListRooms] %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "listing unavailable"})
		return
	}
	if rooms == nil {
		rooms = []internal.RoomSummary{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[writeJSON] encoding response: %v", err)
	}
}
