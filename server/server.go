// Package server exposes the guardian's health/status endpoint.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Status is the guardian's externally visible state.
type Status struct {
	Wallet           string    `json:"wallet"`
	LastSweep        time.Time `json:"lastSweep"`
	LastFundingCheck time.Time `json:"lastFundingCheck"`
	SweepCount       uint64    `json:"sweepCount"`
	LiquidationCount uint64    `json:"liquidationCount"`
}

// StatusProvider supplies the current status for the health endpoint.
type StatusProvider interface {
	Status() Status
}

type Server struct {
	addr     string
	provider StatusProvider
	logger   zerolog.Logger
}

func NewServer(addr string, provider StatusProvider, logger zerolog.Logger) Server {
	return Server{
		addr:     addr,
		provider: provider,
		logger:   logger,
	}
}

// StartServer serves until the listener fails. Run it on its own
// goroutine; a dead health endpoint must not take the guardian with it.
func (s Server) StartServer() {
	router := mux.NewRouter()
	router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	router.HandleFunc("/", s.notFound)

	err := http.ListenAndServe(s.addr, handlers.RecoveryHandler()(router))
	s.logger.Error().Err(err).Msg("health server stopped")
}

func (s Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(s.provider.Status()); err != nil {
		s.logger.Error().Err(err).Msg("failed to write health response")
	}
}

func (s Server) notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"message": "page not found"}`))
}
