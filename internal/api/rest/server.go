package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port   string
	server *http.Server
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler) *Server {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(RequestIDMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware())

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Predictions
	api.HandleFunc("/predictions/weekly", handler.GetWeeklyPredictions).Methods("GET", "POST")
	api.HandleFunc("/predictions/history", handler.GetPredictionHistory).Methods("GET")

	// Teams
	api.HandleFunc("/teams/cached", handler.GetCachedTeams).Methods("GET")
	api.HandleFunc("/teams/{slug}", handler.GetTeam).Methods("GET")

	// Conferences
	api.HandleFunc("/conferences/{slug}", handler.GetConference).Methods("GET")

	// Scoreboard
	api.HandleFunc("/scoreboard", handler.GetScoreboard).Methods("GET")

	// Ratings
	api.HandleFunc("/ratings/sp", handler.GetSPRatings).Methods("GET")
	api.HandleFunc("/ratings/ppa", handler.GetPPARatings).Methods("GET")

	// News and rankings
	api.HandleFunc("/news", handler.GetNews).Methods("GET")
	api.HandleFunc("/rankings", handler.GetRankings).Methods("GET")

	return &Server{
		port: port,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
