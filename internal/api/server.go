// Package api exposes the scanner over HTTP: keyword management, scan
// triggers, results, and CSV export.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/octovision/pastewatch/internal/core"
)

type Server struct {
	router  *chi.Mux
	session *core.Session
	svc     *core.ScanService
}

func NewServer(svc *core.ScanService) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		session: svc.Session(),
		svc:     svc,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Post("/keywords/csv", s.handleLoadKeywordsCSV)
	s.router.Post("/keywords", s.handleSetKeywords)
	s.router.Get("/config", s.handleGetConfig)
	s.router.Put("/config", s.handleSetConfig)
	s.router.Post("/scan/recent", s.handleScanRecent)
	s.router.Post("/scan/url", s.handleScanURL)
	s.router.Get("/results", s.handleResults)
	s.router.Get("/results/export", s.handleExport)
	s.router.Get("/stats", s.handleStats)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
