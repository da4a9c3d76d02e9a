package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/octovision/pastewatch/internal/core"
	"github.com/octovision/pastewatch/internal/observability"
	"github.com/octovision/pastewatch/internal/scanner"
)

const maxKeywordUpload = 1 << 20 // 1 MiB

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 20
)

// handleLoadKeywordsCSV accepts a CSV body and replaces the keyword list.
// InvalidInputError messages are surfaced to the operator verbatim.
func (s *Server) handleLoadKeywordsCSV(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxKeywordUpload))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	keywords, err := scanner.LoadFromCSV(string(body))
	if err != nil {
		var invalid *scanner.InvalidInputError
		if errors.As(err, &invalid) {
			respondError(w, http.StatusBadRequest, invalid.Reason)
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.session.SetKeywords(keywords)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"loaded":   len(keywords),
		"keywords": keywords,
	})
}

type setKeywordsRequest struct {
	Keywords []string `json:"keywords"`
	Text     string   `json:"text"`
}

// handleSetKeywords accepts manual entry: either a keyword array or a
// newline-delimited text blob. An empty result is fine here; manual entry
// is optional.
func (s *Server) handleSetKeywords(w http.ResponseWriter, r *http.Request) {
	var req setKeywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var keywords []string
	if req.Text != "" {
		keywords = scanner.LoadFromLines(req.Text)
	} else {
		keywords = make([]string, 0, len(req.Keywords))
		for _, kw := range req.Keywords {
			if trimmed := strings.TrimSpace(kw); trimmed != "" {
				keywords = append(keywords, trimmed)
			}
		}
	}

	s.session.SetKeywords(keywords)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"loaded":   len(keywords),
		"keywords": keywords,
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.session.Config())
}

type setConfigRequest struct {
	CaseSensitive bool `json:"case_sensitive"`
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var req setConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.session.SetCaseSensitive(req.CaseSensitive)
	respondJSON(w, http.StatusOK, s.session.Config())
}

type scanRecentRequest struct {
	Limit int `json:"limit"`
}

func (s *Server) handleScanRecent(w http.ResponseWriter, r *http.Request) {
	var req scanRecentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	run, err := s.svc.ScanRecent(r.Context(), limit)
	if err != nil {
		if errors.Is(err, core.ErrNoKeywords) {
			respondError(w, http.StatusBadRequest, core.ErrNoKeywords.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "scan failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"run": core.DisplayRun(run)})
}

type scanURLRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleScanURL(w http.ResponseWriter, r *http.Request) {
	var req scanURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	run, err := s.svc.ScanURL(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, core.ErrNoKeywords) {
			respondError(w, http.StatusBadRequest, core.ErrNoKeywords.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "scan failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"run": core.DisplayRun(run)})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	run, ok := s.session.LastRun()
	if !ok {
		respondError(w, http.StatusNotFound, "no scan has been run yet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"run": core.DisplayRun(run)})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	run, ok := s.session.LastRun()
	if !ok {
		respondError(w, http.StatusNotFound, "no scan has been run yet")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="pastewatch_results.csv"`)
	if err := core.WriteCSV(w, run); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}
