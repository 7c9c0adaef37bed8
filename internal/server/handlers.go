package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/aurora/internal/common"
	"github.com/bobmcallan/aurora/internal/models"
)

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.Version,
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":    common.Version,
		"build":      common.Build,
		"git_commit": common.GitCommit,
	})
}

// --- Analysis handlers ---

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := PathParam(r, "/api/analyze/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	result, err := s.app.AnalysisService.AnalyzeStock(r.Context(), userID(r), ticker)
	if err != nil {
		WriteError(w, statusForError(err), fmt.Sprintf("Analysis error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := PathParam(r, "/api/recommend/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	rec, err := s.app.AnalysisService.Recommend(r.Context(), userID(r), ticker)
	if err != nil {
		WriteError(w, statusForError(err), fmt.Sprintf("Recommendation error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := PathParam(r, "/api/history/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	period := models.Period3M
	if p := r.URL.Query().Get("period"); p != "" {
		period = models.Period(strings.ToUpper(p))
	}

	result, err := s.app.AnalysisService.AnalyzeHistory(r.Context(), ticker, period)
	if err != nil {
		WriteError(w, statusForError(err), fmt.Sprintf("History error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// statusForError maps service errors onto HTTP status codes via the shared
// sentinels. Not-found errors become 404 and input errors 400; everything
// else is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
