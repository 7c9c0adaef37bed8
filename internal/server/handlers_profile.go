package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/aurora/internal/models"
)

// handleProfile serves GET/PUT/DELETE /api/profile for the calling user.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profile, err := s.app.Store.GetProfile(r.Context(), userID(r))
		if err != nil {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Profile not found: %v", err))
			return
		}
		WriteJSON(w, http.StatusOK, profile)

	case http.MethodPut:
		var profile models.UserProfile
		if !DecodeJSON(w, r, &profile) {
			return
		}
		if err := s.app.Store.SaveProfile(r.Context(), userID(r), &profile); err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid profile: %v", err))
			return
		}
		WriteJSON(w, http.StatusOK, profile)

	case http.MethodDelete:
		if err := s.app.Store.DeleteProfile(r.Context(), userID(r)); err != nil {
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Delete error: %v", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// --- Portfolio handlers ---

func (s *Server) handlePortfolioOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	overview, err := s.app.AnalysisService.PortfolioOverview(r.Context(), userID(r))
	if err != nil {
		WriteError(w, statusForError(err), fmt.Sprintf("Portfolio error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, overview)
}

func (s *Server) handleHoldingsList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	holdings, err := s.app.Store.GetHoldings(r.Context(), userID(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing holdings: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"holdings": holdings,
	})
}

func (s *Server) handleHoldingGet(w http.ResponseWriter, r *http.Request, ticker string) {
	holding, err := s.app.Store.GetHolding(r.Context(), userID(r), ticker)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Holding not found: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, holding)
}

func (s *Server) handleHoldingPut(w http.ResponseWriter, r *http.Request, ticker string) {
	var req struct {
		Shares           float64 `json:"shares"`
		AverageCostBasis float64 `json:"average_cost_basis"`
		PurchaseDate     string  `json:"purchase_date"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	holding := &models.PortfolioHolding{
		Ticker:           ticker,
		Shares:           req.Shares,
		AverageCostBasis: req.AverageCostBasis,
	}
	if strings.TrimSpace(req.PurchaseDate) != "" {
		date, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "purchase_date must be YYYY-MM-DD")
			return
		}
		holding.PurchaseDate = date
	}

	if err := s.app.Store.SaveHolding(r.Context(), userID(r), holding); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid holding: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, holding)
}

func (s *Server) handleHoldingDelete(w http.ResponseWriter, r *http.Request, ticker string) {
	if err := s.app.Store.DeleteHolding(r.Context(), userID(r), ticker); err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Delete error: %v", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
