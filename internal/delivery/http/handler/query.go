package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/user/bizscrape-service/internal/delivery/http/middleware"
	"github.com/user/bizscrape-service/internal/delivery/http/request"
	"github.com/user/bizscrape-service/internal/entity"
	"go.uber.org/zap"
)

// HandleStats answers GET /api/scrape/stats for the caller.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.history.StatsFor(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		if !errors.Is(err, entity.ErrUnauthorized) {
			h.log.Error("Failed to compute scrape stats", zap.Error(err))
		}
		h.writeFailure(w, err, "Failed to fetch stats")
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// HandleGetJob answers GET /api/jobs/{id}.
func (h *Handler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	job, err := h.tracker.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if errors.Is(err, entity.ErrJobNotFound) {
		h.writeJSONError(w, "Scrape job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("Failed to load scrape job", zap.Error(err))
		h.writeFailure(w, err, "Failed to fetch scrape job")
		return
	}
	h.writeJSON(w, http.StatusOK, job)
}

// HandleListLoans answers GET /api/scrape/ppp?companyId=&page=&limit=.
func (h *Handler) HandleListLoans(w http.ResponseWriter, r *http.Request) {
	if middleware.UserID(r.Context()) == "" {
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	page, err := h.loans.List(r.Context(),
		r.URL.Query().Get("companyId"),
		request.QueryInt(r, "page", 1),
		request.QueryInt(r, "limit", 10),
	)
	if err != nil {
		h.log.Error("Failed to list PPP loans", zap.Error(err))
		h.writeFailure(w, err, "Failed to fetch PPP loans")
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}
