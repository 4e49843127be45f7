package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/user/bizscrape-service/internal/delivery/http/middleware"
	"github.com/user/bizscrape-service/internal/delivery/http/request"
	"github.com/user/bizscrape-service/internal/delivery/http/response"
	"github.com/user/bizscrape-service/internal/entity"
	"go.uber.org/zap"
)

// HandleScrape runs one source: POST /api/scrape/{source}.
func (h *Handler) HandleScrape(w http.ResponseWriter, r *http.Request) {
	source, err := entity.ParseSource(chi.URLParam(r, "source"))
	if err != nil {
		h.writeJSONError(w, "Unknown source", http.StatusNotFound)
		return
	}

	userID := middleware.UserID(r.Context())
	if userID == "" {
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	params, err := request.DecodeParams(r)
	if err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.orchestrator.Run(r.Context(), entity.NewScrapeRequest(source, params, userID))
	if err != nil {
		var ve *entity.ValidationError
		if !errors.As(err, &ve) && !errors.Is(err, entity.ErrUnauthorized) {
			h.log.Error("Scrape request failed", zap.String("source", string(source)), zap.Error(err))
		}
		h.writeFailure(w, err, fmt.Sprintf("Failed to fetch %s data", source.DisplayName()))
		return
	}

	h.writeJSON(w, http.StatusOK, response.Scrape(res))
}

// HandleGoogleProbe estimates a Google Places search: POST /api/scrape/google/test.
func (h *Handler) HandleGoogleProbe(w http.ResponseWriter, r *http.Request) {
	if middleware.UserID(r.Context()) == "" {
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	req, err := request.DecodeProbe(r)
	if err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.prober.Probe(r.Context(), req.Params())
	if err != nil {
		h.log.Error("Google probe failed", zap.Error(err))
		h.writeFailure(w, err, "Failed to test Google Places API")
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// HandleScrapers lists the provider catalog: GET /api/scrapers.
func (h *Handler) HandleScrapers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, entity.ScraperCatalog)
}
