package handler

import (
	"errors"
	"net/http"

	"github.com/user/bizscrape-service/internal/delivery/http/middleware"
	"github.com/user/bizscrape-service/internal/delivery/http/request"
	"github.com/user/bizscrape-service/internal/entity"
	"go.uber.org/zap"
)

// HandleCreateIndustry answers POST /api/industry-research.
func (h *Handler) HandleCreateIndustry(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	req, err := request.DecodeCreateIndustry(r)
	if err != nil {
		h.writeJSONError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	industry, err := h.research.Create(r.Context(), userID, req.Input())
	if err != nil {
		var ve *entity.ValidationError
		if !errors.As(err, &ve) {
			h.log.Error("Failed to save industry research", zap.Error(err))
		}
		h.writeFailure(w, err, "Failed to save industry research")
		return
	}
	h.writeJSON(w, http.StatusOK, industry)
}

// HandleListIndustries answers GET /api/industry-research?id=.
func (h *Handler) HandleListIndustries(w http.ResponseWriter, r *http.Request) {
	list, err := h.research.List(r.Context(), middleware.UserID(r.Context()), r.URL.Query().Get("id"))
	if err != nil {
		if !errors.Is(err, entity.ErrUnauthorized) {
			h.log.Error("Failed to fetch industry research", zap.Error(err))
		}
		h.writeFailure(w, err, "Failed to fetch industry research")
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}
