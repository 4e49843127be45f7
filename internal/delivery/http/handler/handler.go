package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/user/bizscrape-service/internal/delivery/http/response"
	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/internal/usecase"
	"go.uber.org/zap"
)

// Prober estimates the cost of a search without running it.
type Prober interface {
	Probe(ctx context.Context, params entity.Params) (*entity.ProbeResult, error)
}

// HealthCheck pings one dependency.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type Dependencies struct {
	Orchestrator usecase.Orchestrator
	Tracker      usecase.JobTracker
	History      usecase.HistoryAggregator
	Loans        usecase.LoanQuery
	Research     usecase.IndustryResearch
	Prober       Prober
	HealthChecks []HealthCheck
}

type Handler struct {
	orchestrator usecase.Orchestrator
	tracker      usecase.JobTracker
	history      usecase.HistoryAggregator
	loans        usecase.LoanQuery
	research     usecase.IndustryResearch
	prober       Prober
	checks       []HealthCheck
	log          *zap.Logger
}

func NewHandler(deps Dependencies, log *zap.Logger) *Handler {
	return &Handler{
		orchestrator: deps.Orchestrator,
		tracker:      deps.Tracker,
		history:      deps.History,
		loans:        deps.Loans,
		research:     deps.Research,
		prober:       deps.Prober,
		checks:       deps.HealthChecks,
		log:          log,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Error: message})
}

func (h *Handler) writeJSONErrorDetails(w http.ResponseWriter, message, details string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Error: message, Details: details})
}

// writeFailure maps the shared error taxonomy onto a response. failMessage is the
// stable error string used for everything that is not an auth or validation error.
func (h *Handler) writeFailure(w http.ResponseWriter, err error, failMessage string) {
	var ve *entity.ValidationError
	var pe *entity.ProviderError
	switch {
	case errors.Is(err, entity.ErrUnauthorized):
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
	case errors.As(err, &ve):
		h.writeJSONError(w, ve.Error(), http.StatusBadRequest)
	case errors.As(err, &pe) && pe.StatusCode == http.StatusNotFound:
		h.writeJSONErrorDetails(w, failMessage, err.Error(), http.StatusNotFound)
	default:
		h.writeJSONErrorDetails(w, failMessage, err.Error(), http.StatusInternalServerError)
	}
}
