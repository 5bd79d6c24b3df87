package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/couchcryptid/weather-telegram/internal/analyzer"
	"github.com/couchcryptid/weather-telegram/internal/domain"
	"github.com/couchcryptid/weather-telegram/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type handler struct {
	svc    ReportService
	logger *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

type reportResponse struct {
	Report string `json:"report"`
}

type resultResponse struct {
	Result string   `json:"result"`
	Lines  []string `json:"lines"`
}

type lastReportResponse struct {
	Settlement string `json:"settlement"`
	Time       string `json:"time"`
}

type windReportsResponse struct {
	Status string   `json:"status"`
	Failed []string `json:"failed,omitempty"`
}

func (h *handler) listSettlements(w http.ResponseWriter, _ *http.Request) {
	codes, err := h.svc.Settlements()
	if err != nil {
		h.writeError(w, err)
		return
	}
	if codes == nil {
		codes = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"settlements": codes})
}

func (h *handler) lastReport(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	t, err := h.svc.LastReportTime(code)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lastReportResponse{Settlement: code, Time: t})
}

func (h *handler) lowestTemperature(w http.ResponseWriter, _ *http.Request) {
	h.writeReport(w, h.svc.LowestTemperatureReport)
}

func (h *handler) highestTemperature(w http.ResponseWriter, _ *http.Request) {
	h.writeReport(w, h.svc.HighestTemperatureReport)
}

func (h *handler) writeReport(w http.ResponseWriter, query func() (string, error)) {
	report, err := query()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Report: report})
}

func (h *handler) calm(w http.ResponseWriter, _ *http.Request) {
	h.writeResult(w, h.svc.CalmReportDetails)
}

func (h *handler) temperatures(w http.ResponseWriter, _ *http.Request) {
	h.writeResult(w, h.svc.TemperaturesBySettlement)
}

func (h *handler) writeResult(w http.ResponseWriter, query func() (string, error)) {
	result, err := query()
	if err != nil {
		h.writeError(w, err)
		return
	}
	lines := []string{}
	if result != "" {
		lines = strings.Split(result, "\n")
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: result, Lines: lines})
}

func (h *handler) writeWindReports(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.WriteWindReports(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, windReportsResponse{Status: status})
	case errors.Is(err, pipeline.ErrNotLoaded):
		h.writeError(w, err)
	default:
		h.logger.Warn("wind reports partially written", "error", err)
		writeJSON(w, http.StatusInternalServerError, windReportsResponse{
			Status: status,
			Failed: analyzer.FailedSettlements(err),
		})
	}
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoData):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, pipeline.ErrNotLoaded):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
