// Package server exposes the projection engine as an HTTP JSON API.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/planforge/projection-engine/internal/config"
	"github.com/planforge/projection-engine/internal/engine"
	"github.com/planforge/projection-engine/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	engine        *engine.Engine
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the analysis API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		engine:        engine.New(logger),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Analysis API endpoint (YAML plan upload)
	mux.HandleFunc("/api/analyze", h.handleAnalyze)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type analyzeResponse struct {
	PlanName               string            `json:"planName"`
	ProjectedAnnualRevenue float64           `json:"projectedAnnualRevenue"`
	Monthly                []monthlyShare    `json:"monthly"`
	BreakEvenPoint         *breakEvenPoint   `json:"breakEvenPoint,omitempty"`
	BreakEven              *breakEvenMonths  `json:"breakEven,omitempty"`
	Profitability          *profitabilityOut `json:"profitability,omitempty"`
	Valid                  bool              `json:"valid"`
	ValidationErrors       []string          `json:"validationErrors,omitempty"`
	Warnings               []string          `json:"warnings,omitempty"`
	Duration               string            `json:"duration"`
}

type monthlyShare struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type breakEvenPoint struct {
	Units   float64 `json:"units"`
	Revenue float64 `json:"revenue"`
}

type breakEvenMonths struct {
	MonthsToBreakEven int    `json:"monthsToBreakEven"`
	Date              string `json:"date"`
}

type profitabilityOut struct {
	ROI                float64 `json:"roi"`
	NPV                float64 `json:"npv"`
	IRR                float64 `json:"irr"`
	PaybackPeriod      float64 `json:"paybackPeriod"`
	ProfitabilityIndex float64 `json:"profitabilityIndex"`
	MIRR               float64 `json:"mirr"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err != nil {
		h.writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("plan exceeds upload limit of %d bytes", h.maxUploadSize))
		return
	}
	if len(body) == 0 {
		h.writeError(w, http.StatusBadRequest, "request body is empty")
		return
	}

	var conf config.Configuration
	if err := yaml.Unmarshal(body, &conf); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse plan: %v", err))
		return
	}

	warnings := conf.ValidateConfiguration()

	start := time.Now()
	analysis, err := h.engine.GetAnalysis(conf)
	if err != nil {
		h.logger.Warn("analysis failed",
			zap.String("op", "server.handleAnalyze"),
			zap.Error(err),
		)
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	duration := time.Since(start)

	response := analyzeResponse{
		PlanName:               analysis.PlanName,
		ProjectedAnnualRevenue: analysis.ProjectedAnnualRevenue,
		Valid:                  analysis.Validation.IsValid,
		ValidationErrors:       analysis.Validation.Errors,
		Warnings:               warnings,
		Duration:               duration.String(),
	}
	for _, share := range analysis.Monthly {
		response.Monthly = append(response.Monthly, monthlyShare{Date: share.Date, Amount: share.Amount})
	}
	if analysis.BreakEvenPoint != nil {
		response.BreakEvenPoint = &breakEvenPoint{
			Units:   analysis.BreakEvenPoint.Units,
			Revenue: analysis.BreakEvenPoint.Revenue,
		}
	}
	if analysis.BreakEvenSchedule != nil {
		response.BreakEven = &breakEvenMonths{
			MonthsToBreakEven: analysis.BreakEvenSchedule.MonthsToBreakEven,
			Date:              analysis.BreakEvenSchedule.Date,
		}
	}
	if analysis.Profitability != nil {
		response.Profitability = &profitabilityOut{
			ROI:                analysis.Profitability.ROI,
			NPV:                analysis.Profitability.NPV,
			IRR:                analysis.Profitability.IRR,
			PaybackPeriod:      analysis.Profitability.PaybackPeriod,
			ProfitabilityIndex: analysis.Profitability.ProfitabilityIndex,
			MIRR:               analysis.Profitability.MIRR,
		}
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}
