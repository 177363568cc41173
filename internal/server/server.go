package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/nol-forecast/internal/config"
	"github.com/iwvelando/nol-forecast/internal/federal"
	"github.com/iwvelando/nol-forecast/internal/forecast"
	"github.com/iwvelando/nol-forecast/internal/nol"
	"github.com/iwvelando/nol-forecast/pkg/constants"
	"github.com/iwvelando/nol-forecast/pkg/output"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	adapter       federal.Adapter
}

// Option customizes the handler.
type Option func(*handler)

// WithAdapter makes the handler use adapter instead of the simplified
// calculator built from each request's configuration.
func WithAdapter(adapter federal.Adapter) Option {
	return func(h *handler) {
		h.adapter = adapter
	}
}

// NewHandler constructs the HTTP handler that serves the simulation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, opts ...Option) http.Handler {
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

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}
	for _, opt := range opts {
		opt(h)
	}

	mux := http.NewServeMux()

	// Simulation endpoint for JSON editor payloads
	mux.HandleFunc("/api/simulate", h.handleSimulate)

	// Simulation endpoint for raw YAML configuration bodies
	mux.HandleFunc("/api/simulate/yaml", h.handleSimulateYAML)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type simulateResponse struct {
	Scenarios []scenarioResponse `json:"scenarios"`
	CSV       string             `json:"csv"`
	Warnings  []string           `json:"warnings,omitempty"`
	Duration  string             `json:"duration"`
}

type scenarioResponse struct {
	Name    string          `json:"name"`
	Years   []yearResponse  `json:"years"`
	Summary summaryResponse `json:"summary"`
}

type yearResponse struct {
	Year              int             `json:"year"`
	StartingNOL       decimal.Decimal `json:"startingNOL"`
	Limit             decimal.Decimal `json:"limit"`
	NetBusinessIncome decimal.Decimal `json:"netBusinessIncome"`
	AllowedLoss       decimal.Decimal `json:"allowedLoss"`
	DisallowedLoss    decimal.Decimal `json:"disallowedLoss"`
	PreliminaryAGI    decimal.Decimal `json:"preliminaryAGI"`
	NOLUsed           decimal.Decimal `json:"nolUsed"`
	CurrentYearNOL    decimal.Decimal `json:"currentYearNOL"`
	AGI               decimal.Decimal `json:"agi"`
	TaxableIncome     decimal.Decimal `json:"taxableIncome"`
	NextStartingNOL   decimal.Decimal `json:"nextStartingNOL"`
}

type summaryResponse struct {
	TotalDisallowedLoss decimal.Decimal `json:"totalDisallowedLoss"`
	TotalNOLUsed        decimal.Decimal `json:"totalNOLUsed"`
	TotalNOLGenerated   decimal.Decimal `json:"totalNOLGenerated"`
	FinalCarryforward   decimal.Decimal `json:"finalCarryforward"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	// Numbers stay json.Number so amounts reach the decimal decoder intact.
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var payload map[string]interface{}
	if err := decoder.Decode(&payload); err != nil {
		h.respondBodyError(w, err, "failed to decode configuration", op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid config payload: expected object", op)
			return
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.runSimulation(w, configBytes, start, op)
}

func (h *handler) handleSimulateYAML(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulateYAML"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		h.respondBodyError(w, err, "failed to read configuration", op)
		return
	}

	h.runSimulation(w, buf.Bytes(), start, op)
}

func (h *handler) runSimulation(w http.ResponseWriter, configBytes []byte, start time.Time, op string) {
	if len(bytes.TrimSpace(configBytes)) == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration", op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	results, err := forecast.GetForecast(h.logger, *cfg, h.adapter)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, nol.ErrYearsOutOfOrder) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, fmt.Sprintf("failed to simulate: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := simulateResponse{
		Scenarios: buildScenarios(results),
		CSV:       output.CsvString(results),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	}

	h.logger.Info("simulation computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) respondBodyError(w http.ResponseWriter, err error, msg string, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", msg, err), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("simulation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func buildScenarios(results []forecast.Forecast) []scenarioResponse {
	scenarios := make([]scenarioResponse, 0, len(results))
	for _, result := range results {
		scenario := scenarioResponse{
			Name:  result.Name,
			Years: make([]yearResponse, 0, len(result.Results)),
			Summary: summaryResponse{
				TotalDisallowedLoss: result.Summary.TotalDisallowedLoss,
				TotalNOLUsed:        result.Summary.TotalNOLUsed,
				TotalNOLGenerated:   result.Summary.TotalNOLGenerated,
				FinalCarryforward:   result.Summary.FinalCarryforward,
			},
		}
		for _, year := range result.Results {
			net := year.AllowedLoss.Add(year.DisallowedLoss)
			if year.RawFederalOutput.Limitation != nil {
				net = year.RawFederalOutput.Limitation.NetBusinessIncome
			}
			scenario.Years = append(scenario.Years, yearResponse{
				Year:              year.Year,
				StartingNOL:       year.StartingNOL,
				Limit:             year.Limit,
				NetBusinessIncome: net,
				AllowedLoss:       year.AllowedLoss,
				DisallowedLoss:    year.DisallowedLoss,
				PreliminaryAGI:    year.PreliminaryAGI,
				NOLUsed:           year.NOLUsed,
				CurrentYearNOL:    year.CurrentYearNOL,
				AGI:               year.AGI,
				TaxableIncome:     year.TaxableIncome,
				NextStartingNOL:   year.NextStartingNOL,
			})
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios
}
