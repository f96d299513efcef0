package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const planYAML = `---
plan:
  id: proj-001
  planID: plan-001
  name: Test Plan
  startDate: 2026-01
  endDate: 2026-12
  baseRevenue: 120000
  growthRatePercent: 10
  period: annual
  confidence: medium
  method: linear
costs:
  fixedCosts: 50000
  revenuePerUnit: 100
  variableCostPerUnit: 60
investment:
  initialInvestment: 100000
  discountRatePercent: 10
  cashFlows: [20000, 25000, 30000, 35000, 40000]
scenarios:
  - id: s-1
    name: Expected
    projectedRevenue: 132000
    probabilityPercentage: 100
    preferred: true
`

func TestHandleAnalyze(t *testing.T) {
	handler := NewHandler(nil, 0, "test")

	request := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(planYAML))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d (body: %s)", recorder.Code, http.StatusOK, recorder.Body.String())
	}

	var response analyzeResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.PlanName != "Test Plan" {
		t.Errorf("planName = %q, expected %q", response.PlanName, "Test Plan")
	}
	if response.ProjectedAnnualRevenue != 132000 {
		t.Errorf("projectedAnnualRevenue = %v, expected 132000", response.ProjectedAnnualRevenue)
	}
	if len(response.Monthly) != 12 {
		t.Errorf("monthly has %d entries, expected 12", len(response.Monthly))
	}
	if response.BreakEvenPoint == nil || response.BreakEvenPoint.Units != 1250 {
		t.Errorf("breakEvenPoint = %+v, expected 1250 units", response.BreakEvenPoint)
	}
	if response.Profitability == nil || response.Profitability.ROI != 50 {
		t.Errorf("profitability = %+v, expected ROI 50", response.Profitability)
	}
	if !response.Valid {
		t.Errorf("valid = false, expected a valid record (errors: %v)", response.ValidationErrors)
	}
	if response.Duration == "" {
		t.Error("duration is empty, expected a measured value")
	}
}

func TestHandleAnalyzeMethodNotAllowed(t *testing.T) {
	handler := NewHandler(nil, 0, "test")

	request := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected %d", recorder.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleAnalyzeEmptyBody(t *testing.T) {
	handler := NewHandler(nil, 0, "test")

	request := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(""))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected %d", recorder.Code, http.StatusBadRequest)
	}
}

func TestHandleAnalyzeMalformedPlan(t *testing.T) {
	handler := NewHandler(nil, 0, "test")

	request := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("plan: [not: valid"))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected %d", recorder.Code, http.StatusBadRequest)
	}
}

func TestHandleAnalyzeRejectsBadCalculation(t *testing.T) {
	handler := NewHandler(nil, 0, "test")
	body := strings.Replace(planYAML, "method: linear", "method: quadratic", 1)

	request := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, expected %d", recorder.Code, http.StatusUnprocessableEntity)
	}

	var response errorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response.Error == "" {
		t.Error("error message is empty")
	}
}

func TestHandleAnalyzeUploadLimit(t *testing.T) {
	handler := NewHandler(nil, 64, "test")

	request := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(planYAML))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, expected %d", recorder.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(nil, 0, "1.2.3")

	request := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", recorder.Code, http.StatusOK)
	}

	var response map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["version"] != "1.2.3" {
		t.Errorf("version = %q, expected %q", response["version"], "1.2.3")
	}
}

func TestHandleVersionMethodNotAllowed(t *testing.T) {
	handler := NewHandler(nil, 0, "test")

	request := httptest.NewRequest(http.MethodPost, "/api/version", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected %d", recorder.Code, http.StatusMethodNotAllowed)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Run("Empty path", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig() unexpected error: %v", err)
		}
		if cfg.Address == "" {
			t.Error("Address is empty, expected the default bind address")
		}
		if cfg.UploadSizeBytes() <= 0 {
			t.Errorf("UploadSizeBytes() = %d, expected a positive default", cfg.UploadSizeBytes())
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig() unexpected error: %v", err)
		}
		if cfg.Address == "" {
			t.Error("Address is empty, expected the default bind address")
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	content := "address: 127.0.0.1:9090\nmaxUploadSize: 2M\nlogging:\n  level: warn\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write server config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}

	if cfg.Address != "127.0.0.1:9090" {
		t.Errorf("Address = %q, expected 127.0.0.1:9090", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 2*1024*1024 {
		t.Errorf("UploadSizeBytes() = %d, expected %d", cfg.UploadSizeBytes(), 2*1024*1024)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, expected warn", cfg.Logging.Level)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{"Bare number", "1024", 1024, false},
		{"Bytes suffix", "512B", 512, false},
		{"Kilobytes", "256K", 256 * 1024, false},
		{"Kilobytes long", "256KB", 256 * 1024, false},
		{"Megabytes", "10M", 10 * 1024 * 1024, false},
		{"Gigabytes", "1G", 1024 * 1024 * 1024, false},
		{"Lowercase unit", "4m", 4 * 1024 * 1024, false},
		{"Whitespace", "  8K  ", 8 * 1024, false},
		{"Unsupported unit", "5T", 0, true},
		{"No digits", "MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}
