package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const testConfig = `common:
  filingStatusSingle: true
  overrideLimit: 250000
  standardDeduction: "14,600"
  years:
    - year: 2024
      wages: 100000
      businessCapitalGain: 50000
      businessNetIncome: -500000
    - year: 2025
      wages: 400000.25
      overrideLimit: 300000
scenarios:
  - name: base
    active: true
  - name: bigger loss
    active: true
    overrideLimit: null
    years:
      - year: 2024
        wages: 100000
        personalCapitalGain: "-3,000"
        businessNetIncome: -900000
        overrideLimit: 0
  - name: disabled
    active: false
logging:
  level: debug
  format: console
output:
  format: csv
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func requireDecimal(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, expected %s", field, got, want)
	}
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if !conf.Common.FilingStatusSingle {
		t.Errorf("expected single filing status")
	}
	if conf.Common.OverrideLimit == nil {
		t.Fatalf("expected common override limit")
	}
	requireDecimal(t, "Common.OverrideLimit", *conf.Common.OverrideLimit, "250000")
	requireDecimal(t, "Common.StandardDeduction", conf.Common.StandardDeduction, "14600")

	if len(conf.Common.Years) != 2 {
		t.Fatalf("expected 2 common years, got %d", len(conf.Common.Years))
	}
	first := conf.Common.Years[0]
	if first.Year != 2024 {
		t.Errorf("expected year 2024, got %d", first.Year)
	}
	requireDecimal(t, "Wages", first.Wages, "100000")
	requireDecimal(t, "BusinessCapitalGain", first.BusinessCapitalGain, "50000")
	requireDecimal(t, "BusinessNetIncome", first.BusinessNetIncome, "-500000")
	requireDecimal(t, "PersonalCapitalGain", first.PersonalCapitalGain, "0")
	if first.OverrideLimit != nil {
		t.Errorf("expected no override on first year, got %s", first.OverrideLimit)
	}

	second := conf.Common.Years[1]
	requireDecimal(t, "Wages", second.Wages, "400000.25")
	if second.OverrideLimit == nil {
		t.Fatalf("expected override on second year")
	}
	requireDecimal(t, "OverrideLimit", *second.OverrideLimit, "300000")

	if len(conf.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(conf.Scenarios))
	}
	bigger := conf.Scenarios[1]
	if bigger.OverrideLimit != nil {
		t.Errorf("expected null scenario override, got %s", bigger.OverrideLimit)
	}
	requireDecimal(t, "PersonalCapitalGain", bigger.Years[0].PersonalCapitalGain, "-3000")
	if bigger.Years[0].OverrideLimit == nil || !bigger.Years[0].OverrideLimit.IsZero() {
		t.Errorf("expected explicit zero override, got %v", bigger.Years[0].OverrideLimit)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("expected csv output format, got %s", conf.Output.Format)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Errorf("LoadConfiguration() expected error but got none")
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(testConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if len(conf.ActiveScenarios()) != 2 {
		t.Errorf("expected 2 active scenarios, got %d", len(conf.ActiveScenarios()))
	}
}

func TestLoadConfigurationInvalidAmount(t *testing.T) {
	contents := `common:
  years:
    - year: 2024
      wages: "lots"
scenarios:
  - name: base
    active: true
`
	_, err := LoadConfigurationFromReader(strings.NewReader(contents))
	if err == nil {
		t.Fatalf("expected decode error for non-numeric wages")
	}
}

func TestYearsFor(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(testConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if years := conf.YearsFor(conf.Scenarios[0]); len(years) != 2 {
		t.Errorf("scenario without years should use common years, got %d", len(years))
	}
	if years := conf.YearsFor(conf.Scenarios[1]); len(years) != 1 {
		t.Errorf("scenario with years should use its own, got %d", len(years))
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(testConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 1 {
		t.Fatalf("ValidateConfiguration() = %v, expected 1 warning", warnings)
	}
	if !strings.Contains(warnings[0], "Scenario 'bigger loss' year 2024") {
		t.Errorf("unexpected warning %q", warnings[0])
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"1234.56", "1234.56", false},
		{"-$1,234.56", "-1234.56", false},
		{" 250,000 ", "250000", false},
		{"", "0", false},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAmount(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) error = %v", tt.input, err)
			}
			requireDecimal(t, "ParseAmount", got, tt.want)
		})
	}
}

func TestDecimalHookFunc(t *testing.T) {
	hook := DecimalHookFunc()
	target := reflect.TypeOf(decimal.Decimal{})

	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"int", 250000, "250000"},
		{"float rounded to cents", 1234.567, "1234.57"},
		{"negative float", -0.125, "-0.13"},
		{"string with separators", "$14,600", "14600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hook(reflect.TypeOf(tt.input), target, tt.input)
			if err != nil {
				t.Fatalf("hook(%v) error = %v", tt.input, err)
			}
			requireDecimal(t, tt.name, got.(decimal.Decimal), tt.want)
		})
	}

	// Other target types pass through untouched.
	got, err := hook(reflect.TypeOf(""), reflect.TypeOf(""), "keep")
	if err != nil || got != "keep" {
		t.Errorf("hook passthrough = %v, %v", got, err)
	}

	if _, err := hook(reflect.TypeOf(true), target, true); err == nil {
		t.Error("expected an error decoding a bool into a decimal")
	}
}
