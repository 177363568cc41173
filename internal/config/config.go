// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/nol-forecast/pkg/validation"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for nol-forecast.
type Configuration struct {
	Common    Common
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Common holds the filing parameters and years shared between all scenarios.
type Common struct {
	FilingStatusSingle bool
	OverrideLimit      *decimal.Decimal
	StandardDeduction  decimal.Decimal
	Years              []Year
}

// Scenario is one what-if sequence of years. A scenario without years runs
// the common years; a scenario override replaces the common override.
type Scenario struct {
	Name          string
	Active        bool
	OverrideLimit *decimal.Decimal
	Years         []Year
}

// Year is one tax year of input.
type Year struct {
	Year                int
	Wages               decimal.Decimal
	PersonalCapitalGain decimal.Decimal
	BusinessCapitalGain decimal.Decimal
	BusinessNetIncome   decimal.Decimal
	OverrideLimit       *decimal.Decimal
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		DecimalHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ActiveScenarios returns the scenarios that should be simulated.
func (conf *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range conf.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// YearsFor returns the years a scenario runs: its own when it has any,
// otherwise the common years.
func (conf *Configuration) YearsFor(scenario Scenario) []Year {
	if len(scenario.Years) > 0 {
		return scenario.Years
	}
	return conf.Common.Years
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{
		CommonOverride: conf.Common.OverrideLimit,
	}
	for _, scenario := range conf.Scenarios {
		info := validation.ScenarioConfig{
			Name:     scenario.Name,
			Active:   scenario.Active,
			Override: scenario.OverrideLimit,
		}
		for _, year := range conf.YearsFor(scenario) {
			info.Years = append(info.Years, validation.YearConfig{
				Year:     year.Year,
				Override: year.OverrideLimit,
			})
		}
		validator.Scenarios = append(validator.Scenarios, info)
	}
	return validator.ValidateAll()
}
