package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/behavior-twin/internal/twin"
)

// #region config-file

// fileConfig mirrors the optional YAML config. Pointer fields distinguish
// "unset" from an explicit zero, so partial files override only what
// they name.
type fileConfig struct {
	Forecast struct {
		HourPriorWeight       *float64 `yaml:"hour_prior_weight"`
		DopamineBiasThreshold *float64 `yaml:"dopamine_bias_threshold"`
		GoalBiasThreshold     *float64 `yaml:"goal_bias_threshold"`
		GlobalWeight          *float64 `yaml:"global_weight"`
		HourWeight            *float64 `yaml:"hour_weight"`
		RecentWindow          *int     `yaml:"recent_window"`
	} `yaml:"forecast"`
	Twin struct {
		StressMediumRate *float64 `yaml:"stress_medium_rate"`
		StressHighRate   *float64 `yaml:"stress_high_rate"`
		AlignOnTrack     *float64 `yaml:"align_on_track"`
		AlignDrifting    *float64 `yaml:"align_drifting"`
		TopWindows       *int     `yaml:"top_windows"`
		TopTriggers      *int     `yaml:"top_triggers"`
	} `yaml:"twin"`
}

// loadConfig starts from the defaults and applies overrides from the
// YAML file at path, when given.
func loadConfig(path string) (twin.Config, error) {
	cfg := twin.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setI := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	setF(&cfg.Forecast.HourPriorWeight, fc.Forecast.HourPriorWeight)
	setF(&cfg.Forecast.DopamineBiasThreshold, fc.Forecast.DopamineBiasThreshold)
	setF(&cfg.Forecast.GoalBiasThreshold, fc.Forecast.GoalBiasThreshold)
	setF(&cfg.Forecast.GlobalWeight, fc.Forecast.GlobalWeight)
	setF(&cfg.Forecast.HourWeight, fc.Forecast.HourWeight)
	setI(&cfg.Forecast.RecentWindow, fc.Forecast.RecentWindow)

	setF(&cfg.StressMediumRate, fc.Twin.StressMediumRate)
	setF(&cfg.StressHighRate, fc.Twin.StressHighRate)
	setF(&cfg.AlignOnTrack, fc.Twin.AlignOnTrack)
	setF(&cfg.AlignDrifting, fc.Twin.AlignDrifting)
	setI(&cfg.TopWindows, fc.Twin.TopWindows)
	setI(&cfg.TopTriggers, fc.Twin.TopTriggers)

	return cfg, nil
}

// #endregion config-file
