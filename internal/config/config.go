// Package config loads caller-supplied run parameters from YAML files.
//
// A parameter file describes the simulation run whose log is being analyzed;
// nothing in it is derived from the log text. Example:
//
//	node_count: 4
//	simulation_time: 120.5
//	sim_params: "n=4 topology=full threshold=3"
//	all_tests_passed: true
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scpsim/scpreport/internal/simlog"
)

// LoadRunParams reads and validates a YAML run-parameter file.
func LoadRunParams(path string) (simlog.RunParams, error) {
	var params simlog.RunParams

	data, err := os.ReadFile(path)
	if err != nil {
		return params, simlog.NewFileAccessError("open", path, err)
	}

	if err := yaml.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("parse run params %s: %w", path, err)
	}

	if err := Validate(params); err != nil {
		return params, fmt.Errorf("invalid run params %s: %w", path, err)
	}
	return params, nil
}

// Validate checks the parameter values that have a meaningful range.
// SimParams is opaque pass-through text and never inspected.
func Validate(params simlog.RunParams) error {
	if params.NodeCount < 0 {
		return fmt.Errorf("node_count must not be negative, got %d", params.NodeCount)
	}
	if params.SimulationTime < 0 {
		return fmt.Errorf("simulation_time must not be negative, got %v", params.SimulationTime)
	}
	return nil
}
