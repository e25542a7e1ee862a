// Package main provides CMA-ES optimization of the genetic search settings.
package main

import (
	"math"

	"github.com/pthm-cable/lifesoup/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // rounded before it is applied
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Breeding
			{Name: "mutations", Path: "search.mutations", Min: 0.0, Max: 0.5, Default: 0.1},
			{Name: "replacements", Path: "search.replacements", Min: 5, Max: 60, Default: 20, Integer: true},
			{Name: "random_inserts", Path: "search.random_inserts", Min: 0, Max: 20, Default: 5, Integer: true},
			// Seeding
			{Name: "square_size", Path: "seeding.square_size", Min: 3, Max: 16, Default: 8, Integer: true},
			{Name: "proportion_min", Path: "seeding.proportion.min", Min: 0.05, Max: 0.5, Default: 0.25},
			// proportion.max is proportion.min plus this span, capped at 1
			{Name: "proportion_span", Path: "seeding.proportion.max", Min: 0.0, Max: 0.5, Default: 0.35},
			{Name: "displacement", Path: "seeding.displacement", Min: 0, Max: 4, Default: 2, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds. Integer parameters are rounded.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	cfg.Search.Mutations = clamped[0]
	cfg.Search.Replacements = int(clamped[1])
	cfg.Search.RandomInserts = int(clamped[2])
	cfg.Seeding.SquareSize = int(clamped[3])
	cfg.Seeding.Proportion.Min = clamped[4]
	cfg.Seeding.Proportion.Max = min(clamped[4]+clamped[5], 1)
	cfg.Seeding.Displacement = int(clamped[6])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Search.Mutations,
		float64(cfg.Search.Replacements),
		float64(cfg.Search.RandomInserts),
		float64(cfg.Seeding.SquareSize),
		cfg.Seeding.Proportion.Min,
		cfg.Seeding.Proportion.Max - cfg.Seeding.Proportion.Min,
		float64(cfg.Seeding.Displacement),
	}
}
