package config

import (
	"math"
	"slices"
)

var Presets = map[string]*Config{
	"binary": DefaultConfig(),
	"unequal": withBodies(DefaultConfig(), []BodyConfig{
		{ID: "body1", Mass: 100, Position: [2]float64{-20, 20}, Velocity: [2]float64{7, 5}},
		{ID: "body2", Mass: 1000, Position: [2]float64{20, -20}, Velocity: [2]float64{-10, -4}},
	}),
	"circular":    circular(),
	"figure8":     figureEight(),
	"pythagorean": pythagorean(),
}

func withBodies(cfg *Config, bodies []BodyConfig) *Config {
	cfg.Bodies = bodies
	return cfg
}

// a light planet on a circular orbit, momentum balanced by the star
func circular() *Config {
	cfg := DefaultConfig()
	const (
		star   = 1000.0
		planet = 1.0
		radius = 50.0
	)
	v := math.Sqrt(cfg.G * (star + planet) / radius)
	cfg.Bodies = []BodyConfig{
		{ID: "star", Mass: star, Velocity: [2]float64{0, -v * planet / (star + planet)}},
		{ID: "planet", Mass: planet, Position: [2]float64{radius, 0}, Velocity: [2]float64{0, v * star / (star + planet)}},
	}
	return cfg
}

// the Chenciner-Montgomery three-body choreography, G = 1
func figureEight() *Config {
	cfg := DefaultConfig()
	cfg.G = 1
	cfg.PositionBound = 2
	cfg.Run.Duration = 6.3259
	vx, vy := 0.93240737, 0.86473146
	cfg.Bodies = []BodyConfig{
		{ID: "a", Mass: 1, Position: [2]float64{0.97000436, -0.24308753}, Velocity: [2]float64{vx / 2, vy / 2}},
		{ID: "b", Mass: 1, Position: [2]float64{-0.97000436, 0.24308753}, Velocity: [2]float64{vx / 2, vy / 2}},
		{ID: "c", Mass: 1, Velocity: [2]float64{-vx, -vy}},
	}
	return cfg
}

// Burrau's problem: masses 3, 4 and 5 released from rest at the corners of
// a 3-4-5 triangle. Close encounters make it chaotic.
func pythagorean() *Config {
	cfg := DefaultConfig()
	cfg.G = 1
	cfg.PositionBound = 10
	cfg.Run.Duration = 5
	cfg.Bodies = []BodyConfig{
		{ID: "a", Mass: 3, Position: [2]float64{1, 3}},
		{ID: "b", Mass: 4, Position: [2]float64{-2, -1}},
		{ID: "c", Mass: 5, Position: [2]float64{1, -1}},
	}
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
