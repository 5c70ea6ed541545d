// Package store writes headless run results to JSON or CSV.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/gravsim/internal/sim"
)

type BodyTrack struct {
	ID       string       `json:"id"`
	Mass     float64      `json:"mass"`
	Position [][2]float64 `json:"position"`
	Velocity [][2]float64 `json:"velocity"`
}

type ExportData struct {
	Scenario        string             `json:"scenario"`
	Integrator      string             `json:"integrator"`
	Ticks           int                `json:"ticks"`
	SimTime         float64            `json:"sim_time"`
	Halted          string             `json:"halted,omitempty"`
	Times           []float64          `json:"times"`
	Bodies          []BodyTrack        `json:"bodies"`
	Energy          []float64          `json:"specific_energy"`
	AngularMomentum []float64          `json:"specific_angular_momentum"`
	Separation      []float64          `json:"separation"`
	Metrics         map[string]float64 `json:"metrics"`
}

func newExportData(scenario string, result *sim.Result) ExportData {
	data := ExportData{
		Scenario:        scenario,
		Integrator:      result.Integrator,
		Ticks:           result.Ticks,
		SimTime:         result.SimTime,
		Times:           make([]float64, len(result.Frames)),
		Energy:          make([]float64, len(result.Frames)),
		AngularMomentum: make([]float64, len(result.Frames)),
		Separation:      make([]float64, len(result.Frames)),
		Metrics:         result.Metrics,
	}
	if result.Err != nil {
		data.Halted = result.Err.Error()
	}
	if len(result.Frames) > 0 {
		for _, b := range result.Frames[0].Bodies {
			data.Bodies = append(data.Bodies, BodyTrack{ID: b.ID, Mass: b.Mass})
		}
	}

	for i, f := range result.Frames {
		data.Times[i] = f.Time
		data.Energy[i] = f.Diagnostics.SpecificEnergy
		data.AngularMomentum[i] = f.Diagnostics.SpecificAngularMomentum
		data.Separation[i] = f.Diagnostics.Separation
		for j, b := range f.Bodies {
			track := &data.Bodies[j]
			track.Position = append(track.Position, [2]float64{b.Position.X, b.Position.Y})
			track.Velocity = append(track.Velocity, [2]float64{b.Velocity.X, b.Velocity.Y})
		}
	}
	return data
}

func ExportJSON(w io.Writer, scenario string, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(scenario, result))
}

// ExportCSV writes one row per frame: time, every body's position and
// velocity, then the pair diagnostics.
func ExportCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"t"}
	if len(result.Frames) > 0 {
		for _, b := range result.Frames[0].Bodies {
			for _, col := range []string{"x", "y", "vx", "vy"} {
				header = append(header, b.ID+"_"+col)
			}
		}
	}
	header = append(header, "specific_energy", "specific_angular_momentum", "separation")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, f := range result.Frames {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(f.Time))
		for _, b := range f.Bodies {
			row = append(row,
				formatFloat(b.Position.X), formatFloat(b.Position.Y),
				formatFloat(b.Velocity.X), formatFloat(b.Velocity.Y))
		}
		row = append(row,
			formatFloat(f.Diagnostics.SpecificEnergy),
			formatFloat(f.Diagnostics.SpecificAngularMomentum),
			formatFloat(f.Diagnostics.Separation))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile picks the format from the extension of path.
func WriteFile(path, scenario string, result *sim.Result) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" && ext != ".csv" {
		return fmt.Errorf("unsupported export format %q (use .json or .csv)", ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if ext == ".csv" {
		err = ExportCSV(file, result)
	} else {
		err = ExportJSON(file, scenario, result)
	}
	if err != nil {
		return err
	}
	return file.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
