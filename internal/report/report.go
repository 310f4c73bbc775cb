// SPDX-License-Identifier: MPL-2.0

// Package report renders the outcome of a merge run as JSON, CSV, or HTML.
//
// The JSON report is the machine-readable contract for tooling built on top
// of the merger; the CSV report is a flat conflict table for spreadsheets;
// the HTML report is a self-contained page for humans. All three are
// projections of the same Report value, so they never disagree.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"arxmlmerge/pkg/merge"
)

type (
	// Report is the serializable outcome of one merge run.
	Report struct {
		GeneratedAt time.Time              `json:"generated_at"`
		Inputs      []string               `json:"inputs"`
		Strategy    string                 `json:"strategy"`
		Success     bool                   `json:"success"`
		Summary     Summary                `json:"summary"`
		Conflicts   []Conflict             `json:"conflicts"`
		Warnings    []string               `json:"warnings,omitempty"`
		Errors      []string               `json:"errors,omitempty"`
		Signals     []merge.InventoryEntry `json:"signals"`
		Interfaces  []merge.InventoryEntry `json:"interfaces"`
	}

	// Summary aggregates the conflict ledger for quick triage.
	Summary struct {
		TotalConflicts int            `json:"total_conflicts"`
		ByType         map[string]int `json:"by_type,omitempty"`
		ByStrategy     map[string]int `json:"by_strategy,omitempty"`
		WarningCount   int            `json:"warning_count"`
		ErrorCount     int            `json:"error_count"`
	}

	// Conflict is one resolved conflict, flattened for serialization.
	Conflict struct {
		Path        string `json:"path"`
		ElementType string `json:"element_type"`
		ElementName string `json:"element_name"`
		Type        string `json:"conflict_type"`
		Resolution  string `json:"resolution_strategy"`
		Description string `json:"description"`
		LeftSource  string `json:"left_source"`
		RightSource string `json:"right_source"`
	}

	// Formats selects which report files WriteFiles produces.
	Formats struct {
		JSON bool
		CSV  bool
		HTML bool
	}
)

// New builds a Report from a merge result. The inputs slice and strategy
// name come from the invocation, not the result, because failed inputs
// never make it into the result's document.
func New(result merge.Result, inputs []string, strategy string) *Report {
	r := &Report{
		GeneratedAt: time.Now().UTC(),
		Inputs:      inputs,
		Strategy:    strategy,
		Success:     result.Success,
		Conflicts:   make([]Conflict, 0, len(result.Conflicts)),
		Warnings:    result.Warnings,
		Errors:      result.Errors,
		Signals:     result.Inventory.Signals(),
		Interfaces:  result.Inventory.Interfaces(),
	}
	for _, rc := range result.Conflicts {
		r.Conflicts = append(r.Conflicts, Conflict{
			Path:        rc.Context.Path,
			ElementType: rc.Context.ElementType(),
			ElementName: rc.Context.ElementName(),
			Type:        rc.Context.Type.String(),
			Resolution:  rc.Resolution.Applied.String(),
			Description: rc.Resolution.Description,
			LeftSource:  rc.Context.LeftSource,
			RightSource: rc.Context.RightSource,
		})
	}
	r.Summary = summarize(r)
	return r
}

// summarize tallies the flattened ledger by conflict type and applied
// strategy.
func summarize(r *Report) Summary {
	s := Summary{
		TotalConflicts: len(r.Conflicts),
		WarningCount:   len(r.Warnings),
		ErrorCount:     len(r.Errors),
	}
	if len(r.Conflicts) == 0 {
		return s
	}
	s.ByType = make(map[string]int)
	s.ByStrategy = make(map[string]int)
	for _, c := range r.Conflicts {
		s.ByType[c.Type]++
		s.ByStrategy[c.Resolution]++
	}
	return s
}

// WriteJSON writes the full report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// csvHeader is the column order of the CSV conflict table.
var csvHeader = []string{
	"path", "element_type", "element_name", "conflict_type",
	"resolution_strategy", "description", "left_source", "right_source",
}

// WriteCSV writes the conflict table as CSV with a header row.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, c := range r.Conflicts {
		record := []string{
			c.Path, c.ElementType, c.ElementName, c.Type,
			c.Resolution, c.Description, c.LeftSource, c.RightSource,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV report: %w", err)
	}
	return nil
}

// WriteFiles writes the selected formats into dir (created if missing) and
// returns the paths written. An empty dir means the current directory.
func (r *Report) WriteFiles(dir string, formats Formats) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	type target struct {
		enabled bool
		name    string
		write   func(io.Writer) error
	}
	targets := []target{
		{formats.JSON, "merge-report.json", r.WriteJSON},
		{formats.CSV, "merge-report.csv", r.WriteCSV},
		{formats.HTML, "merge-report.html", r.WriteHTML},
	}

	var written []string
	for _, tgt := range targets {
		if !tgt.enabled {
			continue
		}
		path := filepath.Join(dir, tgt.name)
		f, err := os.Create(path)
		if err != nil {
			return written, fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := tgt.write(f); err != nil {
			f.Close()
			return written, err
		}
		if err := f.Close(); err != nil {
			return written, fmt.Errorf("failed to close %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
