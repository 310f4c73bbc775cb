// SPDX-License-Identifier: MPL-2.0

package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arxmlmerge/internal/testutil/arxmltest"
	"arxmlmerge/pkg/arxml"
	"arxmlmerge/pkg/merge"
)

// mergedResult produces a result with one conflict, one warning, and a
// populated inventory.
func mergedResult(t *testing.T) merge.Result {
	t.Helper()
	a := arxmltest.Doc("a.arxml", arxmltest.Package("Comm", arxmltest.Elements(
		arxmltest.Signal("EngineSpeed", 8),
		arxmltest.SRInterface("VehicleState", arxmltest.Ref("TYPE-TREF", "/Types/uint8")),
	)))
	b := arxmltest.Doc("b.arxml", arxmltest.Package("Comm", arxmltest.Elements(
		arxmltest.Signal("EngineSpeed", 16),
	)))

	cfg := merge.Config{Default: merge.Skip}
	result := merge.Merge([]*arxml.Document{a, b}, cfg)
	require.True(t, result.Success)
	require.Len(t, result.Conflicts, 1)
	require.NotEmpty(t, result.Warnings)
	return result
}

func TestNewFlattensConflicts(t *testing.T) {
	result := mergedResult(t)
	r := New(result, []string{"a.arxml", "b.arxml"}, "conservative")

	require.Len(t, r.Conflicts, 1)
	c := r.Conflicts[0]
	assert.Equal(t, "I-SIGNAL", c.ElementType)
	assert.Equal(t, "EngineSpeed", c.ElementName)
	assert.Equal(t, "duplicate_element", c.Type)
	assert.Equal(t, "skip", c.Resolution)
	assert.Equal(t, "a.arxml", c.LeftSource)
	assert.Equal(t, "b.arxml", c.RightSource)

	require.Len(t, r.Signals, 1)
	assert.Equal(t, 8, r.Signals[0].Length, "inventory keeps the first occurrence")
	require.Len(t, r.Interfaces, 1)
	assert.Equal(t, "/Types/uint8", r.Interfaces[0].DataType)
}

func TestNewSummarizesLedger(t *testing.T) {
	result := mergedResult(t)
	r := New(result, []string{"a.arxml", "b.arxml"}, "conservative")

	assert.Equal(t, 1, r.Summary.TotalConflicts)
	assert.Equal(t, map[string]int{"duplicate_element": 1}, r.Summary.ByType)
	assert.Equal(t, map[string]int{"skip": 1}, r.Summary.ByStrategy)
	assert.Equal(t, len(result.Warnings), r.Summary.WarningCount)
	assert.Equal(t, 0, r.Summary.ErrorCount)
}

func TestNewSummaryEmptyLedger(t *testing.T) {
	a := arxmltest.Doc("a.arxml", arxmltest.Package("Comm", arxmltest.Elements(
		arxmltest.Signal("EngineSpeed", 8),
	)))
	result := merge.Merge([]*arxml.Document{a}, merge.Config{Default: merge.KeepFirst})
	require.True(t, result.Success)

	r := New(result, []string{"a.arxml"}, "conservative")
	assert.Zero(t, r.Summary.TotalConflicts)
	assert.Nil(t, r.Summary.ByType)
	assert.Nil(t, r.Summary.ByStrategy)
}

func TestWriteJSON(t *testing.T) {
	r := New(mergedResult(t), []string{"a.arxml", "b.arxml"}, "conservative")

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "conservative", decoded["strategy"])

	conflicts, ok := decoded["conflicts"].([]any)
	require.True(t, ok)
	require.Len(t, conflicts, 1)

	signals, ok := decoded["signals"].([]any)
	require.True(t, ok)
	require.Len(t, signals, 1)
	sig := signals[0].(map[string]any)
	assert.Equal(t, "I-SIGNAL", sig["kind"], "kinds serialize as AUTOSAR tags")
}

func TestWriteCSV(t *testing.T) {
	r := New(mergedResult(t), []string{"a.arxml", "b.arxml"}, "conservative")

	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one conflict")
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "EngineSpeed", records[1][2])
	assert.Equal(t, "duplicate_element", records[1][3])
}

func TestWriteHTML(t *testing.T) {
	r := New(mergedResult(t), []string{"a.arxml", "b.arxml"}, "conservative")

	var buf bytes.Buffer
	require.NoError(t, r.WriteHTML(&buf))

	page := buf.String()
	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "EngineSpeed")
	assert.Contains(t, page, "duplicate_element")
	assert.Contains(t, page, "VehicleState")
}

func TestWriteHTMLEscapesContent(t *testing.T) {
	r := &Report{
		Inputs:   []string{`<script>alert("x")</script>`},
		Strategy: "conservative",
		Success:  true,
	}

	var buf bytes.Buffer
	require.NoError(t, r.WriteHTML(&buf))
	assert.NotContains(t, buf.String(), `<script>alert`)
}

func TestWriteFiles(t *testing.T) {
	r := New(mergedResult(t), []string{"a.arxml", "b.arxml"}, "conservative")
	dir := filepath.Join(t.TempDir(), "reports")

	written, err := r.WriteFiles(dir, Formats{JSON: true, CSV: true, HTML: true})
	require.NoError(t, err)
	require.Len(t, written, 3)

	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestWriteFilesNoneSelected(t *testing.T) {
	r := New(mergedResult(t), nil, "conservative")

	written, err := r.WriteFiles(t.TempDir(), Formats{})
	require.NoError(t, err)
	assert.Empty(t, written)
}
