package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Sumatoshi-tech/symptomline/pkg/plotpage"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
)

const (
	severityDecimals = 1
	notesWidth       = 40
	ellipsis         = "..."
	noCategory       = "-"
)

var titleCaser = cases.Title(language.English)

var bandColors = map[symptom.Band]*color.Color{
	symptom.BandLow:      color.New(color.FgGreen),
	symptom.BandModerate: color.New(color.FgYellow),
	symptom.BandHigh:     color.New(color.FgRed, color.Bold),
}

// severityCell renders a severity with its band glyph, coloured by band.
func severityCell(severity float64) string {
	band := symptom.BandOf(severity)

	return bandColors[band].Sprintf("%s %.*f", band.Glyph(), severityDecimals, severity)
}

// categoryLabel title-cases a category for display.
func categoryLabel(c symptom.Category) string {
	if c == "" {
		return noCategory
	}

	return titleCaser.String(strings.ToLower(string(c)))
}

// meanCell renders a daily mean, or the no-data marker.
func meanCell(value float64, valid bool) string {
	if !valid {
		return plotpage.NoData
	}

	return severityCell(value)
}

func truncate(s string, width int) string {
	runes := []rune(strings.Join(strings.Fields(s), " "))
	if len(runes) <= width {
		return string(runes)
	}

	return string(runes[:width-len(ellipsis)]) + ellipsis
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	return tbl
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(value)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}
