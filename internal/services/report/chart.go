// Package report renders visual artifacts from analysis results
package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// sectorPalette cycles across donut slices
var sectorPalette = []string{
	"2563eb", // blue-600
	"16a34a", // green-600
	"f59e0b", // amber-500
	"dc2626", // red-600
	"7c3aed", // violet-600
	"0891b2", // cyan-600
	"9ca3af", // gray-400
}

// RenderSectorChart renders a PNG donut chart of the portfolio's sector
// distribution. Percentages come from a risk report's sector analysis.
// Returns raw PNG bytes.
func RenderSectorChart(distribution map[string]float64) ([]byte, error) {
	if len(distribution) == 0 {
		return nil, fmt.Errorf("no sector distribution to chart")
	}

	sectors := make([]string, 0, len(distribution))
	for sector := range distribution {
		sectors = append(sectors, sector)
	}
	sort.Slice(sectors, func(i, j int) bool {
		return distribution[sectors[i]] > distribution[sectors[j]]
	})

	values := make([]chart.Value, 0, len(sectors))
	for i, sector := range sectors {
		pct := distribution[sector]
		if pct <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: pct,
			Label: fmt.Sprintf("%s (%.1f%%)", sector, pct),
			Style: chart.Style{
				FillColor: drawing.ColorFromHex(sectorPalette[i%len(sectorPalette)]),
			},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no positive sector weights to chart")
	}

	graph := chart.DonutChart{
		Title:  "Sector Distribution",
		Width:  600,
		Height: 400,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
