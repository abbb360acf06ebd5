package report

import (
	"bytes"
	"testing"
)

func TestRenderSectorChart(t *testing.T) {
	png, err := RenderSectorChart(map[string]float64{
		"Technology": 55.0,
		"Healthcare": 30.0,
		"Other":      15.0,
	})
	if err != nil {
		t.Fatalf("RenderSectorChart failed: %v", err)
	}

	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}
}

func TestRenderSectorChart_Empty(t *testing.T) {
	if _, err := RenderSectorChart(nil); err == nil {
		t.Error("expected error for empty distribution")
	}
	if _, err := RenderSectorChart(map[string]float64{"Other": 0}); err == nil {
		t.Error("expected error when all weights are zero")
	}
}
