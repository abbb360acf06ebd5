package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config) {
	serviceURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 64
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` 8888888888 d8b          888888b.                888      888`,
		` 888        Y8P          888  "88b               888      888`,
		` 888                     888  .88P               888      888`,
		` 8888888    888 88888b.  8888888K.  888  888  .d88888  .d88888 888  888`,
		` 888        888 888 "88b 888  "Y88b 888  888 d88" 888 d88" 888 888  888`,
		` 888        888 888  888 888    888 888  888 888  888 888  888 888  888`,
		` 888        888 888  888 888   d88P Y88b 888 Y88b 888 Y88b 888 Y88b 888`,
		` 888        888 888  888 8888888P"   "Y88888  "Y88888  "Y88888  "Y88888`,
		`                                                                    888`,
		`                                                               Y8b d88P`,
		`                                                                "Y88P"`,
	}

	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n%s  Portfolio Risk & Market Insight Engine%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)

	kvPad := 14
	kvLines := [][2]string{
		{"Version", GetVersion()},
		{"Build", GetBuild()},
		{"Environment", config.Environment},
		{"Service URL", serviceURL},
		{"Storage", config.Storage.Path},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
}
