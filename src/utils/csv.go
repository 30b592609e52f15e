package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

// ExportSurfaceCSV writes the surface in long format, one row per (date, price level).
func ExportSurfaceCSV(surface *eventmodels.ProfitabilitySurface, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ExportSurfaceCSV: failed to create %s: %w", dir, err)
		}
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("ExportSurfaceCSV: failed to create file: %w", err)
	}
	defer file.Close()

	rows := surface.ToCSVRows()
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("ExportSurfaceCSV: failed to marshal rows: %w", err)
	}

	log.Infof("exported %d surface rows to %s", len(rows), outPath)

	return nil
}
