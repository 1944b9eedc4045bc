// CSV export for experiment records. The export carries every column of
// the experiments table, oldest record first, and is prefixed with a
// UTF-8 byte order mark so spreadsheet tools detect the encoding.
package sqlite

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mesh-intelligence/labrec/pkg/types"
)

// utf8BOM is written before the CSV header.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvHeader lists the export columns in order.
var csvHeader = []string{
	"record_id", "label", "recorded_at", "mode", "voltage_v", "current_a",
	"electrolyte", "duration_min", "anode_initial_g", "anode_final_g",
	"anode_delta_g", "cathode_initial_g", "cathode_final_g", "cathode_delta_g",
	"notes", "created_at", "updated_at",
}

// formatFloat renders a float with full precision.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatOptFloat renders an optional float, empty when unset.
func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

// csvRow converts one record to its CSV fields.
func csvRow(e *types.Experiment) []string {
	return []string{
		e.RecordID,
		e.Label,
		e.RecordedAt.UTC().Format(time.RFC3339),
		e.Mode,
		formatOptFloat(e.VoltageV),
		formatOptFloat(e.CurrentA),
		e.Electrolyte,
		formatOptFloat(e.DurationMin),
		formatFloat(e.AnodeInitialG),
		formatFloat(e.AnodeFinalG),
		formatFloat(e.AnodeDeltaG),
		formatFloat(e.CathodeInitialG),
		formatFloat(e.CathodeFinalG),
		formatFloat(e.CathodeDeltaG),
		e.Notes,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	}
}

// ExportCSV writes every record as CSV to w, oldest first.
func (rt *recordTable) ExportCSV(w io.Writer) error {
	records, err := rt.fetch(types.Filter{}, true)
	if err != nil {
		return err
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, record := range records {
		if err := cw.Write(csvRow(record)); err != nil {
			return fmt.Errorf("writing record %s: %w", record.RecordID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// ExportCSVFile atomically writes the CSV export to path using the
// temp-file, fsync, rename pattern.
func (rt *recordTable) ExportCSVFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".csv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := rt.ExportCSV(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
