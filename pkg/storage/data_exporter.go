package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// DataExporter writes human-readable exports next to the database.
type DataExporter struct {
	mu sync.Mutex
}

// NewDataExporter creates a new data exporter
func NewDataExporter() *DataExporter {
	return &DataExporter{}
}

// AppendCSV appends rows to path, writing header first when the file is new
// or empty. A UTF-8 BOM is written with the header so spreadsheet tools
// detect the encoding of Korean text.
func (de *DataExporter) AppendCSV(path string, header []string, rows [][]string) error {
	de.mu.Lock()
	defer de.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	needHeader := true
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		needHeader = false
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if needHeader {
		if _, err := io.WriteString(f, "\ufeff"); err != nil {
			return err
		}
	}

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

// WriteJSON writes v as indented JSON to path
func (de *DataExporter) WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
