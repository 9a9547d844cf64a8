package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/artomat/artomat/internal/models"
	"github.com/parquet-go/parquet-go"
)

// Export writes prompt records to a file, choosing the format by
// extension (.jsonl or .parquet).
func Export(records []models.PromptRecord, path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".jsonl":
		return exportJSONL(records, path)
	case ".parquet":
		return exportParquet(records, path)
	default:
		return fmt.Errorf("unsupported export format: %s (supported: .jsonl, .parquet)", ext)
	}
}

func exportJSONL(records []models.PromptRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for i, record := range records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
	}

	return nil
}

func exportParquet(records []models.PromptRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[models.PromptRecord](file)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// Load reads prompt records back from an exported file, detecting the
// format by extension.
func Load(path string) ([]models.PromptRecord, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".jsonl":
		return loadJSONL(path)
	case ".parquet":
		return loadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported export format: %s (supported: .jsonl, .parquet)", ext)
	}
}

func loadJSONL(path string) ([]models.PromptRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	defer file.Close()

	var records []models.PromptRecord
	dec := json.NewDecoder(file)
	for dec.More() {
		var record models.PromptRecord
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to parse record %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func loadParquet(path string) ([]models.PromptRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[models.PromptRecord](pf)
	defer reader.Close()

	var records []models.PromptRecord
	rows := make([]models.PromptRecord, 64)
	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	return records, nil
}
