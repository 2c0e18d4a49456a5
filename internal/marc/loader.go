package marc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Loader handles loading MARC source records from catalog dumps
type Loader struct {
	sourcePath string
}

// NewLoader creates a new source record loader
func NewLoader(sourcePath string) *Loader {
	return &Loader{
		sourcePath: sourcePath,
	}
}

// ForEach streams records from the source file (JSONL or Parquet) in source
// order, calling fn once per record. Malformed lines are passed to fn as a
// nil record with the parse error so callers can apply their own failure
// policy without aborting the batch.
func (l *Loader) ForEach(fn func(lineNum int, record *Record, parseErr error) error) error {
	ext := strings.ToLower(filepath.Ext(l.sourcePath))

	switch ext {
	case ".parquet":
		return l.forEachParquet(fn)
	case ".jsonl", ".json":
		return l.forEachJSONL(fn)
	default:
		return fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// forEachJSONL streams records from a JSONL file
func (l *Loader) forEachJSONL(fn func(int, *Record, error) error) error {
	slog.Debug("Opening JSONL file", "path", l.sourcePath)

	file, err := os.Open(l.sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	// Increase buffer size for large JSON lines
	const maxCapacity = 10 * 1024 * 1024 // 10MB per line
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			if cbErr := fn(lineNum, nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)); cbErr != nil {
				return cbErr
			}
			continue
		}

		if err := fn(lineNum, &record, nil); err != nil {
			return err
		}

		// Log progress every 1000 records
		if lineNum%1000 == 0 {
			slog.Debug("Reading JSONL", "lines_read", lineNum)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading source: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_lines", lineNum)

	return nil
}

// forEachParquet streams records from a Parquet file
func (l *Loader) forEachParquet(fn func(int, *Record, error) error) error {
	slog.Debug("Opening Parquet file", "path", l.sourcePath)

	file, err := os.Open(l.sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	rows := make([]Record, 128) // Read in batches
	rowNum := 0

	for {
		n, err := reader.Read(rows)
		for i := 0; i < n; i++ {
			rowNum++
			record := rows[i]
			if cbErr := fn(rowNum, &record, nil); cbErr != nil {
				return cbErr
			}
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet file", "total_records", rowNum)

	return nil
}

// Load loads all records into memory. Prefer ForEach for large corpora.
func (l *Loader) Load() ([]Record, error) {
	var records []Record
	err := l.ForEach(func(lineNum int, record *Record, parseErr error) error {
		if parseErr != nil {
			// Skip malformed lines but continue
			fmt.Fprintf(os.Stderr, "Warning: %v\n", parseErr)
			return nil
		}
		records = append(records, *record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// LoadSample loads a limited number of records (useful for testing)
func (l *Loader) LoadSample(limit int) ([]Record, error) {
	var records []Record
	err := l.ForEach(func(lineNum int, record *Record, parseErr error) error {
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", parseErr)
			return nil
		}
		records = append(records, *record)
		if len(records) >= limit {
			return errStopIteration
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		return nil, err
	}
	return records, nil
}

// errStopIteration signals early termination of ForEach from LoadSample.
var errStopIteration = errors.New("stop iteration")
