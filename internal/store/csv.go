package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"studentms/internal/model"
)

// CSVStore keeps the student table in a flat CSV file with a header
// row. The file is the canonical format: the export endpoint hands out
// exactly what Save writes.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads the whole table. A missing file counts as an empty
// collection. Values map to columns by header name, so unknown columns
// are dropped and recognized-but-absent columns come back as empty
// strings; rows shorter than the header are padded the same way.
func (s *CSVStore) Load() ([]model.Student, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Student{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []model.Student{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", s.path, err)
	}

	records := []model.Student{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.path, err)
		}
		fields := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(row) {
				fields[column] = row[i]
			}
		}
		records = append(records, model.FromFieldMap(fields))
	}
	return records, nil
}

// Save rewrites the whole table. The rows go to a temp file in the
// same directory which then replaces the old file, so a failed write
// never leaves a truncated table behind. The header row is always
// written, even with zero records.
func (s *CSVStore) Save(records []model.Student) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}

	err = WriteTable(tmp, records)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// WriteTable serializes the header row and all records as CSV in
// column order. The export endpoint shares this with CSVStore so every
// backend downloads in the same format.
func WriteTable(w io.Writer, records []model.Student) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(model.Columns()); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write(rec.Values()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
