package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"studentms/internal/model"
)

// Import statuses reported through the progress endpoints.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// ProgressInfo tracks one uploaded file through its import.
type ProgressInfo struct {
	FileName     string    `json:"fileName"`
	TotalRecords int       `json:"totalRecords"`
	Processed    int       `json:"processed"`
	Imported     int       `json:"imported"`
	Skipped      int       `json:"skipped"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
}

// ImportService ingests uploaded CSV files into the student table and
// tracks per-file progress for pollers and SSE streams.
type ImportService struct {
	students *StudentService

	progressMu sync.RWMutex
	progress   map[string]*ProgressInfo

	listenerMu sync.RWMutex
	listeners  map[chan ProgressInfo]bool
}

func NewImportService(students *StudentService) *ImportService {
	return &ImportService{
		students:  students,
		progress:  make(map[string]*ProgressInfo),
		listeners: make(map[chan ProgressInfo]bool),
	}
}

// RegisterProgressListener subscribes a channel to progress updates.
func (s *ImportService) RegisterProgressListener(ch chan ProgressInfo) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners[ch] = true
}

// UnregisterProgressListener removes a subscriber.
func (s *ImportService) UnregisterProgressListener(ch chan ProgressInfo) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	delete(s.listeners, ch)
}

func (s *ImportService) broadcast(progress ProgressInfo) {
	s.listenerMu.RLock()
	defer s.listenerMu.RUnlock()

	for listener := range s.listeners {
		select {
		case listener <- progress:
		default:
			// Skip listeners that are not ready.
		}
	}
}

// FileProgress returns a copy of one file's progress, or nil when the
// file is unknown.
func (s *ImportService) FileProgress(fileName string) *ProgressInfo {
	s.progressMu.RLock()
	defer s.progressMu.RUnlock()

	if progress, exists := s.progress[fileName]; exists {
		copied := *progress
		return &copied
	}
	return nil
}

// AllProgress returns a copy of every tracked file's progress.
func (s *ImportService) AllProgress() []ProgressInfo {
	s.progressMu.RLock()
	defer s.progressMu.RUnlock()

	result := make([]ProgressInfo, 0, len(s.progress))
	for _, progress := range s.progress {
		result = append(result, *progress)
	}
	return result
}

func (s *ImportService) startProgress(fileName string) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()

	progress := &ProgressInfo{
		FileName:  fileName,
		Status:    StatusProcessing,
		StartTime: time.Now(),
	}
	s.progress[fileName] = progress
	s.broadcast(*progress)
}

func (s *ImportService) setTotal(fileName string, total int) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()

	if progress, exists := s.progress[fileName]; exists {
		progress.TotalRecords = total
		s.broadcast(*progress)
	}
}

func (s *ImportService) addProcessed(fileName string, n int) {
	if n == 0 {
		return
	}
	s.progressMu.Lock()
	defer s.progressMu.Unlock()

	if progress, exists := s.progress[fileName]; exists {
		progress.Processed += n
		if progress.Processed > progress.TotalRecords {
			progress.Processed = progress.TotalRecords
		}
		s.broadcast(*progress)
	}
}

func (s *ImportService) finishProgress(fileName string, imported, skipped int) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()

	if progress, exists := s.progress[fileName]; exists {
		progress.Status = StatusCompleted
		progress.Processed = progress.TotalRecords
		progress.Imported = imported
		progress.Skipped = skipped
		progress.EndTime = time.Now()
		s.broadcast(*progress)
	}
}

func (s *ImportService) failProgress(fileName, errorMsg string) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()

	if progress, exists := s.progress[fileName]; exists {
		progress.Status = StatusError
		progress.Error = errorMsg
		progress.EndTime = time.Now()
		s.broadcast(*progress)
	}
}

// ImportCSV reads one uploaded CSV file and imports its rows. Rows map
// to columns by header name, rows whose roll number is already taken
// are skipped, and grades are recomputed from the marks column. The
// whole file lands as a single table rewrite at the end.
func (s *ImportService) ImportCSV(filePath string) error {
	fileName := filepath.Base(filePath)
	startTime := time.Now()
	s.startProgress(fileName)

	total, err := countRows(filePath)
	if err != nil {
		s.failProgress(fileName, "Failed to count records: "+err.Error())
		return fmt.Errorf("count records of %s: %w", fileName, err)
	}
	s.setTotal(fileName, total)

	batch, err := s.readRows(filePath, fileName)
	if err != nil {
		s.failProgress(fileName, "Failed to read file: "+err.Error())
		return fmt.Errorf("read %s: %w", fileName, err)
	}

	imported, skipped, err := s.students.ImportRecords(batch)
	if err != nil {
		s.failProgress(fileName, "Failed to save records: "+err.Error())
		return fmt.Errorf("import %s: %w", fileName, err)
	}

	s.finishProgress(fileName, imported, skipped)
	log.Printf("Import completed for %s in %v: %d added, %d skipped\n",
		fileName, time.Since(startTime), imported, skipped)
	return nil
}

// readRows parses the file into records, reporting progress every 100
// rows. Malformed rows are logged and dropped rather than aborting the
// rest of the file; errors from the underlying file still abort.
func (s *ImportService) readRows(filePath, fileName string) ([]model.Student, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var batch []model.Student
	processed := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !isRowError(err) {
				return nil, err
			}
			log.Println("Skipping malformed CSV record:", err)
			continue
		}

		fields := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(row) {
				fields[column] = row[i]
			}
		}
		batch = append(batch, model.FromFieldMap(fields))

		processed++
		if processed%100 == 0 {
			s.addProcessed(fileName, 100)
		}
	}
	s.addProcessed(fileName, processed%100)

	return batch, nil
}

func countRows(filePath string) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err == io.EOF {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	count := 0
	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !isRowError(err) {
				return 0, err
			}
			continue
		}
		count++
	}
	return count, nil
}

// isRowError reports whether the reader error belongs to one malformed
// row, which the loops skip, as opposed to a failure of the underlying
// file.
func isRowError(err error) bool {
	var parseErr *csv.ParseError
	return errors.As(err, &parseErr)
}
