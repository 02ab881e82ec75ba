package service

import (
	"errors"
	"fmt"
	"sync"

	"studentms/internal/model"
	"studentms/internal/store"
)

// Operation outcomes the handlers branch on.
var (
	// ErrDuplicateRoll rejects an insert whose roll number is already
	// taken.
	ErrDuplicateRoll = errors.New("roll number already exists")

	// ErrNotFound reports that no record matches the requested roll
	// number.
	ErrNotFound = errors.New("student not found")
)

// StudentService runs every record operation as one serialized
// load-mutate-save pass over the injected store. The mutex is the
// single-writer guard: two concurrent requests cannot interleave their
// read-modify-write cycles and drop each other's changes.
type StudentService struct {
	mu    sync.Mutex
	store store.Store
}

func NewStudentService(st store.Store) *StudentService {
	return &StudentService{store: st}
}

// List returns the full snapshot in stored order.
func (s *StudentService) List() ([]model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load()
}

// Search returns the record whose roll number matches exactly. Roll
// comparison is a plain string match, no trimming or case folding.
func (s *StudentService) Search(roll string) (model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return model.Student{}, err
	}
	for _, rec := range records {
		if rec.Roll == roll {
			return rec, nil
		}
	}
	return model.Student{}, fmt.Errorf("roll %q: %w", roll, ErrNotFound)
}

// Add appends a new record. The roll number must be unique across the
// table, and the grade is computed from the marks no matter what the
// caller put in the Grade field. Nothing is saved when the roll is
// taken.
func (s *StudentService) Add(rec model.Student) (model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return model.Student{}, err
	}
	for _, existing := range records {
		if existing.Roll == rec.Roll {
			return model.Student{}, fmt.Errorf("roll %q: %w", rec.Roll, ErrDuplicateRoll)
		}
	}

	rec.Grade = model.CalculateGrade(rec.Marks)
	records = append(records, rec)
	if err := s.store.Save(records); err != nil {
		return model.Student{}, err
	}
	return rec, nil
}

// Update merges the given column values into the record with that roll
// number. Only named columns change. Roll and Grade entries are
// dropped: the roll is the immutable key, and the grade is rederived
// whenever the marks change.
func (s *StudentService) Update(roll string, fields map[string]string) (model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return model.Student{}, err
	}
	for i := range records {
		if records[i].Roll != roll {
			continue
		}

		for column, value := range fields {
			if column == "Roll" || column == "Grade" {
				continue
			}
			records[i].SetField(column, value)
		}
		if _, ok := fields["Marks"]; ok {
			records[i].Grade = model.CalculateGrade(records[i].Marks)
		}

		if err := s.store.Save(records); err != nil {
			return model.Student{}, err
		}
		return records[i], nil
	}
	return model.Student{}, fmt.Errorf("roll %q: %w", roll, ErrNotFound)
}

// Delete removes every record with the given roll number. Add enforces
// unique rolls, so at most one should match. When none match, nothing
// is saved.
func (s *StudentService) Delete(roll string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return err
	}

	kept := make([]model.Student, 0, len(records))
	for _, rec := range records {
		if rec.Roll != roll {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("roll %q: %w", roll, ErrNotFound)
	}
	return s.store.Save(kept)
}

// ImportRecords appends every record whose roll number is not yet
// taken, skipping duplicates inside the batch as well, and writes the
// table once at the end. Grades are recomputed from the marks column
// on the way in.
func (s *StudentService) ImportRecords(batch []model.Student) (imported, skipped int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return 0, 0, err
	}
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		seen[rec.Roll] = true
	}

	for _, rec := range batch {
		if seen[rec.Roll] {
			skipped++
			continue
		}
		rec.Grade = model.CalculateGrade(rec.Marks)
		records = append(records, rec)
		seen[rec.Roll] = true
		imported++
	}

	if imported == 0 {
		return 0, skipped, nil
	}
	if err := s.store.Save(records); err != nil {
		return 0, 0, err
	}
	return imported, skipped, nil
}
