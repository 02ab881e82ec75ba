package store

import (
	"fmt"

	"gorm.io/gorm"

	"studentms/internal/model"
)

// StudentRow is the table row the SQL backends persist. Position keeps
// the insertion order that the flat-file format gets for free.
type StudentRow struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	Position   int    `gorm:"column:position;index"`
	Name       string `gorm:"column:name"`
	Roll       string `gorm:"column:roll;index"`
	Course     string `gorm:"column:course"`
	Gender     string `gorm:"column:gender"`
	DOB        string `gorm:"column:dob"`
	Email      string `gorm:"column:email"`
	Phone      string `gorm:"column:phone"`
	Address    string `gorm:"column:address"`
	Subjects   string `gorm:"column:subjects"`
	Attendance string `gorm:"column:attendance"`
	Marks      string `gorm:"column:marks"`
	Grade      string `gorm:"column:grade"`
}

// TableName keeps the SQL table named like the flat file.
func (StudentRow) TableName() string { return "students" }

// SQLStore runs the same full-snapshot contract as CSVStore on top of
// a relational database (sqlite or postgres through GORM).
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load() ([]model.Student, error) {
	var rows []StudentRow
	if err := s.db.Order("position asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	records := make([]model.Student, 0, len(rows))
	for _, row := range rows {
		records = append(records, studentFromRow(row))
	}
	return records, nil
}

// Save rewrites the whole table inside one transaction, mirroring the
// flat-file replace.
func (s *SQLStore) Save(records []model.Student) error {
	rows := make([]StudentRow, 0, len(records))
	for i, rec := range records {
		rows = append(rows, rowFromStudent(i, rec))
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM students").Error; err != nil {
			return fmt.Errorf("clear students: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert students: %w", err)
		}
		return nil
	})
}

func rowFromStudent(position int, rec model.Student) StudentRow {
	return StudentRow{
		Position:   position,
		Name:       rec.Name,
		Roll:       rec.Roll,
		Course:     rec.Course,
		Gender:     rec.Gender,
		DOB:        rec.DOB,
		Email:      rec.Email,
		Phone:      rec.Phone,
		Address:    rec.Address,
		Subjects:   rec.Subjects,
		Attendance: rec.Attendance,
		Marks:      rec.Marks,
		Grade:      rec.Grade,
	}
}

func studentFromRow(row StudentRow) model.Student {
	return model.Student{
		Name:       row.Name,
		Roll:       row.Roll,
		Course:     row.Course,
		Gender:     row.Gender,
		DOB:        row.DOB,
		Email:      row.Email,
		Phone:      row.Phone,
		Address:    row.Address,
		Subjects:   row.Subjects,
		Attendance: row.Attendance,
		Marks:      row.Marks,
		Grade:      row.Grade,
	}
}
