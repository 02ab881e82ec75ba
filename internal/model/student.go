package model

import "strings"

// Student is one student record as kept in the backing table. Every
// field is stored as text: Marks and Attendance hold decimal strings
// in the 0-100 range and Grade is always derived from Marks, never set
// directly.
type Student struct {
	Name       string `json:"name"`
	Roll       string `json:"roll"`
	Course     string `json:"course"`
	Gender     string `json:"gender"`
	DOB        string `json:"dob"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Subjects   string `json:"subjects"`
	Attendance string `json:"attendance"`
	Marks      string `json:"marks"`
	Grade      string `json:"grade"`
}

// columns is the canonical column set of the backing table, in storage
// order. The header row of every saved table uses exactly these names.
var columns = []string{
	"Name", "Roll", "Course", "Gender", "DOB", "Email",
	"Phone", "Address", "Subjects", "Attendance", "Marks", "Grade",
}

// Genders lists the accepted values for the Gender field.
var Genders = []string{"Male", "Female", "Other"}

// Columns returns the canonical column names in storage order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Values returns the record's fields in Columns() order, ready to be
// written as one table row.
func (s Student) Values() []string {
	return []string{
		s.Name, s.Roll, s.Course, s.Gender, s.DOB, s.Email,
		s.Phone, s.Address, s.Subjects, s.Attendance, s.Marks, s.Grade,
	}
}

// SetField assigns a single column by name and reports whether the
// column is part of the schema. Unrecognized names leave the record
// untouched.
func (s *Student) SetField(column, value string) bool {
	switch column {
	case "Name":
		s.Name = value
	case "Roll":
		s.Roll = value
	case "Course":
		s.Course = value
	case "Gender":
		s.Gender = value
	case "DOB":
		s.DOB = value
	case "Email":
		s.Email = value
	case "Phone":
		s.Phone = value
	case "Address":
		s.Address = value
	case "Subjects":
		s.Subjects = value
	case "Attendance":
		s.Attendance = value
	case "Marks":
		s.Marks = value
	case "Grade":
		s.Grade = value
	default:
		return false
	}
	return true
}

// FromFieldMap builds a Student from column-keyed values. Columns
// absent from the map come out as empty strings and unrecognized keys
// are ignored, so a record built from a sparse or dirty row still has
// the full schema shape.
func FromFieldMap(fields map[string]string) Student {
	var s Student
	for column, value := range fields {
		s.SetField(column, value)
	}
	return s
}

// CanonicalColumn resolves a column name case-insensitively, so JSON
// payload keys like "marks" select the stored "Marks" column.
func CanonicalColumn(name string) (string, bool) {
	for _, column := range columns {
		if strings.EqualFold(column, name) {
			return column, true
		}
	}
	return "", false
}

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g string) bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}
