package handler

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"studentms/internal/model"
	"studentms/internal/service"
)

type StudentHandler struct {
	studentService *service.StudentService
}

func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// StudentRequest is the add payload. Every field travels as text, the
// same way it is stored; Grade is not accepted because it is always
// derived from the marks.
type StudentRequest struct {
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
}

// AddStudent inserts one record. Name, roll and course are required;
// marks and attendance must be numbers between 0 and 100 when given
// and default to 0 when left empty.
func (h *StudentHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	var req StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if msg := validateStudentRequest(req); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	rec := model.Student{
		Name:       req.Name,
		Roll:       req.Roll,
		Course:     req.Course,
		Gender:     req.Gender,
		DOB:        req.DOB,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Subjects:   req.Subjects,
		Attendance: normalizeScore(req.Attendance),
		Marks:      normalizeScore(req.Marks),
	}

	created, err := h.studentService.Add(rec)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateRoll) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// ListStudents returns one page of the table with optional filtering
// and sorting. Without sort parameters the stored insertion order is
// kept.
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 {
		limit = 10
	}
	sortBy := query.Get("sort_by")
	sortOrder := query.Get("sort_order")
	name := query.Get("name")
	course := query.Get("course")
	gender := query.Get("gender")

	records, err := h.studentService.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	records = filterStudents(records, name, course, gender)
	if sortBy != "" {
		sortStudents(records, sortBy, sortOrder == "desc")
	}

	total := len(records)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	// The offset arithmetic can wrap for outsized page or limit
	// values, so clamp negatives as well as overshoots.
	start := (page - 1) * limit
	if start < 0 || start > total {
		start = total
	}
	end := start + limit
	if end < start || end > total {
		end = total
	}

	response := map[string]interface{}{
		"data":       records[start:end],
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": totalPages,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// GetStudent looks up one record by roll number. The roll must match
// exactly as stored.
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	roll := mux.Vars(r)["roll"]

	rec, err := h.studentService.Search(roll)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "No student found with that roll number", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// UpdateStudent merges a partial field map into one record. Only named
// fields change; roll and grade keys are ignored, and the grade is
// recomputed whenever marks are part of the update.
func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	roll := mux.Vars(r)["roll"]

	var payload map[string]string
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(payload) == 0 {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	fields := canonicalFields(payload)
	if msg := validateUpdateFields(fields); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	for _, column := range []string{"Marks", "Attendance"} {
		if value, ok := fields[column]; ok && value != "" {
			fields[column] = normalizeScore(value)
		}
	}

	updated, err := h.studentService.Update(roll, fields)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "No student found with that roll number", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// DeleteStudent removes one record by roll number.
func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	roll := mux.Vars(r)["roll"]

	if err := h.studentService.Delete(roll); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "No student found with that roll number", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := map[string]interface{}{
		"message": "Student deleted successfully",
		"roll":    roll,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// GetStats returns the dashboard aggregates for the whole table.
func (h *StudentHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.studentService.Stats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// validateStudentRequest applies the add-form rules: required
// name/roll/course, numeric 0-100 marks and attendance, a known
// gender and an ISO date of birth. Empty optional fields pass.
func validateStudentRequest(req StudentRequest) string {
	if req.Name == "" || req.Roll == "" || req.Course == "" {
		return "Name, roll and course are required"
	}
	if msg := validateScore("Marks", req.Marks); msg != "" {
		return msg
	}
	if msg := validateScore("Attendance", req.Attendance); msg != "" {
		return msg
	}
	if req.Gender != "" && !model.ValidGender(req.Gender) {
		return "Gender must be one of Male, Female or Other"
	}
	if msg := validateDOB(req.DOB); msg != "" {
		return msg
	}
	return ""
}

// validateUpdateFields checks the columns present in a partial update
// with the same rules as the add form. An empty value clears the
// column, which is always allowed.
func validateUpdateFields(fields map[string]string) string {
	for _, column := range []string{"Marks", "Attendance"} {
		if value, ok := fields[column]; ok && value != "" {
			if msg := validateScore(column, value); msg != "" {
				return msg
			}
		}
	}
	if gender, ok := fields["Gender"]; ok && gender != "" && !model.ValidGender(gender) {
		return "Gender must be one of Male, Female or Other"
	}
	if dob, ok := fields["DOB"]; ok {
		if msg := validateDOB(dob); msg != "" {
			return msg
		}
	}
	return ""
}

func validateScore(column, value string) string {
	if value == "" {
		return ""
	}
	// NaN and infinity parse as floats but slip past the range
	// comparisons, so rule them out explicitly.
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return column + " must be a number"
	}
	if v < 0 || v > 100 {
		return column + " must be between 0 and 100"
	}
	return ""
}

func validateDOB(dob string) string {
	if dob == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", dob); err != nil {
		return "DOB must be a date in YYYY-MM-DD format"
	}
	return ""
}

// normalizeScore stores scores in plain decimal form; an empty value
// counts as 0.
func normalizeScore(value string) string {
	return model.FormatScore(model.ParseScore(value))
}

// canonicalFields maps JSON payload keys onto stored column names,
// dropping keys that are not part of the schema.
func canonicalFields(payload map[string]string) map[string]string {
	fields := make(map[string]string, len(payload))
	for key, value := range payload {
		column, ok := model.CanonicalColumn(key)
		if !ok {
			continue
		}
		fields[column] = value
	}
	return fields
}

func filterStudents(records []model.Student, name, course, gender string) []model.Student {
	if name == "" && course == "" && gender == "" {
		return records
	}
	out := make([]model.Student, 0, len(records))
	for _, rec := range records {
		if name != "" && !strings.Contains(strings.ToLower(rec.Name), strings.ToLower(name)) {
			continue
		}
		if course != "" && !strings.EqualFold(rec.Course, course) {
			continue
		}
		if gender != "" && rec.Gender != gender {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func sortStudents(records []model.Student, sortBy string, desc bool) {
	less := func(a, b model.Student) bool {
		switch sortBy {
		case "roll":
			return a.Roll < b.Roll
		case "course":
			return strings.ToLower(a.Course) < strings.ToLower(b.Course)
		case "grade":
			return a.Grade < b.Grade
		case "marks":
			return model.ParseScore(a.Marks) < model.ParseScore(b.Marks)
		case "attendance":
			return model.ParseScore(a.Attendance) < model.ParseScore(b.Attendance)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}
