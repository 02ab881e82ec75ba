package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"studentms/internal/model"
	"studentms/internal/service"
	"studentms/internal/store"
)

// ExportHandler serves the whole table as file downloads.
type ExportHandler struct {
	studentService *service.StudentService
}

func NewExportHandler(studentService *service.StudentService) *ExportHandler {
	return &ExportHandler{studentService: studentService}
}

// ExportCSV streams the table as a CSV attachment, in exactly the
// format the csv store writes.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, err := h.studentService.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=students.csv")
	if err := store.WriteTable(w, records); err != nil {
		log.Println("Error writing CSV export:", err)
	}
}

// ExportExcel builds an xlsx workbook with the header row and one row
// per student.
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	records, err := h.studentService.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	sheet := "Students"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		http.Error(w, "Failed to build Excel file", http.StatusInternalServerError)
		return
	}

	for i, column := range model.Columns() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, column)
	}
	for i, rec := range records {
		for j, value := range rec.Values() {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	fileName := fmt.Sprintf("students_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(w); err != nil {
		log.Println("Error writing Excel export:", err)
	}
}
