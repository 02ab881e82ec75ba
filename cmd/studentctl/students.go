package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

// Student matches the server's record JSON
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

// ListResponse matches the server's GET /students envelope
type ListResponse struct {
	Data       []Student `json:"data"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
}

// recordFlags are the writable columns every add/update flag maps to.
var recordFlags = []string{
	"name", "course", "gender", "dob", "email",
	"phone", "address", "subjects", "marks", "attendance",
}

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("course", "", "course name")
	cmd.Flags().String("gender", "", "Male, Female or Other")
	cmd.Flags().String("dob", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("address", "", "postal address")
	cmd.Flags().String("subjects", "", "subjects, free-form text")
	cmd.Flags().String("marks", "", "marks, 0-100")
	cmd.Flags().String("attendance", "", "attendance percent, 0-100")
}

// addCmd inserts one record
var addCmd = &cobra.Command{
	Use:   "add <roll>",
	Short: "Add a new student record",
	Long: `Add a new student record. The roll number must be unique and the
grade is computed by the server from the marks.

Examples:
  # Add a student
  studentctl add S100 --name "Alice Smith" --course Physics --marks 95

  # Add with full details
  studentctl add S101 --name "Bob Jones" --course Chemistry \
    --gender Male --dob 2000-11-30 --email bob@example.com --marks 61.5`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

// getCmd fetches one record by roll number
var getCmd = &cobra.Command{
	Use:   "get <roll>",
	Short: "Show one student record",
	Long: `Show the record with the given roll number. The roll must match
exactly as stored.

Examples:
  studentctl get S100`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// listCmd pages through the table
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List student records",
	Long: `List student records with optional filtering, sorting and paging.
Without sort flags the server keeps the stored insertion order.

Examples:
  # First page
  studentctl list

  # Physics students sorted by marks, best first
  studentctl list --course Physics --sort-by marks --sort-order desc`,
	RunE: runList,
}

// updateCmd merges changed flags into one record
var updateCmd = &cobra.Command{
	Use:   "update <roll>",
	Short: "Update fields of a student record",
	Long: `Update a student record. Only the flags you pass change; the rest
of the record stays as it is, and the grade follows the marks.

Examples:
  # Change only the marks
  studentctl update S100 --marks 50

  # Move a student to another course
  studentctl update S100 --course Biology`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

// deleteCmd removes one record
var deleteCmd = &cobra.Command{
	Use:   "delete <roll>",
	Short: "Delete a student record",
	Long: `Delete the record with the given roll number.

Examples:
  studentctl delete S100`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	addRecordFlags(addCmd)
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("course")

	addRecordFlags(updateCmd)

	listCmd.Flags().Int("page", 1, "page number")
	listCmd.Flags().Int("limit", 10, "records per page")
	listCmd.Flags().String("sort-by", "", "sort column: name, roll, course, marks, attendance, grade")
	listCmd.Flags().String("sort-order", "asc", "sort direction: asc or desc")
	listCmd.Flags().String("name", "", "filter by name substring")
	listCmd.Flags().String("course", "", "filter by course")
	listCmd.Flags().String("gender", "", "filter by gender")
}

func runAdd(cmd *cobra.Command, args []string) error {
	payload := map[string]string{"roll": args[0]}
	for _, flag := range recordFlags {
		value, _ := cmd.Flags().GetString(flag)
		if value != "" {
			payload[flag] = value
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := apiRequest("POST", "/students", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var created Student
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Added %s (roll %s), grade %s\n", created.Name, created.Roll, created.Grade)
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	resp, err := apiRequest("GET", "/students/"+url.PathEscape(args[0]), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var rec Student
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	printStudent(rec)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	query := url.Values{}
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	for flag, param := range map[string]string{
		"sort-by":    "sort_by",
		"sort-order": "sort_order",
		"name":       "name",
		"course":     "course",
		"gender":     "gender",
	} {
		if value, _ := cmd.Flags().GetString(flag); value != "" {
			query.Set(param, value)
		}
	}

	resp, err := apiRequest("GET", "/students?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var list ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if list.Total == 0 {
		fmt.Println("No students found")
		return nil
	}

	fmt.Printf("%-8s %-24s %-16s %8s %10s %6s\n", "ROLL", "NAME", "COURSE", "MARKS", "ATTENDANCE", "GRADE")
	for _, rec := range list.Data {
		fmt.Printf("%-8s %-24s %-16s %8s %10s %6s\n",
			rec.Roll, rec.Name, rec.Course, rec.Marks, rec.Attendance, rec.Grade)
	}
	fmt.Printf("\nPage %d of %d (%d students total)\n", list.Page, list.TotalPages, list.Total)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	payload := map[string]string{}
	for _, flag := range recordFlags {
		if cmd.Flags().Changed(flag) {
			value, _ := cmd.Flags().GetString(flag)
			payload[flag] = value
		}
	}
	if len(payload) == 0 {
		return fmt.Errorf("nothing to update, pass at least one field flag")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := apiRequest("PUT", "/students/"+url.PathEscape(args[0]), body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var updated Student
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Updated %s (roll %s), grade %s\n", updated.Name, updated.Roll, updated.Grade)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	resp, err := apiRequest("DELETE", "/students/"+url.PathEscape(args[0]), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()

	fmt.Printf("Deleted student with roll %s\n", args[0])
	return nil
}

func printStudent(rec Student) {
	fmt.Printf("Name:       %s\n", rec.Name)
	fmt.Printf("Roll:       %s\n", rec.Roll)
	fmt.Printf("Course:     %s\n", rec.Course)
	fmt.Printf("Gender:     %s\n", rec.Gender)
	fmt.Printf("DOB:        %s\n", rec.DOB)
	fmt.Printf("Email:      %s\n", rec.Email)
	fmt.Printf("Phone:      %s\n", rec.Phone)
	fmt.Printf("Address:    %s\n", rec.Address)
	fmt.Printf("Subjects:   %s\n", rec.Subjects)
	fmt.Printf("Attendance: %s\n", rec.Attendance)
	fmt.Printf("Marks:      %s\n", rec.Marks)
	fmt.Printf("Grade:      %s\n", rec.Grade)
}
