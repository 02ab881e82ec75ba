package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// StatsResponse matches the server's /stats JSON
type StatsResponse struct {
	TotalStudents     int     `json:"totalStudents"`
	AverageMarks      float64 `json:"averageMarks"`
	AverageAttendance float64 `json:"averageAttendance"`
}

// statsCmd shows the dashboard aggregates
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show table-wide statistics",
	Long: `Show the number of students and the average marks and attendance
across the whole table.

Examples:
  studentctl stats`,
	RunE: runStats,
}

// exportCmd downloads the table as a file
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Download the student table",
	Long: `Download the whole table as a CSV or Excel file. Without a file
argument the CSV goes to stdout.

Examples:
  # Print the CSV
  studentctl export

  # Save as a file
  studentctl export students.csv

  # Excel workbook
  studentctl export report.xlsx --format xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "csv", "export format: csv or xlsx")
}

func runStats(cmd *cobra.Command, args []string) error {
	resp, err := apiRequest("GET", "/stats", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var stats StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Total Students:     %d\n", stats.TotalStudents)
	fmt.Printf("Average Marks:      %.2f\n", stats.AverageMarks)
	fmt.Printf("Average Attendance: %.2f\n", stats.AverageAttendance)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	var path string
	switch format {
	case "csv":
		path = "/export"
	case "xlsx":
		path = "/export/xlsx"
	default:
		return fmt.Errorf("unknown format %q, want csv or xlsx", format)
	}

	resp, err := apiRequest("GET", path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out := os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", args[0], err)
		}
		defer f.Close()
		out = f
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if len(args) == 1 {
		fmt.Fprintf(os.Stderr, "Saved export to %s\n", args[0])
	}
	return nil
}
