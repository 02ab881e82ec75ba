package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentms/internal/model"
	"studentms/internal/service"
)

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportCSVAddsRows(t *testing.T) {
	students := newTestService()
	imports := service.NewImportService(students)
	path := writeImportFile(t, "batch.csv",
		"Name,Roll,Course,Marks,Attendance\n"+
			"Alice,S100,Physics,95,92\n"+
			"Bob,S101,Chemistry,61.5,78\n")

	require.NoError(t, imports.ImportCSV(path))

	records, err := students.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].Name)
	assert.Equal(t, "A", records[0].Grade)
	assert.Equal(t, "C", records[1].Grade)

	progress := imports.FileProgress("batch.csv")
	require.NotNil(t, progress)
	assert.Equal(t, service.StatusCompleted, progress.Status)
	assert.Equal(t, 2, progress.TotalRecords)
	assert.Equal(t, 2, progress.Processed)
	assert.Equal(t, 2, progress.Imported)
	assert.Equal(t, 0, progress.Skipped)
	assert.False(t, progress.EndTime.IsZero())
}

func TestImportCSVSkipsExistingRolls(t *testing.T) {
	students := newTestService()
	_, err := students.Add(model.Student{Name: "Alice", Roll: "S100", Marks: "95"})
	require.NoError(t, err)

	imports := service.NewImportService(students)
	path := writeImportFile(t, "batch.csv",
		"Name,Roll,Marks\n"+
			"Impostor,S100,10\n"+
			"Bob,S101,80\n")

	require.NoError(t, imports.ImportCSV(path))

	records, err := students.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].Name)
	assert.Equal(t, "95", records[0].Marks)

	progress := imports.FileProgress("batch.csv")
	require.NotNil(t, progress)
	assert.Equal(t, 1, progress.Imported)
	assert.Equal(t, 1, progress.Skipped)
}

func TestImportCSVMapsColumnsByHeader(t *testing.T) {
	students := newTestService()
	imports := service.NewImportService(students)
	path := writeImportFile(t, "batch.csv",
		"Roll,Nickname,Marks,Name\n"+
			"S100,Al,95,Alice\n")

	require.NoError(t, imports.ImportCSV(path))

	found, err := students.Search("S100")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, "95", found.Marks)
	assert.Equal(t, "A", found.Grade)
	assert.Equal(t, "", found.Course)
}

func TestImportCSVSkipsMalformedRows(t *testing.T) {
	students := newTestService()
	imports := service.NewImportService(students)
	path := writeImportFile(t, "batch.csv",
		"Name,Roll\n"+
			"Alice,S100\n"+
			"Bob \"B\",S101\n"+
			"Carol,S102\n")

	require.NoError(t, imports.ImportCSV(path))

	records, err := students.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "S100", records[0].Roll)
	assert.Equal(t, "S102", records[1].Roll)

	progress := imports.FileProgress("batch.csv")
	require.NotNil(t, progress)
	assert.Equal(t, service.StatusCompleted, progress.Status)
	assert.Equal(t, 2, progress.TotalRecords)
	assert.Equal(t, 2, progress.Imported)
	assert.Equal(t, 0, progress.Skipped)
}

func TestImportCSVMissingFile(t *testing.T) {
	imports := service.NewImportService(newTestService())
	path := filepath.Join(t.TempDir(), "nope.csv")

	err := imports.ImportCSV(path)

	require.Error(t, err)
	progress := imports.FileProgress("nope.csv")
	require.NotNil(t, progress)
	assert.Equal(t, service.StatusError, progress.Status)
	assert.NotEmpty(t, progress.Error)
}

func TestImportCSVEmptyFile(t *testing.T) {
	students := newTestService()
	imports := service.NewImportService(students)
	path := writeImportFile(t, "empty.csv", "")

	require.NoError(t, imports.ImportCSV(path))

	records, err := students.List()
	require.NoError(t, err)
	assert.Empty(t, records)

	progress := imports.FileProgress("empty.csv")
	require.NotNil(t, progress)
	assert.Equal(t, service.StatusCompleted, progress.Status)
	assert.Equal(t, 0, progress.TotalRecords)
}

func TestProgressListenerReceivesUpdates(t *testing.T) {
	students := newTestService()
	imports := service.NewImportService(students)

	updates := make(chan service.ProgressInfo, 32)
	imports.RegisterProgressListener(updates)
	defer imports.UnregisterProgressListener(updates)

	path := writeImportFile(t, "batch.csv", "Name,Roll\nAlice,S100\n")
	require.NoError(t, imports.ImportCSV(path))

	var statuses []string
	for {
		select {
		case progress := <-updates:
			statuses = append(statuses, progress.Status)
			continue
		default:
		}
		break
	}
	require.NotEmpty(t, statuses)
	assert.Equal(t, service.StatusProcessing, statuses[0])
	assert.Equal(t, service.StatusCompleted, statuses[len(statuses)-1])
}

func TestFileProgressUnknownFile(t *testing.T) {
	imports := service.NewImportService(newTestService())

	assert.Nil(t, imports.FileProgress("unknown.csv"))
	assert.Empty(t, imports.AllProgress())
}
