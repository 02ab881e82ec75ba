package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentms/internal/model"
)

func TestStatsEmptyTable(t *testing.T) {
	svc := newTestService()

	stats, err := svc.Stats()

	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalStudents)
	assert.Equal(t, 0.0, stats.AverageMarks)
	assert.Equal(t, 0.0, stats.AverageAttendance)
}

func TestStatsAverages(t *testing.T) {
	svc := newTestService()
	_, err := svc.Add(model.Student{Roll: "S100", Marks: "95", Attendance: "92"})
	require.NoError(t, err)
	_, err = svc.Add(model.Student{Roll: "S101", Marks: "61.5", Attendance: "78"})
	require.NoError(t, err)

	stats, err := svc.Stats()

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 78.25, stats.AverageMarks)
	assert.Equal(t, 85.0, stats.AverageAttendance)
}

func TestStatsRoundsToTwoDecimals(t *testing.T) {
	svc := newTestService()
	for _, rec := range []model.Student{
		{Roll: "S100", Marks: "100"},
		{Roll: "S101", Marks: "0"},
		{Roll: "S102", Marks: "0"},
	} {
		_, err := svc.Add(rec)
		require.NoError(t, err)
	}

	stats, err := svc.Stats()

	require.NoError(t, err)
	assert.Equal(t, 33.33, stats.AverageMarks)
}

func TestStatsUnparsableScoresCountAsZero(t *testing.T) {
	svc := newTestService()
	_, err := svc.Add(model.Student{Roll: "S100", Marks: "fifty", Attendance: ""})
	require.NoError(t, err)
	_, err = svc.Add(model.Student{Roll: "S101", Marks: "50", Attendance: "80"})
	require.NoError(t, err)

	stats, err := svc.Stats()

	require.NoError(t, err)
	assert.Equal(t, 25.0, stats.AverageMarks)
	assert.Equal(t, 40.0, stats.AverageAttendance)
}

// Rows with NaN or infinite scores can arrive through bulk import or a
// hand-edited table; the averages must stay finite numbers.
func TestStatsNonFiniteScoresCountAsZero(t *testing.T) {
	svc := newTestService()
	_, err := svc.Add(model.Student{Roll: "S100", Marks: "NaN", Attendance: "Inf"})
	require.NoError(t, err)
	_, err = svc.Add(model.Student{Roll: "S101", Marks: "50", Attendance: "80"})
	require.NoError(t, err)

	stats, err := svc.Stats()

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 25.0, stats.AverageMarks)
	assert.Equal(t, 40.0, stats.AverageAttendance)
}
