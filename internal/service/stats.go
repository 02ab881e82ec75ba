package service

import (
	"math"

	"studentms/internal/model"
)

// Stats is the dashboard summary computed fresh from the current
// snapshot on every request.
type Stats struct {
	TotalStudents     int     `json:"totalStudents"`
	AverageMarks      float64 `json:"averageMarks"`
	AverageAttendance float64 `json:"averageAttendance"`
}

// Stats aggregates the whole table. An empty table yields zeros, and
// unparsable score values count as 0 in the averages.
func (s *StudentService) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return Stats{}, err
	}
	return computeStats(records), nil
}

func computeStats(records []model.Student) Stats {
	stats := Stats{TotalStudents: len(records)}
	if stats.TotalStudents == 0 {
		return stats
	}

	var marks, attendance float64
	for _, rec := range records {
		marks += model.ParseScore(rec.Marks)
		attendance += model.ParseScore(rec.Attendance)
	}
	count := float64(stats.TotalStudents)
	stats.AverageMarks = round2(marks / count)
	stats.AverageAttendance = round2(attendance / count)
	return stats
}

// round2 keeps the averages at two decimal places, like the dashboard
// shows them.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
