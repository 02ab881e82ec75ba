package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateGrade(t *testing.T) {
	tests := []struct {
		name  string
		marks string
		want  string
	}{
		{"Exact A boundary", "90", "A"},
		{"Just below A", "89.999", "B"},
		{"Exact B boundary", "75", "B"},
		{"Just below B", "74.999", "C"},
		{"Exact C boundary", "60", "C"},
		{"Just below C", "59.999", "D"},
		{"Exact D boundary", "40", "D"},
		{"Just below D", "39.999", "F"},
		{"Top marks", "100", "A"},
		{"Zero", "0", "F"},
		{"Not a number", "not a number", "F"},
		{"NaN", "NaN", "F"},
		{"Empty", "", "F"},
		{"Whitespace padded", " 95 ", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateGrade(tt.marks))
		})
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"Integer", "95", 95},
		{"Decimal", "72.5", 72.5},
		{"Padded", "  80 ", 80},
		{"Empty", "", 0},
		{"Garbage", "ninety", 0},
		{"NaN", "NaN", 0},
		{"Infinity", "Inf", 0},
		{"Negative infinity", "-Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScore(tt.in))
		})
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "95", FormatScore(95))
	assert.Equal(t, "72.5", FormatScore(72.5))
	assert.Equal(t, "0", FormatScore(0))
}
