package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalHours(t *testing.T) {
	tests := []struct {
		name      string
		durations []int64
		want      float64
	}{
		{"empty", nil, 0},
		{"hour and a half", []int64{3600, 1800}, 1.5},
		{"rounds to two decimals", []int64{100}, 0.03},
		{"half rounds up", []int64{18}, 0.01}, // 0.005h
		{"half rounds up past one hour", []int64{3618}, 1.01},
		{"half rounds up small", []int64{522}, 0.15},
		{"just under half", []int64{3617}, 1},
		{"negative half rounds away from zero", []int64{-18}, -0.01},
		{"negative kept", []int64{3600, -1800}, 0.5},
		{"full week", []int64{8 * 3600, 8 * 3600, 8 * 3600, 8 * 3600, 7*3600 + 1234}, 39.34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make([]*TimeEntry, 0, len(tt.durations))
			for _, d := range tt.durations {
				entries = append(entries, &TimeEntry{Duration: d})
			}
			assert.Equal(t, tt.want, ComputeTotalHours(entries))
		})
	}
}

func TestSecondsToHours_HalfwayValuesRoundUp(t *testing.T) {
	// 36k+18 seconds is exactly k.5 hundredths of an hour.
	for k := int64(0); k < 2000; k++ {
		seconds := 36*k + 18
		want := float64(k+1) / 100
		if got := SecondsToHours(seconds); got != want {
			t.Fatalf("SecondsToHours(%d) = %v, want %v", seconds, got, want)
		}
	}
}
