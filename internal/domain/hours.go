package domain

import "math"

// ComputeTotalHours sums entry durations and converts them to hours rounded to
// two decimals. Every total shown or stored goes through this function.
func ComputeTotalHours(entries []*TimeEntry) float64 {
	var total int64
	for _, e := range entries {
		total += e.Duration
	}
	return SecondsToHours(total)
}

// SecondsToHours converts seconds to hours rounded half away from zero to two
// decimals. One hundredth of an hour is 36 seconds, so the division by 36 is
// the only inexact step and a half-way value lands exactly on .5.
func SecondsToHours(seconds int64) float64 {
	return math.Round(float64(seconds)/36) / 100
}
