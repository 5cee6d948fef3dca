package service

import "math"

// Rate computes the displayed rating for a set of feedback notes: the
// arithmetic mean rounded half-up to one decimal place. A book with no
// feedback rates 0.0, never an error.
func Rate(notes []float64) float64 {
	if len(notes) == 0 {
		return 0.0
	}
	var sum float64
	for _, n := range notes {
		sum += n
	}
	mean := sum / float64(len(notes))
	return math.Round(mean*10) / 10
}
