package service_test

import (
	"testing"

	"booknet-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	tests := []struct {
		name  string
		notes []float64
		want  float64
	}{
		{"no feedback", nil, 0.0},
		{"empty slice", []float64{}, 0.0},
		{"single note", []float64{3.0}, 3.0},
		{"mean of three", []float64{4.0, 5.0, 3.0}, 4.0},
		{"rounds half up", []float64{4.0, 4.5}, 4.3}, // mean 4.25
		{"rounds down below half", []float64{4.0, 4.08}, 4.0},
		{"max notes", []float64{5.0, 5.0}, 5.0},
		{"zero notes", []float64{0.0, 0.0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, service.Rate(tt.notes), 1e-9)
		})
	}
}
