package model_test

import (
	"testing"
	"time"
	"vista/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
	in := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		out  time.Time
		want int
	}{
		{name: "same day", out: time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC), want: 0},
		{name: "morning checkout", out: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), want: 1},
		{name: "across month", out: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), want: 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Nights(in, tt.out))
		})
	}
}
