package ride

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFarePerPerson(t *testing.T) {
	tests := []struct {
		name      string
		totalFare int
		seats     int
		want      int
	}{
		{"splits evenly across seats plus host", 600, 2, 200},
		{"two-way split", 600, 1, 300},
		{"rounds up, not down", 601, 2, 201},
		{"max seats", 100, 4, 20},
		{"large fare with remainder", 1000, 3, 250},
		{"remainder forces ceiling", 1001, 3, 251},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FarePerPerson(tt.totalFare, tt.seats))
		})
	}
}

func TestSavings(t *testing.T) {
	assert.Equal(t, 400, Savings(600, 2))
	assert.Equal(t, 300, Savings(600, 1))
	assert.Equal(t, 400, Savings(601, 2))
}
