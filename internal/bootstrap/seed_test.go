package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosterEmail(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Aditya Kulkarni", "aditya.kulkarni@seed.rideconnect"},
		{"  Sneha Patil  ", "sneha.patil@seed.rideconnect"},
		{"Dr. A. P. Rao", "dr.a.p.rao@seed.rideconnect"},
		{"Priya", "priya@seed.rideconnect"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, posterEmail(tt.name))
	}
}
