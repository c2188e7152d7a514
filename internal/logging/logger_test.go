package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatDuration covers the seconds, minutes, and hours ranges.
func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "0s"},
		{name: "seconds only", seconds: 45, want: "45s"},
		{name: "exactly one minute", seconds: 60, want: "1m 0s"},
		{name: "minutes and seconds", seconds: 90, want: "1m 30s"},
		{name: "just under an hour", seconds: 3599, want: "59m 59s"},
		{name: "exactly one hour", seconds: 3600, want: "1h 0m 0s"},
		{name: "hours minutes seconds", seconds: 3661, want: "1h 1m 1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}
