package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "minutes and seconds", input: "PT4M13S", want: 253},
		{name: "hours minutes seconds", input: "PT1H2M3S", want: 3723},
		{name: "seconds only", input: "PT45S", want: 45},
		{name: "minutes only", input: "PT10M", want: 600},
		{name: "hours only", input: "PT2H", want: 7200},
		{name: "with days", input: "P1DT2H", want: 93600},
		{name: "fractional seconds", input: "PT0.5S", want: 0.5},
		{name: "zero", input: "PT0S", want: 0},
		{name: "empty", input: "", wantErr: true},
		{name: "bare P", input: "P", wantErr: true},
		{name: "bare PT", input: "PT", wantErr: true},
		{name: "not a duration", input: "4:13", wantErr: true},
		{name: "missing prefix", input: "T4M13S", wantErr: true},
		{name: "garbage units", input: "PT4X13Y", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISODuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedDuration))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		padded  bool
		want    string
	}{
		{name: "unpadded minutes", seconds: 253, padded: false, want: "4:13"},
		{name: "padded minutes", seconds: 253, padded: true, want: "04:13"},
		{name: "zero", seconds: 0, padded: false, want: "0:00"},
		{name: "seconds zero padded", seconds: 61, padded: false, want: "1:01"},
		{name: "over an hour stays minutes", seconds: 3723, padded: false, want: "62:03"},
		{name: "negative clamps to zero", seconds: -5, padded: false, want: "0:00"},
		{name: "fraction truncates", seconds: 59.9, padded: false, want: "0:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSeconds(tt.seconds, tt.padded))
		})
	}
}

func TestPercentWatched(t *testing.T) {
	tests := []struct {
		name  string
		avg   float64
		total float64
		want  float64
	}{
		{name: "half watched", avg: 30, total: 60, want: 50.0},
		{name: "rounds to one decimal", avg: 1, total: 3, want: 33.3},
		{name: "zero duration is safe", avg: 100, total: 0, want: 0.0},
		{name: "negative duration is safe", avg: 100, total: -1, want: 0.0},
		{name: "over 100 possible with loops", avg: 90, total: 60, want: 150.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentWatched(tt.avg, tt.total), 1e-9)
		})
	}
}
