package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeDelta_Shift(t *testing.T) {
	midnight := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		delta TimeDelta
		want  time.Time
	}{
		{
			name:  "zero delta is a no-op",
			delta: TimeDelta{},
			want:  midnight,
		},
		{
			name:  "day back plus twenty hours lands the evening before",
			delta: TimeDelta{Days: -1, Hours: 20},
			want:  midnight.Add(-4 * time.Hour),
		},
		{
			name:  "minutes only",
			delta: TimeDelta{Minutes: 15},
			want:  midnight.Add(15 * time.Minute),
		},
		{
			name:  "week before",
			delta: TimeDelta{Days: -7},
			want:  midnight.AddDate(0, 0, -7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.delta.Shift(midnight)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, midnight.Location(), got.Location())
		})
	}
}

func TestParseTimeDelta(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeDelta
		wantErr bool
	}{
		{name: "day before at 20:00", input: "-1d20h", want: TimeDelta{Days: -1, Hours: 20}},
		{name: "same day at 07:00", input: "7h", want: TimeDelta{Hours: 7}},
		{name: "thirty minutes", input: "30m", want: TimeDelta{Minutes: 30}},
		{name: "full form", input: "1d2h3m", want: TimeDelta{Days: 1, Hours: 2, Minutes: 3}},
		{name: "explicit signs", input: "-7d+30m", want: TimeDelta{Days: -7, Minutes: 30}},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "out of order", input: "20h-1d", wantErr: true},
		{name: "duplicate component", input: "1d2d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeDelta(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeDelta_RoundTrip(t *testing.T) {
	for _, in := range []string{"-1d20h", "7h", "30m", "-7d"} {
		d, err := ParseTimeDelta(in)
		require.NoError(t, err)
		again, err := ParseTimeDelta(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, again, "round-trip of %q", in)
	}
}
