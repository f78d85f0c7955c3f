package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 11, 3, hour, min, 0, 0, time.UTC)
}

func TestHasConflict(t *testing.T) {
	booked := []Occupied{
		{Start: at(10, 0), End: at(10, 30)},
	}

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		buffer time.Duration
		want   bool
	}{
		{
			name:  "exact overlap",
			start: at(10, 0), end: at(10, 30),
			want: true,
		},
		{
			name:  "partial overlap from left",
			start: at(9, 45), end: at(10, 15),
			want: true,
		},
		{
			name:  "partial overlap from right",
			start: at(10, 15), end: at(10, 45),
			want: true,
		},
		{
			name:  "candidate contains booking",
			start: at(9, 30), end: at(11, 0),
			want: true,
		},
		{
			name:  "touching before is not a conflict",
			start: at(9, 30), end: at(10, 0),
			want: false,
		},
		{
			name:  "touching after is not a conflict",
			start: at(10, 30), end: at(11, 0),
			want: false,
		},
		{
			name:  "buffer widens the booked window",
			start: at(10, 30), end: at(11, 0),
			buffer: 15 * time.Minute,
			want:   true,
		},
		{
			name:  "buffer boundary still half-open",
			start: at(10, 45), end: at(11, 15),
			buffer: 15 * time.Minute,
			want:   false,
		},
		{
			name:  "clearly apart",
			start: at(14, 0), end: at(14, 30),
			buffer: 15 * time.Minute,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasConflict(tt.start, tt.end, booked, tt.buffer)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasConflict_MultipleWindows(t *testing.T) {
	occupied := []Occupied{
		{Start: at(9, 0), End: at(9, 30)},
		{Start: at(12, 0), End: at(13, 0)},
		{Start: at(16, 0), End: at(16, 45)},
	}

	assert.True(t, HasConflict(at(12, 30), at(13, 0), occupied, 0))
	assert.False(t, HasConflict(at(10, 0), at(11, 0), occupied, 0))
}

func TestHasConflict_NoWindows(t *testing.T) {
	assert.False(t, HasConflict(at(10, 0), at(10, 30), nil, 15*time.Minute))
}
