package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid evening", input: "23:59"},
		{name: "valid midnight", input: "00:00"},
		{name: "invalid hour", input: "24:00", wantErr: true},
		{name: "invalid minutes", input: "10:60", wantErr: true},
		{name: "missing leading zero accepted by layout", input: "9:00", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		minutes int
		want    string
		wantErr bool
	}{
		{name: "simple add", start: "10:00", minutes: 30, want: "10:30"},
		{name: "hour rollover", start: "10:45", minutes: 30, want: "11:15"},
		{name: "last minute of day", start: "23:29", minutes: 30, want: "23:59"},
		{name: "crosses midnight", start: "23:30", minutes: 30, wantErr: true},
		{name: "far over midnight", start: "20:00", minutes: 600, wantErr: true},
		{name: "negative below zero", start: "00:10", minutes: -20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.start)
			require.NoError(t, err)

			got, err := ts.AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTimeOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	early := TimeString("09:00")
	late := TimeString("17:30")

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsBefore(early))
	assert.False(t, early.IsAfter(early))
}

func TestTimeString_OnDate(t *testing.T) {
	ts := TimeString("14:30")
	date := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	instant, err := ts.OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 3, 14, 30, 0, 0, time.UTC), instant)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30"))
	assert.Equal(t, "10:30", ts.String())

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
