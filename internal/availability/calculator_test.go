package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSlots_FullDayNoBookings(t *testing.T) {
	// 09:00-17:00, услуга 30 минут, шаг 30 минут, "сейчас" 15:04
	windowStart := at(9, 0)
	windowEnd := at(17, 0)
	now := at(15, 4)

	slots := CalculateSlots(windowStart, windowEnd, nil, 30*time.Minute, 15*time.Minute, 30*time.Minute, now)

	// Последний старт 16:30 - конец 17:00 ровно в закрытие
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Label)
	assert.Equal(t, "16:30", slots[15].Label)

	for _, s := range slots {
		if s.StartsAt.Before(now) {
			assert.False(t, s.Available, "past slot %s must be unavailable", s.Label)
		} else {
			assert.True(t, s.Available, "future slot %s must be available", s.Label)
		}
	}

	// 15:00 в прошлом, 15:30 и далее доступны
	assert.False(t, slots[12].Available)
	assert.Equal(t, "15:00", slots[12].Label)
	assert.True(t, slots[13].Available)
	assert.Equal(t, "15:30", slots[13].Label)
}

func TestCalculateSlots_BookingWithoutBuffer(t *testing.T) {
	// Запись 10:00-10:30 без буфера: граничащие слоты остаются доступными
	occupied := []Occupied{{Start: at(10, 0), End: at(10, 30)}}
	now := at(0, 0)

	slots := CalculateSlots(at(9, 0), at(12, 0), occupied, 30*time.Minute, 0, 30*time.Minute, now)

	byLabel := make(map[string]bool, len(slots))
	for _, s := range slots {
		byLabel[s.Label] = s.Available
	}

	assert.True(t, byLabel["09:30"])
	assert.False(t, byLabel["10:00"])
	assert.True(t, byLabel["10:30"])
}

func TestCalculateSlots_BookingWithBuffer(t *testing.T) {
	// Запись 10:00-10:30 с буфером 15 минут расширяется до [09:45, 10:45)
	occupied := []Occupied{{Start: at(10, 0), End: at(10, 30)}}
	now := at(0, 0)

	slots := CalculateSlots(at(9, 0), at(12, 0), occupied, 30*time.Minute, 15*time.Minute, 30*time.Minute, now)

	byLabel := make(map[string]bool, len(slots))
	for _, s := range slots {
		byLabel[s.Label] = s.Available
	}

	assert.True(t, byLabel["09:00"])  // [09:00, 09:30) не задевает [09:45, 10:45)
	assert.False(t, byLabel["09:30"]) // [09:30, 10:00) пересекает буфер
	assert.False(t, byLabel["10:00"])
	assert.False(t, byLabel["10:30"])
	assert.True(t, byLabel["11:00"])
}

func TestCalculateSlots_PastConflictingSlotStillEmitted(t *testing.T) {
	occupied := []Occupied{{Start: at(9, 0), End: at(9, 30)}}
	now := at(18, 0) // весь день в прошлом

	slots := CalculateSlots(at(9, 0), at(10, 0), occupied, 30*time.Minute, 0, 30*time.Minute, now)

	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].Label)
	assert.False(t, slots[0].Available)
	assert.False(t, slots[1].Available)
}

func TestCalculateSlots_DurationExceedsWindow(t *testing.T) {
	slots := CalculateSlots(at(9, 0), at(10, 0), nil, 90*time.Minute, 0, 30*time.Minute, at(0, 0))
	assert.Empty(t, slots)
}

func TestCalculateSlots_StopsWhenSlotEndPassesClose(t *testing.T) {
	// Услуга 45 минут: 09:00 помещается (конец 09:45), 09:30 уже нет (конец 10:15)
	slots := CalculateSlots(at(9, 0), at(10, 0), nil, 45*time.Minute, 0, 30*time.Minute, at(0, 0))

	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].Label)
}

func TestCalculateSlots_InvalidInputs(t *testing.T) {
	assert.Empty(t, CalculateSlots(at(9, 0), at(17, 0), nil, 0, 0, 30*time.Minute, at(0, 0)))
	assert.Empty(t, CalculateSlots(at(9, 0), at(17, 0), nil, 30*time.Minute, 0, 0, at(0, 0)))
	assert.Empty(t, CalculateSlots(at(17, 0), at(9, 0), nil, 30*time.Minute, 0, 30*time.Minute, at(0, 0)))
}

func TestCalculateSlots_AscendingOrder(t *testing.T) {
	slots := CalculateSlots(at(9, 0), at(17, 0), nil, 30*time.Minute, 0, 15*time.Minute, at(0, 0))

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].StartsAt.After(slots[i-1].StartsAt))
	}
}

func TestCalculateSlots_NoAvailableSlotOverlapsBufferedBooking(t *testing.T) {
	occupied := []Occupied{
		{Start: at(10, 0), End: at(11, 0)},
		{Start: at(14, 30), End: at(15, 0)},
	}
	buffer := 10 * time.Minute
	duration := 30 * time.Minute

	slots := CalculateSlots(at(9, 0), at(17, 0), occupied, duration, buffer, 15*time.Minute, at(0, 0))

	for _, s := range slots {
		if s.Available {
			assert.False(t, HasConflict(s.StartsAt, s.StartsAt.Add(duration), occupied, buffer),
				"available slot %s overlaps a buffered booking", s.Label)
		}
	}
}
