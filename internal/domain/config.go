package domain

import "time"

// BookingConfig represents the booking configuration for a business
// Supports hierarchical configuration:
// 1. Barber-specific (business_id, barber_id)
// 2. Business-wide (business_id, NULL)
type BookingConfig struct {
	ID                  int64
	BusinessID          int64
	BarberID            *int64 // NULL = config for all barbers
	SlotIntervalMinutes int
	BufferMinutes       int
	AdvanceBookingDays  int // 0 = unlimited
	MinNoticeMinutes    int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsBusinessWide returns true if this configuration applies to all barbers
func (c *BookingConfig) IsBusinessWide() bool {
	return c.BarberID == nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance appointments can be made
func (c *BookingConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultBookingConfig возвращает конфигурацию с дефолтными значениями
// Используется, когда бизнес не настроил собственные параметры бронирования
func DefaultBookingConfig() *BookingConfig {
	return &BookingConfig{
		SlotIntervalMinutes: DefaultSlotIntervalMinutes,
		BufferMinutes:       DefaultBufferMinutes,
		AdvanceBookingDays:  DefaultAdvanceBookingDays,
		MinNoticeMinutes:    DefaultMinNoticeMinutes,
	}
}
