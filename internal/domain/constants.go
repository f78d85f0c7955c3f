package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
	DefaultBufferMinutes       = 0
	DefaultAdvanceBookingDays  = 0 // 0 = unlimited
	DefaultMinNoticeMinutes    = 0
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 240 // 4 hours
	MinBufferMinutes       = 0
	MaxBufferMinutes       = 120
	MinAdvanceBookingDays  = 0
	MaxAdvanceBookingDays  = 365 // 1 year
	MinNoticeMinutesLow    = 0
	MaxNoticeMinutes       = 10080 // 1 week
	MaxNotesLength         = 500
	MaxCancelReasonLength  = 500
	MaxPromoLabelLength    = 120
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих временное окно
// Используется для фильтрации при расчёте доступных слотов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledByBusiness,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
