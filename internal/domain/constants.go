package domain

// Default configuration values
const (
	DefaultStepMinutes          = 15
	DefaultHoldTTLMinutes       = 10
	DefaultHorizonDays          = 15
	DefaultUnpaidRetentionHours = 24
	DefaultBufferMinutes        = 0
)

// Business validation constants
const (
	MinStepMinutes          = 5
	MaxStepMinutes          = 120
	MinScheduledMinutes     = 15
	MaxScheduledMinutes     = 480 // 8 hours
	MinHoldTTLMinutes       = 1
	MaxHoldTTLMinutes       = 60
	MinHorizonDays          = 1
	MaxHorizonDays          = 90
	MaxNotesLength          = 500
	MaxContactHandleLength  = 100
	MinutesPerDay           = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
