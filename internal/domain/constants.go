package domain

import "time"

// Значения расписания по умолчанию
const (
	DefaultTimezone           = "America/Sao_Paulo"
	DefaultBookingHorizonDays = 30
	DefaultAdminHorizonDays   = 60
	DefaultInviteDuration     = 2 * time.Hour
)

// DefaultWeekdays дни недели, в которые проводятся тренинги
var DefaultWeekdays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}

// DefaultTimeSlots ежедневные слоты начала тренинга
var DefaultTimeSlots = []string{"10:00", "14:00"}

// Ограничения бизнес-валидации
const (
	MaxHorizonDays       = 366
	MinPhoneDigits       = 8
	MaxPhoneDigits       = 14
	MaxParticipants      = 50
	MaxCompanyLength     = 200
	MaxNameLength        = 200
	MaxBlockReasonLength = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	// LegacyDateTimeFormat формат dd/mm/yyyy hh:mm старых записей
	LegacyDateTimeFormat = "02/01/2006 15:04"
)

// Причины отказа в записи на дату
const (
	ReasonBlocked  = "blocked"
	ReasonOccupied = "occupied"
)
