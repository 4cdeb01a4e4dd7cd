package domain

import (
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// Schedule правила расписания: дни недели, слоты, горизонты и часовой пояс.
// Горизонт записи и горизонт админки независимы.
type Schedule struct {
	Weekdays           []time.Weekday
	TimeSlots          []types.TimeString
	BookingHorizonDays int
	AdminHorizonDays   int
	Location           *time.Location
}

// DefaultSchedule расписание по умолчанию в указанном часовом поясе
func DefaultSchedule(loc *time.Location) Schedule {
	slots := make([]types.TimeString, len(DefaultTimeSlots))
	for i, s := range DefaultTimeSlots {
		slots[i] = types.TimeString(s)
	}

	weekdays := make([]time.Weekday, len(DefaultWeekdays))
	copy(weekdays, DefaultWeekdays)

	return Schedule{
		Weekdays:           weekdays,
		TimeSlots:          slots,
		BookingHorizonDays: DefaultBookingHorizonDays,
		AdminHorizonDays:   DefaultAdminHorizonDays,
		Location:           loc,
	}
}

// IsEligibleWeekday возвращает true, если в этот день недели проводятся тренинги
func (s Schedule) IsEligibleWeekday(d types.Date) bool {
	wd := d.Weekday()
	for _, w := range s.Weekdays {
		if w == wd {
			return true
		}
	}
	return false
}

// HasSlot возвращает true, если ts входит в список ежедневных слотов
func (s Schedule) HasSlot(ts types.TimeString) bool {
	for _, slot := range s.TimeSlots {
		if slot == ts {
			return true
		}
	}
	return false
}

// Slots возвращает копию списка слотов
func (s Schedule) Slots() []types.TimeString {
	out := make([]types.TimeString, len(s.TimeSlots))
	copy(out, s.TimeSlots)
	return out
}

// Today текущий календарный день в часовом поясе расписания
func (s Schedule) Today(now time.Time) types.Date {
	if s.Location != nil {
		now = now.In(s.Location)
	}
	return types.NewDate(now)
}

// Loc часовой пояс расписания (UTC, если не задан)
func (s Schedule) Loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
