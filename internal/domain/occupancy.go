package domain

import (
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// OccupiedDays множество календарных дней, на которые уже есть запись.
// Занятость считается на весь день, время слота не учитывается.
// Записи с нераспознанным временем пропускаются, для каждой вызывается skip (если задан).
func OccupiedDays(records []BookingRecord, loc *time.Location, skip func(BookingRecord, error)) map[types.Date]struct{} {
	days := make(map[types.Date]struct{}, len(records))
	for _, rec := range records {
		day, err := ExtractScheduledDay(rec.ScheduledAt, loc)
		if err != nil {
			if skip != nil {
				skip(rec, err)
			}
			continue
		}
		days[day] = struct{}{}
	}
	return days
}

// BlockedSet множество заблокированных дней
func BlockedSet(blocked []*BlockedDate) map[types.Date]*BlockedDate {
	set := make(map[types.Date]*BlockedDate, len(blocked))
	for _, bd := range blocked {
		if bd != nil {
			set[bd.Date] = bd
		}
	}
	return set
}
