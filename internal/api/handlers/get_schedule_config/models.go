package get_schedule_config

import (
	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

// OptionResponse раздел каталога
type OptionResponse struct {
	Key           string   `json:"key"`
	Group         int      `json:"group"`
	AllowedLevels []string `json:"allowedLevels"`
}

// ScheduleConfigResponse HTTP response model
type ScheduleConfigResponse struct {
	Timezone           string           `json:"timezone"`
	Weekdays           []string         `json:"weekdays"`
	TimeSlots          []string         `json:"timeSlots"`
	BookingHorizonDays int              `json:"bookingHorizonDays"`
	AdminHorizonDays   int              `json:"adminHorizonDays"`
	Options            []OptionResponse `json:"options"`
}

// FromDomain собирает ответ из расписания и каталога разделов
func FromDomain(schedule domain.Schedule, catalog []domain.OptionDefinition) *ScheduleConfigResponse {
	weekdays := make([]string, 0, len(schedule.Weekdays))
	for _, wd := range schedule.Weekdays {
		weekdays = append(weekdays, wd.String())
	}

	slots := make([]string, 0, len(schedule.TimeSlots))
	for _, ts := range schedule.TimeSlots {
		slots = append(slots, ts.String())
	}

	options := make([]OptionResponse, 0, len(catalog))
	for _, def := range catalog {
		levels := make([]string, 0, len(def.AllowedLevels))
		for _, l := range def.AllowedLevels {
			levels = append(levels, l.String())
		}
		options = append(options, OptionResponse{
			Key:           string(def.Key),
			Group:         def.Group,
			AllowedLevels: levels,
		})
	}

	return &ScheduleConfigResponse{
		Timezone:           schedule.Loc().String(),
		Weekdays:           weekdays,
		TimeSlots:          slots,
		BookingHorizonDays: schedule.BookingHorizonDays,
		AdminHorizonDays:   schedule.AdminHorizonDays,
		Options:            options,
	}
}
