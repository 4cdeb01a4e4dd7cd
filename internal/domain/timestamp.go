package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

var (
	// ErrUnrecognizedTimestamp строка не похожа ни на ISO, ни на dd/mm/yyyy hh:mm
	ErrUnrecognizedTimestamp = errors.New("domain: unrecognized timestamp format")

	// ErrInvalidTimestamp формат распознан, но значение некорректно
	ErrInvalidTimestamp = errors.New("domain: invalid timestamp")
)

// isoLayouts форматы с разделителем T. Первый содержит зону, остальные читаются в loc
var isoLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ExtractScheduledDay извлекает календарный день из сохраненного времени записи.
//
// Строка с символом T разбирается как момент времени (RFC 3339, в том числе с
// долями секунды), день берется в часовом поясе loc. Строка с символом /
// разбирается как "dd/mm/yyyy hh:mm". Все остальное дает ErrUnrecognizedTimestamp.
func ExtractScheduledDay(raw string, loc *time.Location) (types.Date, error) {
	if loc == nil {
		loc = time.UTC
	}
	raw = strings.TrimSpace(raw)

	switch {
	case strings.Contains(raw, "T"):
		return extractISODay(raw, loc)
	case strings.Contains(raw, "/"):
		return extractLegacyDay(raw)
	default:
		return types.Date{}, fmt.Errorf("%w: %q", ErrUnrecognizedTimestamp, raw)
	}
}

func extractISODay(raw string, loc *time.Location) (types.Date, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return types.NewDate(t.In(loc)), nil
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return types.NewDate(t), nil
		}
	}
	return types.Date{}, fmt.Errorf("%w: %q is not an ISO instant", ErrInvalidTimestamp, raw)
}

func extractLegacyDay(raw string) (types.Date, error) {
	tokens := strings.Fields(raw)
	if len(tokens) < 2 {
		return types.Date{}, fmt.Errorf("%w: %q has no time part", ErrInvalidTimestamp, raw)
	}

	parts := strings.Split(tokens[0], "/")
	if len(parts) != 3 {
		return types.Date{}, fmt.Errorf("%w: %q is not dd/mm/yyyy", ErrInvalidTimestamp, raw)
	}

	day, errDay := strconv.Atoi(parts[0])
	month, errMonth := strconv.Atoi(parts[1])
	year, errYear := strconv.Atoi(parts[2])
	if errDay != nil || errMonth != nil || errYear != nil {
		return types.Date{}, fmt.Errorf("%w: %q is not dd/mm/yyyy", ErrInvalidTimestamp, raw)
	}

	// 31/04/2025 не должно превращаться в 1 мая
	d := types.DateOf(year, time.Month(month), day)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return types.Date{}, fmt.Errorf("%w: %q is not a real date", ErrInvalidTimestamp, raw)
	}
	return d, nil
}

// FormatScheduledAt каноническая запись времени тренинга (RFC 3339 с зоной)
func FormatScheduledAt(t time.Time) string {
	return t.Format(time.RFC3339)
}
