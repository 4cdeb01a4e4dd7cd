package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

const timeStringLayout = "15:04"

// TimeString время суток в формате HH:MM без даты и часового пояса
type TimeString string

// NewTimeString создает TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString парсит строку HH:MM (или HH:MM:SS, как отдает PostgreSQL)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") {
		s = s[:len(timeStringLayout)]
	}
	t, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление HH:MM
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero возвращает true для пустого значения
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет формат HH:MM
func (ts TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(ts))
	return err
}

// Hour возвращает часы (0 для некорректного значения)
func (ts TimeString) Hour() int {
	t, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return 0
	}
	return t.Hour()
}

// Minute возвращает минуты (0 для некорректного значения)
func (ts TimeString) Minute() int {
	t, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return 0
	}
	return t.Minute()
}

// Minutes возвращает количество минут от начала суток
func (ts TimeString) Minutes() int {
	return ts.Hour()*60 + ts.Minute()
}

// IsBefore сравнивает два значения времени
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}

// Value реализует driver.Valuer
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return string(ts), nil
}

// Scan реализует sql.Scanner
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case []byte:
		return ts.Scan(string(v))
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}
}

// UnmarshalJSON проверяет формат при декодировании
func (ts *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*ts = ""
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
