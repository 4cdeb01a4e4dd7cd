package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate возвращается при некорректной календарной дате
var ErrInvalidDate = errors.New("types: invalid date, expected YYYY-MM-DD")

// DateLayout формат календарной даты
const DateLayout = "2006-01-02"

// Date календарный день без времени и часового пояса.
// Нулевое значение означает отсутствие даты. Значение сравнимо через ==
// и может использоваться как ключ map.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate возвращает календарный день момента t в его собственном часовом поясе
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// DateOf собирает дату из компонентов. Переполнения нормализуются (31 апреля -> 1 мая)
func DateOf(year int, month time.Month, day int) Date {
	return NewDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate парсит строку YYYY-MM-DD. Несуществующие даты (2025-02-30) отклоняются
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t), nil
}

// Year год
func (d Date) Year() int { return d.year }

// Month месяц
func (d Date) Month() time.Month { return d.month }

// Day день месяца
func (d Date) Day() int { return d.day }

// IsZero возвращает true, если дата не задана
func (d Date) IsZero() bool {
	return d == Date{}
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Weekday день недели
func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

// AddDays сдвигает дату на n календарных дней
func (d Date) AddDays(n int) Date {
	return NewDate(d.utc().AddDate(0, 0, n))
}

// Before возвращает true, если d раньше other
func (d Date) Before(other Date) bool {
	return d.utc().Before(other.utc())
}

// After возвращает true, если d позже other
func (d Date) After(other Date) bool {
	return d.utc().After(other.utc())
}

// DaysUntil количество календарных дней от d до other (отрицательное, если other раньше)
func (d Date) DaysUntil(other Date) int {
	return int(other.utc().Sub(d.utc()).Hours() / 24)
}

// At возвращает момент времени ts в день d в часовом поясе loc
func (d Date) At(ts TimeString, loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, ts.Hour(), ts.Minute(), 0, 0, loc)
}

// Start начало дня d в часовом поясе loc
func (d Date) Start(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Date) utc() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Value реализует driver.Valuer (колонка DATE)
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan реализует sql.Scanner. lib/pq отдает DATE как time.Time в UTC
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		if len(v) > len(DateLayout) {
			v = v[:len(DateLayout)]
		}
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("types: cannot scan %T into Date", src)
	}
}

// MarshalJSON кодирует дату строкой YYYY-MM-DD
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON декодирует строку YYYY-MM-DD
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
