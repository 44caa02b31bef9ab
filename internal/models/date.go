package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout формат календарной даты в wire-протоколе и в базе.
const DateLayout = "2006-01-02"

// Date представляет календарную дату без времени.
// В JSON сериализуется как строка "YYYY-MM-DD", в базе хранится в колонке DATE.
type Date struct {
	time.Time
}

// NewDate создаёт дату из года, месяца и дня.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today возвращает сегодняшнюю календарную дату (UTC).
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate разбирает строку "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("некорректный формат даты %q, ожидается YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

// String возвращает дату в формате YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

// Before сравнивает календарные даты.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After сравнивает календарные даты.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// MarshalJSON сериализует дату как "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON разбирает дату из "YYYY-MM-DD".
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer для записи в базу.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan реализует sql.Scanner: драйвер возвращает DATE как time.Time.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("date: неподдерживаемый тип %T", src)
	}
}
