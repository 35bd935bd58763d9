package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Wire formats used by the flat-file collections. Due dates carry no time
// component; creation stamps carry minutes.
const (
	DateLayout     = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04"
)

// Date is a calendar date serialized as DD/MM/YYYY in JSON and stored as a
// DATE column in SQL. The embedded time is always midnight UTC.
type Date struct {
	time.Time
}

// NewDate constructs a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses the DD/MM/YYYY wire format.
func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected DD/MM/YYYY", value)
	}
	return Date{Time: parsed.UTC()}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// DaysSince returns the number of whole calendar days from other to d.
// Negative when d is earlier than other.
func (d Date) DaysSince(other Date) int {
	return int(d.Sub(other.Time) / (24 * time.Hour))
}

// AddDays returns the date n calendar days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.AddDate(0, 0, n))
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(value)
		return nil
	case []byte:
		return d.scanString(string(value))
	case string:
		return d.scanString(value)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(value string) error {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("cannot scan %q into Date", value)
	}
	*d = DateOf(parsed)
	return nil
}

// DateTime is a minute-precision timestamp serialized as DD/MM/YYYY HH:MM in
// JSON and stored as a TIMESTAMP column in SQL.
type DateTime struct {
	time.Time
}

// DateTimeOf truncates t to minute precision.
func DateTimeOf(t time.Time) DateTime {
	return DateTime{Time: t.UTC().Truncate(time.Minute)}
}

// ParseDateTime parses the DD/MM/YYYY HH:MM wire format.
func ParseDateTime(value string) (DateTime, error) {
	parsed, err := time.Parse(DateTimeLayout, strings.TrimSpace(value))
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid timestamp %q: expected DD/MM/YYYY HH:MM", value)
	}
	return DateTime{Time: parsed.UTC()}, nil
}

func (t DateTime) String() string {
	return t.Format(DateTimeLayout)
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.String())
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		*t = DateTime{}
		return nil
	}
	parsed, err := ParseDateTime(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t DateTime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time, nil
}

func (t *DateTime) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*t = DateTime{}
		return nil
	case time.Time:
		*t = DateTimeOf(value)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateTime", src)
	}
}
