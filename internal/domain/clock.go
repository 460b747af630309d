package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date form used for log dates and
// effective dates. Dates in this form compare correctly as strings.
const DateLayout = "2006-01-02"

// MinutesPerDay is the length of the clock cycle.
const MinutesPerDay = 24 * 60

// ValidDate reports whether s is a real calendar date in DateLayout.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil && len(s) == len(DateLayout)
}

// NextDate returns the calendar date one day after s.
func NextDate(s string) string {
	return AddDays(s, 1)
}

// AddDays shifts a calendar date by n days (negative n goes backwards).
func AddDays(s string, n int) string {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return s
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// ClockTime is a time of day in minutes after midnight, in [0, 1440).
// It marshals as "HH:MM" in JSON and in the database.
type ClockTime int

// ParseClock parses "HH:MM" (seconds, if present, are dropped).
func ParseClock(s string) (ClockTime, error) {
	if len(s) > 5 {
		s = s[:5]
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time of day %q", ErrValidation, s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer, storing the "HH:MM" form.
func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implements sql.Scanner.
func (c *ClockTime) Scan(value any) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into ClockTime", value)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Interval is a half-open-by-convention span of the day, Start to End.
type Interval struct {
	Start ClockTime `json:"start" example:"02:30"`
	End   ClockTime `json:"end" example:"02:50"`
}

// Intervals is a slice of intervals stored as a jsonb column.
type Intervals []Interval

func (iv Intervals) Value() (driver.Value, error) {
	if iv == nil {
		iv = Intervals{}
	}
	return json.Marshal(iv)
}

func (iv *Intervals) Scan(value any) error {
	if value == nil {
		*iv = Intervals{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Intervals", value)
	}
	return json.Unmarshal(data, iv)
}
