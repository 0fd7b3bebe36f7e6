package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

// Date is a calendar day without time of day. It is serialized as
// "YYYY-MM-DD" and stored in DATE columns.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses s in [DateLayout].
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner. Drivers return DATE columns either as
// time.Time or as text.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// OptionalDate is a date field of a partial update. Set records that the
// field was present in the payload; a present null leaves Date nil and
// clears the stored value.
type OptionalDate struct {
	Set  bool
	Date *Date
}

// SetDate returns an OptionalDate that assigns d.
func SetDate(d Date) OptionalDate {
	return OptionalDate{Set: true, Date: &d}
}

// ClearDate returns an OptionalDate that stores NULL.
func ClearDate() OptionalDate {
	return OptionalDate{Set: true}
}

// IsZero reports whether the field was absent. It drives omitzero.
func (o OptionalDate) IsZero() bool {
	return !o.Set
}

// MarshalJSON implements json.Marshaler.
func (o OptionalDate) MarshalJSON() ([]byte, error) {
	if o.Date == nil {
		return []byte("null"), nil
	}
	return o.Date.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler. encoding/json calls it for an
// explicit null as well, which is what tells null apart from absent.
func (o *OptionalDate) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Date = nil
		return nil
	}

	var d Date
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	o.Date = &d
	return nil
}

// Value implements driver.Valuer; a cleared date is NULL.
func (o OptionalDate) Value() (driver.Value, error) {
	if o.Date == nil {
		return nil, nil
	}
	return o.Date.Value()
}
