package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// DateLayout is the wire and storage format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day. It carries no time of day and no zone, so two
// Dates for the same day always compare equal and can be used as map keys.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate returns the Date for the given day, normalizing out-of-range values.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the UTC calendar day of t.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{year: y, month: m, day: d}
}

// DateFromEpochMillis converts provider timestamps. The day is always taken
// in UTC, independent of the process time zone.
func DateFromEpochMillis(ms int64) Date {
	return DateOf(time.UnixMilli(ms))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

func (d Date) After(o Date) bool { return d.Time().After(o.Time()) }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner. Drivers hand dates back as text or as time.Time
// depending on the column type.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}

func (d *Date) scanString(s string) error {
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

// GormDataType keeps the column a DATE on gorm backed stores.
func (Date) GormDataType() string { return "date" }

// MarshalEasyJSON supports easyjson.Marshaler interface
func (d Date) MarshalEasyJSON(w *jwriter.Writer) {
	w.String(d.String())
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (d *Date) UnmarshalEasyJSON(l *jlexer.Lexer) {
	s := l.String()
	if !l.Ok() {
		return
	}
	parsed, err := ParseDate(s)
	if err != nil {
		l.AddError(err)
		return
	}
	*d = parsed
}

// MarshalJSON supports json.Marshaler interface
func (d Date) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	d.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

// UnmarshalJSON supports json.Unmarshaler interface
func (d *Date) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	d.UnmarshalEasyJSON(&r)
	return r.Error()
}
