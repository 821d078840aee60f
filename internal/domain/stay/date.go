package stay

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvertedStay = errors.New("check-out must be after check-in")
)

// Date is a calendar date without time of day or location.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) String() string        { return d.t.Format(DateLayout) }

func (d Date) IsWeekend() bool {
	wd := d.t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// DaysUntil counts whole days from d to o; negative when o is earlier.
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.t }

// At returns the instant the date starts in loc.
func (d Date) At(loc *time.Location) time.Time {
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), 0, 0, 0, 0, loc)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Range is the half-open interval [CheckIn, CheckOut).
type Range struct {
	checkIn  Date
	checkOut Date
}

func NewRange(checkIn, checkOut Date) (Range, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Range{}, ErrInvalidDate
	}
	if !checkIn.Before(checkOut) {
		return Range{}, ErrInvertedStay
	}
	return Range{checkIn: checkIn, checkOut: checkOut}, nil
}

// MonthRange covers every date of the month.
func MonthRange(year int, month time.Month) Range {
	first := NewDate(year, month, 1)
	return Range{checkIn: first, checkOut: NewDate(year, month+1, 1)}
}

func (r Range) CheckIn() Date  { return r.checkIn }
func (r Range) CheckOut() Date { return r.checkOut }

func (r Range) Nights() int {
	return r.checkIn.DaysUntil(r.checkOut)
}

// Dates lists every night of the stay; the check-out date is excluded.
func (r Range) Dates() []Date {
	n := r.Nights()
	out := make([]Date, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.checkIn.AddDays(i))
	}
	return out
}

func (r Range) Contains(d Date) bool {
	return !d.Before(r.checkIn) && d.Before(r.checkOut)
}

func (r Range) Overlaps(o Range) bool {
	return r.checkIn.Before(o.checkOut) && o.checkIn.Before(r.checkOut)
}

func (r Range) Equal(o Range) bool {
	return r.checkIn.Equal(o.checkIn) && r.checkOut.Equal(o.checkOut)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s,%s)", r.checkIn, r.checkOut)
}
