package weather

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Date is a local calendar day. It carries no zone; the offset is applied
// when a Date is derived from an instant.
type Date = civil.Date

// NewDate returns the Date for the given civil year, month and day,
// normalizing out-of-range values the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return civil.DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the local calendar day of ts under a fixed UTC offset.
func DateOf(ts time.Time, offsetSeconds int) Date {
	return civil.DateOf(ts.In(fixedZone(offsetSeconds)))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

func fixedZone(offsetSeconds int) *time.Location {
	if offsetSeconds == 0 {
		return time.UTC
	}
	return time.FixedZone("", offsetSeconds)
}

func minDate(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

func maxDate(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}
