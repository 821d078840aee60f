package availability

import (
	"fmt"

	"homestay-booking/internal/domain/stay"

	"github.com/google/uuid"
)

// Hold marks a date as taken by a booking.
type Hold struct {
	PropertyID  uuid.UUID
	Date        stay.Date
	BookingID   uuid.UUID
	BookingCode string
}

type DayStatus string

const (
	StatusAvailable   DayStatus = "available"
	StatusBlocked     DayStatus = "blocked"
	StatusUnavailable DayStatus = "unavailable"
	StatusBooked      DayStatus = "booked"
)

// ConflictError names the first date that prevented a reservation.
type ConflictError struct {
	Date   stay.Date
	Status DayStatus
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("dates unavailable: %s is %s", e.Date, e.Status)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrDatesUnavailable
}

// StatusOf resolves the displayed status of a date. day and hold may be nil.
func StatusOf(day *Day, hold *Hold) DayStatus {
	switch {
	case day != nil && day.IsBlocked():
		return StatusBlocked
	case hold != nil:
		return StatusBooked
	case day != nil && !day.IsAvailable():
		return StatusUnavailable
	default:
		return StatusAvailable
	}
}

// CheckRange returns a *ConflictError for the first night of rng that is not bookable.
// Holds owned by excludeBookingID are ignored so a booking can be moved onto its own dates.
func CheckRange(rng stay.Range, days map[stay.Date]*Day, holds map[stay.Date]*Hold, excludeBookingID *uuid.UUID) error {
	for _, d := range rng.Dates() {
		day := days[d]
		hold := holds[d]
		if hold != nil && excludeBookingID != nil && hold.BookingID == *excludeBookingID {
			hold = nil
		}
		if status := StatusOf(day, hold); status != StatusAvailable {
			return &ConflictError{Date: d, Status: status}
		}
	}
	return nil
}

func IndexDays(days []*Day) map[stay.Date]*Day {
	m := make(map[stay.Date]*Day, len(days))
	for _, d := range days {
		m[d.Date()] = d
	}
	return m
}

func IndexHolds(holds []Hold) map[stay.Date]*Hold {
	m := make(map[stay.Date]*Hold, len(holds))
	for i := range holds {
		m[holds[i].Date] = &holds[i]
	}
	return m
}
