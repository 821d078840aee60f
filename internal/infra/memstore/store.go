// Package memstore keeps the whole booking state in process memory. Transactions are serialized
// by one mutex and run against a copy of the state that replaces the live one on commit.
package memstore

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type dayKey struct {
	propertyID uuid.UUID
	date       stay.Date
}

type idempotencyKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

// NotificationJob is an outbox row as written by the use cases.
type NotificationJob struct {
	ID      uuid.UUID
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

// state is only ever mutated through a copy owned by one transaction.
// Stored domain objects are never handed out; reads return copies.
type state struct {
	properties  map[uuid.UUID]*property.Property
	profiles    map[uuid.UUID]*user.Profile
	coupons     map[uuid.UUID]coupon.Params
	days        map[dayKey]*availability.Day
	holds       map[dayKey]availability.Hold
	bookings    map[uuid.UUID]*booking.Booking
	usages      map[uuid.UUID]*coupon.Usage
	idempotency map[idempotencyKey]shared.IdempotencyRecord
	jobs        []NotificationJob
}

func newState() *state {
	return &state{
		properties:  map[uuid.UUID]*property.Property{},
		profiles:    map[uuid.UUID]*user.Profile{},
		coupons:     map[uuid.UUID]coupon.Params{},
		days:        map[dayKey]*availability.Day{},
		holds:       map[dayKey]availability.Hold{},
		bookings:    map[uuid.UUID]*booking.Booking{},
		usages:      map[uuid.UUID]*coupon.Usage{},
		idempotency: map[idempotencyKey]shared.IdempotencyRecord{},
	}
}

func (s *state) clone() *state {
	return &state{
		properties:  maps.Clone(s.properties),
		profiles:    maps.Clone(s.profiles),
		coupons:     maps.Clone(s.coupons),
		days:        maps.Clone(s.days),
		holds:       maps.Clone(s.holds),
		bookings:    maps.Clone(s.bookings),
		usages:      maps.Clone(s.usages),
		idempotency: maps.Clone(s.idempotency),
		jobs:        append([]NotificationJob(nil), s.jobs...),
	}
}

type Store struct {
	mu    sync.RWMutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

func NewUnitOfWork(s *Store) shared.UnitOfWork {
	return s
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(ctx, &reads{st: s.state})
}

// CommandReads reads the committed state; each call takes the lock on its own.
func (s *Store) CommandReads() shared.CommandReads {
	return &lockedReads{store: s}
}

func (s *Store) AddProperty(p *property.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.properties[p.ID()] = p
}

func (s *Store) AddProfile(p *user.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.profiles[p.ID()] = p
}

func (s *Store) AddCoupon(c *coupon.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.coupons[c.ID()] = paramsOf(c)
}

func (s *Store) AddDay(d *availability.Day) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.days[dayKey{d.PropertyID(), d.Date()}] = copyDay(d)
}

// AddBooking stores b as is, reserving its dates when its status holds the calendar.
func (s *Store) AddBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.bookings[b.ID()] = b.Clone()
	if b.Status().HoldsCalendar() {
		for _, d := range b.Stay().Dates() {
			s.state.holds[dayKey{b.PropertyID(), d}] = availability.Hold{
				PropertyID:  b.PropertyID(),
				Date:        d,
				BookingID:   b.ID(),
				BookingCode: b.Code(),
			}
		}
	}
}

func (s *Store) Jobs() []NotificationJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]NotificationJob(nil), s.state.jobs...)
}

// HoldsOf lists the dates held by bookingID in ascending order.
func (s *Store) HoldsOf(bookingID uuid.UUID) []stay.Date {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var dates []stay.Date
	for _, h := range s.state.holds {
		if h.BookingID == bookingID {
			dates = append(dates, h.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

type memTx struct {
	st *state
}

func (t *memTx) Bookings() shared.BookingRepository           { return &bookingRepo{st: t.st} }
func (t *memTx) Calendar() shared.CalendarRepository          { return &calendarRepo{st: t.st} }
func (t *memTx) CouponUsages() shared.CouponUsageRepository   { return &couponUsageRepo{st: t.st} }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return &idempotencyRepo{st: t.st} }
func (t *memTx) Notifications() shared.NotificationRepository { return &notificationRepo{st: t.st} }
func (t *memTx) Reads() shared.CommandReads                   { return &reads{st: t.st} }

func copyDay(d *availability.Day) *availability.Day {
	return availability.ReconstructDay(
		d.PropertyID(), d.Date(), d.IsAvailable(), d.IsBlocked(),
		d.BlockReason(), d.CustomPrice(), d.MinimumNights(), d.UpdatedAt(),
	)
}

func paramsOf(c *coupon.Coupon) coupon.Params {
	return coupon.Params{
		ID:                   c.ID(),
		Code:                 c.Code().String(),
		DiscountType:         c.Discount().Type(),
		DiscountValue:        c.Discount().Value(),
		MaxDiscountAmount:    c.Discount().MaxDiscount(),
		StartDate:            c.StartDate(),
		EndDate:              c.EndDate(),
		TotalUsageLimit:      c.TotalUsageLimit(),
		UsagePerUser:         c.UsagePerUser(),
		UsedCount:            c.UsedCount(),
		MinimumBookingAmount: c.MinimumBookingAmount(),
		MinimumNights:        c.MinimumNights(),
		Scope:                c.Scope(),
		PropertyIDs:          c.PropertyIDs(),
		IsActive:             c.IsActive(),
		IsPublic:             c.IsPublic(),
		IsFirstBookingOnly:   c.IsFirstBookingOnly(),
		IsNewUserOnly:        c.IsNewUserOnly(),
		Priority:             c.Priority(),
	}
}
