//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/infra/lock"
	"homestay-booking/internal/infra/memstore"
	"homestay-booking/internal/pkg/clock"
	"homestay-booking/internal/usecase/commands"
	"homestay-booking/internal/usecase/shared"
	"homestay-booking/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	checkIn  = stay.NewDate(2025, time.March, 7)
	checkOut = stay.NewDate(2025, time.March, 10)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// spyMetrics records what the use cases report.
type spyMetrics struct {
	mu          sync.Mutex
	created     int
	rejected    map[string]int
	transitions map[string]int
	coupons     map[string]int
	payments    map[string]int
	sweeps      int
	swept       int
	sweepErrs   int
}

func newSpyMetrics() *spyMetrics {
	return &spyMetrics{
		rejected:    map[string]int{},
		transitions: map[string]int{},
		coupons:     map[string]int{},
		payments:    map[string]int{},
	}
}

var _ shared.Metrics = (*spyMetrics)(nil)

func (m *spyMetrics) BookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *spyMetrics) BookingRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[reason]++
}

func (m *spyMetrics) BookingTransitioned(to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[to]++
}

func (m *spyMetrics) CouponRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coupons[reason]++
}

func (m *spyMetrics) PaymentRecorded(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[outcome]++
}

func (m *spyMetrics) SweepFinished(expired int, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweeps++
	m.swept += expired
	if err != nil {
		m.sweepErrs++
	}
}

type fixture struct {
	store   *memstore.Store
	clock   *clock.MockClock
	metrics *spyMetrics
	locker  *lock.LocalLocker

	host  *user.Profile
	guest *user.Profile
	prop  *property.Property

	bookings commands.BookingCommands
	coupons  commands.CouponCommands
	payments commands.PaymentCommands
	sweeper  commands.SweeperCommands
	calendar commands.CalendarCommands
}

// newFixture wires every use case to one in-memory store. Fees and tax are zero so totals
// equal the nightly sum minus discounts.
func newFixture(t *testing.T, mutate ...func(*builder.PropertyBuilder)) *fixture {
	t.Helper()

	store := memstore.New()
	clk := clock.NewMockClock(now)
	spy := newSpyMetrics()
	locker := lock.NewLocalLocker()

	host := builder.NewUserBuilder().AsHost().MustBuild()
	guest := builder.NewUserBuilder().MustBuild()
	pb := builder.NewPropertyBuilder().WithHostID(host.ID())
	for _, m := range mutate {
		pb.With(m)
	}
	prop := pb.MustBuild()
	store.AddProfile(host)
	store.AddProfile(guest)
	store.AddProperty(prop)

	uow := memstore.NewUnitOfWork(store)
	calc := pricing.NewCalculator(pricing.FeeSchedule{
		ServiceFeePercent: decimal.Zero,
		ServiceFeeFixed:   decimal.Zero,
		TaxPercent:        decimal.Zero,
	})
	policy := commands.Policy{
		PaymentTimeout: 30 * time.Minute,
		IdempotencyTTL: 24 * time.Hour,
		Location:       time.UTC,
	}
	codes := booking.NewCodeGenerator("BK")

	return &fixture{
		store:    store,
		clock:    clk,
		metrics:  spy,
		locker:   locker,
		host:     host,
		guest:    guest,
		prop:     prop,
		bookings: commands.NewBookingUseCase(uow, calc, codes, clk, spy, policy, discardLogger()),
		coupons:  commands.NewCouponUseCase(uow, calc, clk, spy),
		payments: commands.NewPaymentUseCase(uow, clk, spy, discardLogger()),
		sweeper: commands.NewSweeperUseCase(uow, locker, clk, spy,
			commands.SweeperConfig{BatchSize: 50, LeaseTTL: time.Minute}, discardLogger()),
		calendar: commands.NewCalendarUseCase(uow, clk),
	}
}

func (f *fixture) newGuest(t *testing.T) *user.Profile {
	t.Helper()
	g := builder.NewUserBuilder().MustBuild()
	f.store.AddProfile(g)
	return g
}

func guestActor(p *user.Profile) booking.Actor {
	return booking.Actor{ID: p.ID(), Role: booking.ActorGuest}
}

func (f *fixture) hostActor() booking.Actor {
	return booking.Actor{ID: f.host.ID(), Role: booking.ActorHost}
}

func request(prop *property.Property, in, out stay.Date) commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		PropertyID: prop.ID(),
		CheckIn:    in,
		CheckOut:   out,
		Guests:     stay.Guests{Adults: 2},
	}
}

func (f *fixture) book(ctx context.Context, guest *user.Profile, mutate ...func(*commands.CreateBookingRequest)) (*booking.Booking, error) {
	req := request(f.prop, checkIn, checkOut)
	for _, m := range mutate {
		m(&req)
	}
	res, err := f.bookings.CreateBooking(ctx, guest.ID(), req, nil)
	if err != nil {
		return nil, err
	}
	return res.Booking, nil
}

func (f *fixture) mustBook(t *testing.T, guest *user.Profile, mutate ...func(*commands.CreateBookingRequest)) *booking.Booking {
	t.Helper()
	b, err := f.book(context.Background(), guest, mutate...)
	require.NoError(t, err)
	return b
}

func withDates(in, out stay.Date) func(*commands.CreateBookingRequest) {
	return func(r *commands.CreateBookingRequest) {
		r.CheckIn = in
		r.CheckOut = out
	}
}

func withCoupon(code string) func(*commands.CreateBookingRequest) {
	return func(r *commands.CreateBookingRequest) {
		r.CouponCode = &code
	}
}

func (f *fixture) reload(t *testing.T, b *booking.Booking) *booking.Booking {
	t.Helper()
	fresh, err := f.store.CommandReads().BookingByID(context.Background(), b.ID())
	require.NoError(t, err)
	return fresh
}

func (f *fixture) topics() []string {
	var out []string
	for _, j := range f.store.Jobs() {
		out = append(out, j.Topic)
	}
	return out
}
