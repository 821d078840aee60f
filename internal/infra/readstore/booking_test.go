//go:build unit

package readstore

import (
	"context"
	"testing"
	"time"

	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/converter"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/pkg/pgconv"
	"homestay-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingReadQueries struct {
	mock.Mock
}

func (m *MockBookingReadQueries) GetBooking(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Bookings, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(query.Bookings), args.Error(1)
}

func (m *MockBookingReadQueries) GetBookingByCode(ctx context.Context, db query.DBTX, code string) (query.Bookings, error) {
	args := m.Called(ctx, db, code)
	return args.Get(0).(query.Bookings), args.Error(1)
}

func (m *MockBookingReadQueries) GetBookingView(ctx context.Context, db query.DBTX, id uuid.UUID) (query.BookingViewRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(query.BookingViewRow), args.Error(1)
}

func (m *MockBookingReadQueries) GetBookingViewByCode(ctx context.Context, db query.DBTX, code string) (query.BookingViewRow, error) {
	args := m.Called(ctx, db, code)
	return args.Get(0).(query.BookingViewRow), args.Error(1)
}

func (m *MockBookingReadQueries) ListGuestBookingsFirstPage(ctx context.Context, db query.DBTX, arg query.ListGuestBookingsFirstPageParams) ([]query.GuestBookingListRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]query.GuestBookingListRow), args.Error(1)
}

func (m *MockBookingReadQueries) ListGuestBookingsKeyset(ctx context.Context, db query.DBTX, arg query.ListGuestBookingsKeysetParams) ([]query.GuestBookingListRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]query.GuestBookingListRow), args.Error(1)
}

func (m *MockBookingReadQueries) CountGuestBookings(ctx context.Context, db query.DBTX, arg query.CountGuestBookingsParams) (query.CountGuestBookingsRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(query.CountGuestBookingsRow), args.Error(1)
}

func (m *MockBookingReadQueries) ListExpiredPendingBookings(ctx context.Context, db query.DBTX, arg query.ListExpiredPendingBookingsParams) ([]uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func TestBookingReadStore_LoadByID(t *testing.T) {
	ctx := context.Background()
	source := builder.NewBookingBuilder().AsPaid().MustBuild()
	row := converter.BookingToRow(source)

	corrupt := row
	corrupt.Status = "teleported"

	tests := []struct {
		name       string
		mockReturn query.Bookings
		mockError  error
		wantKind   infra.RepositoryErrorKind
	}{
		{name: "success - row converted", mockReturn: row},
		{name: "not found", mockReturn: query.Bookings{}, mockError: pgx.ErrNoRows, wantKind: infra.KindNotFound},
		{name: "database error", mockReturn: query.Bookings{}, mockError: assert.AnError, wantKind: infra.KindDBFailure},
		{name: "unknown status stored", mockReturn: corrupt, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockBookingReadQueries)
			mockQueries.On("GetBooking", ctx, nil, source.ID()).Return(tt.mockReturn, tt.mockError)
			store := NewBookingReadStore(mockQueries, nil)

			got, err := store.LoadByID(ctx, source.ID())

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, source.ID(), got.ID())
				assert.Equal(t, source.Code(), got.Code())
				assert.Equal(t, booking.StatusPending, got.Status())
				assert.True(t, got.IsPaid())
				assert.True(t, source.Price().TotalAmount.Equal(got.Price().TotalAmount))
				assert.True(t, source.Stay().Equal(got.Stay()))
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestBookingReadStore_FindByCode(t *testing.T) {
	ctx := context.Background()
	source := builder.NewBookingBuilder().MustBuild()
	hostID := uuid.New()

	mockQueries := new(MockBookingReadQueries)
	mockQueries.On("GetBookingViewByCode", ctx, nil, source.Code()).Return(query.BookingViewRow{
		Bookings:     converter.BookingToRow(source),
		PropertyName: "Hoi An Riverside Villa",
		HostID:       hostID,
		CouponCode:   pgtype.Text{String: "SPRING25", Valid: true},
	}, nil)
	store := NewBookingReadStore(mockQueries, nil)

	view, err := store.FindByCode(ctx, source.Code())
	require.NoError(t, err)
	assert.Equal(t, source.ID(), view.ID)
	assert.Equal(t, "Hoi An Riverside Villa", view.PropertyName)
	assert.Equal(t, hostID, view.HostID)
	require.NotNil(t, view.CouponCode)
	assert.Equal(t, "SPRING25", *view.CouponCode)
	assert.Equal(t, string(booking.StatusPending), view.Status)
	mockQueries.AssertExpectations(t)
}

func TestBookingReadStore_FindByGuestKeyset(t *testing.T) {
	ctx := context.Background()
	guestID := uuid.New()
	lastID := uuid.New()
	lastCreatedAt := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	params := query.ListGuestBookingsKeysetParams{
		GuestID:       guestID,
		LastCreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		LastID:        lastID,
		Limit:         2,
	}
	rows := []query.GuestBookingListRow{
		{
			ID:            uuid.New(),
			Code:          "BK-250228-AAAAAA",
			PropertyID:    uuid.New(),
			PropertyName:  "Da Lat Pine Cabin",
			CheckIn:       pgtype.Date{Time: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), Valid: true},
			CheckOut:      pgtype.Date{Time: time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC), Valid: true},
			Status:        "confirmed",
			PaymentStatus: "paid",
			TotalAmount:   pgconv.DecimalToNumeric(decimal.RequireFromString("2450000")),
			CreatedAt:     pgconv.TimeToPgtype(lastCreatedAt.Add(-time.Hour)),
		},
	}

	mockQueries := new(MockBookingReadQueries)
	mockQueries.On("ListGuestBookingsKeyset", ctx, nil, params).Return(rows, nil)
	store := NewBookingReadStore(mockQueries, nil)

	items, err := store.FindByGuestKeyset(ctx, guestID, lastCreatedAt, lastID, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Da Lat Pine Cabin", items[0].PropertyName)
	assert.Equal(t, "2025-04-01", items[0].CheckIn.String())
	assert.True(t, decimal.RequireFromString("2450000").Equal(items[0].TotalAmount))
	mockQueries.AssertExpectations(t)
}

func TestBookingReadStore_History(t *testing.T) {
	ctx := context.Background()
	guestID := uuid.New()
	exclude := uuid.New()

	mockQueries := new(MockBookingReadQueries)
	mockQueries.On("CountGuestBookings", ctx, nil, query.CountGuestBookingsParams{
		GuestID:   guestID,
		ExcludeID: pgconv.UUIDToPgtype(exclude),
	}).Return(query.CountGuestBookingsRow{Total: 4, Active: 1}, nil)
	store := NewBookingReadStore(mockQueries, nil)

	h, err := store.History(ctx, guestID, &exclude)
	require.NoError(t, err)
	assert.Equal(t, 4, h.Total)
	assert.Equal(t, 1, h.Active)
}
