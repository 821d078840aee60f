package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `
b.id, b.code, b.guest_id, b.property_id, b.check_in, b.check_out, b.adults, b.children, b.infants,
b.base_amount, b.discount_amount, b.coupon_discount, b.cleaning_fee, b.service_fee, b.tax_amount,
b.total_amount, b.coupon_id, b.status, b.payment_status, b.payment_expires_at, b.paid_at, b.paid_amount,
b.payment_failure_reason, b.cancellation_reason, b.cancelled_by_id, b.cancelled_by_role, b.cancelled_at,
b.refund_eligible, b.guest_name, b.guest_email, b.guest_phone, b.special_requests, b.version,
b.created_at, b.updated_at, b.deleted_at`

func bookingDest(i *Bookings) []any {
	return []any{
		&i.ID, &i.Code, &i.GuestID, &i.PropertyID, &i.CheckIn, &i.CheckOut, &i.Adults, &i.Children, &i.Infants,
		&i.BaseAmount, &i.DiscountAmount, &i.CouponDiscount, &i.CleaningFee, &i.ServiceFee, &i.TaxAmount,
		&i.TotalAmount, &i.CouponID, &i.Status, &i.PaymentStatus, &i.PaymentExpiresAt, &i.PaidAt, &i.PaidAmount,
		&i.PaymentFailureReason, &i.CancellationReason, &i.CancelledByID, &i.CancelledByRole, &i.CancelledAt,
		&i.RefundEligible, &i.GuestName, &i.GuestEmail, &i.GuestPhone, &i.SpecialRequests, &i.Version,
		&i.CreatedAt, &i.UpdatedAt, &i.DeletedAt,
	}
}

const getBooking = `SELECT` + bookingColumns + `
FROM bookings b WHERE b.id = $1 AND b.deleted_at IS NULL`

func (q *Queries) GetBooking(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	var i Bookings
	err := db.QueryRow(ctx, getBooking, id).Scan(bookingDest(&i)...)
	return i, err
}

const getBookingByCode = `SELECT` + bookingColumns + `
FROM bookings b WHERE b.code = $1 AND b.deleted_at IS NULL`

func (q *Queries) GetBookingByCode(ctx context.Context, db DBTX, code string) (Bookings, error) {
	var i Bookings
	err := db.QueryRow(ctx, getBookingByCode, code).Scan(bookingDest(&i)...)
	return i, err
}

const insertBooking = `
INSERT INTO bookings (
    id, code, guest_id, property_id, check_in, check_out, adults, children, infants,
    base_amount, discount_amount, coupon_discount, cleaning_fee, service_fee, tax_amount,
    total_amount, coupon_id, status, payment_status, payment_expires_at, paid_at, paid_amount,
    payment_failure_reason, cancellation_reason, cancelled_by_id, cancelled_by_role, cancelled_at,
    refund_eligible, guest_name, guest_email, guest_phone, special_requests, version,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9,
    $10, $11, $12, $13, $14, $15,
    $16, $17, $18, $19, $20, $21, $22,
    $23, $24, $25, $26, $27,
    $28, $29, $30, $31, $32, $33,
    $34, $35
)
`

func (q *Queries) InsertBooking(ctx context.Context, db DBTX, arg Bookings) error {
	_, err := db.Exec(ctx, insertBooking,
		arg.ID, arg.Code, arg.GuestID, arg.PropertyID, arg.CheckIn, arg.CheckOut, arg.Adults, arg.Children, arg.Infants,
		arg.BaseAmount, arg.DiscountAmount, arg.CouponDiscount, arg.CleaningFee, arg.ServiceFee, arg.TaxAmount,
		arg.TotalAmount, arg.CouponID, arg.Status, arg.PaymentStatus, arg.PaymentExpiresAt, arg.PaidAt, arg.PaidAmount,
		arg.PaymentFailureReason, arg.CancellationReason, arg.CancelledByID, arg.CancelledByRole, arg.CancelledAt,
		arg.RefundEligible, arg.GuestName, arg.GuestEmail, arg.GuestPhone, arg.SpecialRequests, arg.Version,
		arg.CreatedAt, arg.UpdatedAt,
	)
	return err
}

// Compare-and-set on version: $31 is the version the caller loaded, the row gets $31 + 1.
const updateBooking = `
UPDATE bookings SET
    check_in = $2, check_out = $3, adults = $4, children = $5, infants = $6,
    base_amount = $7, discount_amount = $8, coupon_discount = $9, cleaning_fee = $10,
    service_fee = $11, tax_amount = $12, total_amount = $13, coupon_id = $14,
    status = $15, payment_status = $16, payment_expires_at = $17, paid_at = $18, paid_amount = $19,
    payment_failure_reason = $20, cancellation_reason = $21, cancelled_by_id = $22,
    cancelled_by_role = $23, cancelled_at = $24, refund_eligible = $25,
    guest_name = $26, guest_email = $27, guest_phone = $28, special_requests = $29,
    updated_at = $30, version = $31 + 1
WHERE id = $1 AND version = $31 AND deleted_at IS NULL
`

type UpdateBookingParams struct {
	Bookings
	// ExpectedVersion is the version the aggregate was loaded at.
	ExpectedVersion int32
}

func (q *Queries) UpdateBooking(ctx context.Context, db DBTX, arg UpdateBookingParams) (int64, error) {
	tag, err := db.Exec(ctx, updateBooking,
		arg.ID, arg.CheckIn, arg.CheckOut, arg.Adults, arg.Children, arg.Infants,
		arg.BaseAmount, arg.DiscountAmount, arg.CouponDiscount, arg.CleaningFee,
		arg.ServiceFee, arg.TaxAmount, arg.TotalAmount, arg.CouponID,
		arg.Status, arg.PaymentStatus, arg.PaymentExpiresAt, arg.PaidAt, arg.PaidAmount,
		arg.PaymentFailureReason, arg.CancellationReason, arg.CancelledByID,
		arg.CancelledByRole, arg.CancelledAt, arg.RefundEligible,
		arg.GuestName, arg.GuestEmail, arg.GuestPhone, arg.SpecialRequests,
		arg.UpdatedAt, arg.ExpectedVersion,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type ListExpiredPendingBookingsParams struct {
	Now   pgtype.Timestamptz
	Limit int32
}

const listExpiredPendingBookings = `
SELECT id FROM bookings
WHERE status = 'pending' AND payment_status <> 'paid' AND deleted_at IS NULL
  AND payment_expires_at IS NOT NULL AND payment_expires_at < $1
ORDER BY payment_expires_at, id
LIMIT $2
`

func (q *Queries) ListExpiredPendingBookings(ctx context.Context, db DBTX, arg ListExpiredPendingBookingsParams) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listExpiredPendingBookings, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

type CountGuestBookingsParams struct {
	GuestID   uuid.UUID
	ExcludeID pgtype.UUID
}

type CountGuestBookingsRow struct {
	Total  int64
	Active int64
}

const countGuestBookings = `
SELECT count(*) AS total,
       count(*) FILTER (WHERE status NOT IN ('rejected', 'cancelled')) AS active
FROM bookings
WHERE guest_id = $1 AND deleted_at IS NULL AND ($2::uuid IS NULL OR id <> $2)
`

func (q *Queries) CountGuestBookings(ctx context.Context, db DBTX, arg CountGuestBookingsParams) (CountGuestBookingsRow, error) {
	var i CountGuestBookingsRow
	err := db.QueryRow(ctx, countGuestBookings, arg.GuestID, arg.ExcludeID).Scan(&i.Total, &i.Active)
	return i, err
}

// BookingViewRow is a booking joined with its property and coupon code.
type BookingViewRow struct {
	Bookings
	PropertyName string
	HostID       uuid.UUID
	CouponCode   pgtype.Text
}

const bookingViewSelect = `SELECT` + bookingColumns + `, p.name, p.host_id, c.code
FROM bookings b
JOIN properties p ON p.id = b.property_id
LEFT JOIN coupons c ON c.id = b.coupon_id
`

func scanBookingView(row pgx.Row) (BookingViewRow, error) {
	var i BookingViewRow
	dest := append(bookingDest(&i.Bookings), &i.PropertyName, &i.HostID, &i.CouponCode)
	err := row.Scan(dest...)
	return i, err
}

const getBookingView = bookingViewSelect + `WHERE b.id = $1 AND b.deleted_at IS NULL`

func (q *Queries) GetBookingView(ctx context.Context, db DBTX, id uuid.UUID) (BookingViewRow, error) {
	return scanBookingView(db.QueryRow(ctx, getBookingView, id))
}

const getBookingViewByCode = bookingViewSelect + `WHERE b.code = $1 AND b.deleted_at IS NULL`

func (q *Queries) GetBookingViewByCode(ctx context.Context, db DBTX, code string) (BookingViewRow, error) {
	return scanBookingView(db.QueryRow(ctx, getBookingViewByCode, code))
}

type GuestBookingListRow struct {
	ID            uuid.UUID
	Code          string
	PropertyID    uuid.UUID
	PropertyName  string
	CheckIn       pgtype.Date
	CheckOut      pgtype.Date
	Status        string
	PaymentStatus string
	TotalAmount   pgtype.Numeric
	CreatedAt     pgtype.Timestamptz
}

const guestBookingListSelect = `
SELECT b.id, b.code, b.property_id, p.name, b.check_in, b.check_out, b.status, b.payment_status,
       b.total_amount, b.created_at
FROM bookings b
JOIN properties p ON p.id = b.property_id
`

const listGuestBookingsFirstPage = guestBookingListSelect + `
WHERE b.guest_id = $1 AND b.deleted_at IS NULL
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2
`

type ListGuestBookingsFirstPageParams struct {
	GuestID uuid.UUID
	Limit   int32
}

func (q *Queries) ListGuestBookingsFirstPage(ctx context.Context, db DBTX, arg ListGuestBookingsFirstPageParams) ([]GuestBookingListRow, error) {
	rows, err := db.Query(ctx, listGuestBookingsFirstPage, arg.GuestID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[GuestBookingListRow])
}

const listGuestBookingsKeyset = guestBookingListSelect + `
WHERE b.guest_id = $1 AND b.deleted_at IS NULL
  AND (b.created_at, b.id) < ($2, $3)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4
`

type ListGuestBookingsKeysetParams struct {
	GuestID       uuid.UUID
	LastCreatedAt pgtype.Timestamptz
	LastID        uuid.UUID
	Limit         int32
}

func (q *Queries) ListGuestBookingsKeyset(ctx context.Context, db DBTX, arg ListGuestBookingsKeysetParams) ([]GuestBookingListRow, error) {
	rows, err := db.Query(ctx, listGuestBookingsKeyset, arg.GuestID, arg.LastCreatedAt, arg.LastID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[GuestBookingListRow])
}
