// Package converter maps between domain aggregates and the rows in internal/infra/query.
package converter

import (
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/pricing"
	"homestay-booking/internal/domain/stay"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func BookingToRow(b *booking.Booking) query.Bookings {
	price := b.Price()
	guests := b.Guests()
	snapshot := b.GuestSnapshot()

	row := query.Bookings{
		ID:                   b.ID(),
		Code:                 b.Code(),
		GuestID:              b.GuestID(),
		PropertyID:           b.PropertyID(),
		CheckIn:              pgconv.DateToPgtype(b.Stay().CheckIn()),
		CheckOut:             pgconv.DateToPgtype(b.Stay().CheckOut()),
		Adults:               int32(guests.Adults),   // #nosec G115 -- bounded by property capacity
		Children:             int32(guests.Children), // #nosec G115
		Infants:              int32(guests.Infants),  // #nosec G115
		BaseAmount:           pgconv.DecimalToNumeric(price.BaseAmount),
		DiscountAmount:       pgconv.DecimalToNumeric(price.DiscountAmount),
		CouponDiscount:       pgconv.DecimalToNumeric(price.CouponDiscount),
		CleaningFee:          pgconv.DecimalToNumeric(price.CleaningFee),
		ServiceFee:           pgconv.DecimalToNumeric(price.ServiceFee),
		TaxAmount:            pgconv.DecimalToNumeric(price.TaxAmount),
		TotalAmount:          pgconv.DecimalToNumeric(price.TotalAmount),
		CouponID:             pgconv.UUIDPtrToPgtype(b.CouponID()),
		Status:               b.Status().String(),
		PaymentStatus:        b.PaymentStatus().String(),
		PaymentExpiresAt:     pgconv.TimePtrToPgtype(b.PaymentExpiresAt()),
		PaidAt:               pgconv.TimePtrToPgtype(b.PaidAt()),
		PaidAmount:           pgconv.DecimalPtrToNumeric(b.PaidAmount()),
		PaymentFailureReason: pgconv.StringPtrToPgtype(b.PaymentFailureReason()),
		GuestName:            snapshot.FullName,
		GuestEmail:           snapshot.Email,
		GuestPhone:           snapshot.Phone,
		SpecialRequests:      b.SpecialRequests(),
		Version:              int32(b.Version()), // #nosec G115
		CreatedAt:            pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:            pgconv.TimeToPgtype(b.UpdatedAt()),
		DeletedAt:            pgconv.TimePtrToPgtype(b.DeletedAt()),
	}

	if c := b.Cancellation(); c != nil {
		row.CancellationReason = pgconv.StringToPgtype(c.Reason)
		row.CancelledByRole = pgconv.StringToPgtype(string(c.Actor.Role))
		row.CancelledAt = pgconv.TimeToPgtype(c.At)
		row.RefundEligible = c.RefundEligible
		if c.Actor.Role != booking.ActorSystem {
			row.CancelledByID = pgconv.UUIDToPgtype(c.Actor.ID)
		}
	}
	return row
}

func BookingFromRow(row query.Bookings) (*booking.Booking, error) {
	status := booking.Status(row.Status)
	if !status.IsValid() {
		return nil, errs.Newf("unknown booking status %q", row.Status)
	}
	paymentStatus := booking.PaymentStatus(row.PaymentStatus)
	if !paymentStatus.IsValid() {
		return nil, errs.Newf("unknown payment status %q", row.PaymentStatus)
	}

	rng, err := stay.NewRange(pgconv.DateFromPgtype(row.CheckIn), pgconv.DateFromPgtype(row.CheckOut))
	if err != nil {
		return nil, errs.Wrap(err, "invalid stay dates")
	}
	price, err := totalsFromRow(row)
	if err != nil {
		return nil, err
	}
	paidAmount, err := pgconv.DecimalPtrFromNumeric(row.PaidAmount)
	if err != nil {
		return nil, errs.Wrap(err, "paid_amount")
	}

	return booking.ReconstructBooking(booking.ReconstructParams{
		ID:         row.ID,
		Code:       row.Code,
		GuestID:    row.GuestID,
		PropertyID: row.PropertyID,
		Stay:       rng,
		Guests: stay.Guests{
			Adults:   int(row.Adults),
			Children: int(row.Children),
			Infants:  int(row.Infants),
		},
		Price:                price,
		CouponID:             pgconv.UUIDPtrFromPgtype(row.CouponID),
		Status:               status,
		PaymentStatus:        paymentStatus,
		PaymentExpiresAt:     pgconv.TimePtrFromPgtype(row.PaymentExpiresAt),
		PaidAt:               pgconv.TimePtrFromPgtype(row.PaidAt),
		PaidAmount:           paidAmount,
		PaymentFailureReason: pgconv.StringPtrFromPgtype(row.PaymentFailureReason),
		Cancellation:         cancellationFromRow(row),
		GuestSnapshot: booking.GuestSnapshot{
			FullName: row.GuestName,
			Email:    row.GuestEmail,
			Phone:    row.GuestPhone,
		},
		SpecialRequests: row.SpecialRequests,
		Version:         int(row.Version),
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
		DeletedAt:       pgconv.TimePtrFromPgtype(row.DeletedAt),
	}), nil
}

func totalsFromRow(row query.Bookings) (pricing.Totals, error) {
	var t pricing.Totals
	fields := []struct {
		name string
		src  pgtype.Numeric
		dst  *decimal.Decimal
	}{
		{"base_amount", row.BaseAmount, &t.BaseAmount},
		{"discount_amount", row.DiscountAmount, &t.DiscountAmount},
		{"coupon_discount", row.CouponDiscount, &t.CouponDiscount},
		{"cleaning_fee", row.CleaningFee, &t.CleaningFee},
		{"service_fee", row.ServiceFee, &t.ServiceFee},
		{"tax_amount", row.TaxAmount, &t.TaxAmount},
		{"total_amount", row.TotalAmount, &t.TotalAmount},
	}
	for _, f := range fields {
		v, err := pgconv.DecimalFromNumeric(f.src)
		if err != nil {
			return pricing.Totals{}, errs.Wrap(err, f.name)
		}
		*f.dst = v
	}
	return t, nil
}

func cancellationFromRow(row query.Bookings) *booking.Cancellation {
	if !row.CancelledAt.Valid {
		return nil
	}
	actor := booking.Actor{Role: booking.ActorRole(row.CancelledByRole.String)}
	if row.CancelledByID.Valid {
		actor.ID = row.CancelledByID.Bytes
	}
	return &booking.Cancellation{
		Reason:         row.CancellationReason.String,
		Actor:          actor,
		At:             row.CancelledAt.Time,
		RefundEligible: row.RefundEligible,
	}
}
