package converter

import (
	"homestay-booking/internal/domain/availability"
	"homestay-booking/internal/domain/coupon"
	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/pkg/pgconv"
)

func PropertyFromRow(row query.Properties) (*property.Property, error) {
	base, err := pgconv.DecimalFromNumeric(row.BaseNightlyPrice)
	if err != nil {
		return nil, errs.Wrap(err, "base_nightly_price")
	}
	weekend, err := pgconv.DecimalPtrFromNumeric(row.WeekendPrice)
	if err != nil {
		return nil, errs.Wrap(err, "weekend_price")
	}
	weekly, err := pgconv.DecimalPtrFromNumeric(row.WeeklyDiscountPercent)
	if err != nil {
		return nil, errs.Wrap(err, "weekly_discount_percent")
	}
	monthly, err := pgconv.DecimalPtrFromNumeric(row.MonthlyDiscountPercent)
	if err != nil {
		return nil, errs.Wrap(err, "monthly_discount_percent")
	}
	cleaning, err := pgconv.DecimalFromNumeric(row.CleaningFee)
	if err != nil {
		return nil, errs.Wrap(err, "cleaning_fee")
	}

	return property.New(property.Params{
		ID:                     row.ID,
		HostID:                 row.HostID,
		Name:                   row.Name,
		BaseNightlyPrice:       base,
		WeekendPrice:           weekend,
		WeeklyDiscountPercent:  weekly,
		MonthlyDiscountPercent: monthly,
		CleaningFee:            cleaning,
		MinNights:              int(row.MinNights),
		MaxNights:              pgconv.IntPtrFromPgtype(row.MaxNights),
		MaxGuests:              int(row.MaxGuests),
		MaxInfants:             pgconv.IntPtrFromPgtype(row.MaxInfants),
		FreeCancellationHours:  int(row.FreeCancellationHours),
		RequiresPrepayment:     row.RequiresPrepayment,
		IsActive:               row.IsActive,
		CreatedAt:              pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:              pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

func ProfileFromRow(row query.Users) (*user.Profile, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, err
	}
	phone, err := user.NewPhone(row.Phone)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(row.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructProfile(row.ID, row.FullName, email, phone, role, row.IsActive, pgconv.TimeFromPgtype(row.CreatedAt)), nil
}

func CouponFromRow(row query.Coupons) (*coupon.Coupon, error) {
	value, err := pgconv.DecimalFromNumeric(row.DiscountValue)
	if err != nil {
		return nil, errs.Wrap(err, "discount_value")
	}
	maxDiscount, err := pgconv.DecimalPtrFromNumeric(row.MaxDiscountAmount)
	if err != nil {
		return nil, errs.Wrap(err, "max_discount_amount")
	}
	minAmount, err := pgconv.DecimalPtrFromNumeric(row.MinimumBookingAmount)
	if err != nil {
		return nil, errs.Wrap(err, "minimum_booking_amount")
	}

	return coupon.NewCoupon(coupon.Params{
		ID:                   row.ID,
		Code:                 row.Code,
		DiscountType:         coupon.DiscountType(row.DiscountType),
		DiscountValue:        value,
		MaxDiscountAmount:    maxDiscount,
		StartDate:            pgconv.TimeFromPgtype(row.StartDate),
		EndDate:              pgconv.TimeFromPgtype(row.EndDate),
		TotalUsageLimit:      pgconv.IntPtrFromPgtype(row.TotalUsageLimit),
		UsagePerUser:         pgconv.IntPtrFromPgtype(row.UsagePerUser),
		UsedCount:            int(row.UsedCount),
		MinimumBookingAmount: minAmount,
		MinimumNights:        pgconv.IntPtrFromPgtype(row.MinimumNights),
		Scope:                coupon.ScopeKind(row.Scope),
		PropertyIDs:          row.PropertyIDs,
		IsActive:             row.IsActive,
		IsPublic:             row.IsPublic,
		IsFirstBookingOnly:   row.IsFirstBookingOnly,
		IsNewUserOnly:        row.IsNewUserOnly,
		Priority:             int(row.Priority),
	})
}

func DayFromRow(row query.AvailabilityDays) (*availability.Day, error) {
	price, err := pgconv.DecimalPtrFromNumeric(row.CustomPrice)
	if err != nil {
		return nil, errs.Wrap(err, "custom_price")
	}
	return availability.ReconstructDay(
		row.PropertyID,
		pgconv.DateFromPgtype(row.StayDate),
		row.IsAvailable,
		row.IsBlocked,
		pgconv.StringPtrFromPgtype(row.BlockReason),
		price,
		pgconv.IntPtrFromPgtype(row.MinimumNights),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func DayToParams(d *availability.Day) query.UpsertAvailabilityDayParams {
	return query.UpsertAvailabilityDayParams{
		PropertyID:    d.PropertyID(),
		StayDate:      pgconv.DateToPgtype(d.Date()),
		IsAvailable:   d.IsAvailable(),
		IsBlocked:     d.IsBlocked(),
		BlockReason:   pgconv.StringPtrToPgtype(d.BlockReason()),
		CustomPrice:   pgconv.DecimalPtrToNumeric(d.CustomPrice()),
		MinimumNights: pgconv.IntPtrToPgtype(d.MinimumNights()),
		UpdatedAt:     pgconv.TimeToPgtype(d.UpdatedAt()),
	}
}

func HoldFromRow(row query.AvailabilityHolds) availability.Hold {
	return availability.Hold{
		PropertyID:  row.PropertyID,
		Date:        pgconv.DateFromPgtype(row.StayDate),
		BookingID:   row.BookingID,
		BookingCode: row.BookingCode,
	}
}
