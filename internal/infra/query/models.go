package query

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Users struct {
	ID        uuid.UUID
	FullName  string
	Email     string
	Phone     string
	Role      string
	IsActive  bool
	CreatedAt pgtype.Timestamptz
}

type Properties struct {
	ID                     uuid.UUID
	HostID                 uuid.UUID
	Name                   string
	BaseNightlyPrice       pgtype.Numeric
	WeekendPrice           pgtype.Numeric
	WeeklyDiscountPercent  pgtype.Numeric
	MonthlyDiscountPercent pgtype.Numeric
	CleaningFee            pgtype.Numeric
	MinNights              int32
	MaxNights              pgtype.Int4
	MaxGuests              int32
	MaxInfants             pgtype.Int4
	FreeCancellationHours  int32
	RequiresPrepayment     bool
	IsActive               bool
	CreatedAt              pgtype.Timestamptz
	UpdatedAt              pgtype.Timestamptz
}

type AvailabilityDays struct {
	PropertyID    uuid.UUID
	StayDate      pgtype.Date
	IsAvailable   bool
	IsBlocked     bool
	BlockReason   pgtype.Text
	CustomPrice   pgtype.Numeric
	MinimumNights pgtype.Int4
	UpdatedAt     pgtype.Timestamptz
}

type AvailabilityHolds struct {
	PropertyID  uuid.UUID
	StayDate    pgtype.Date
	BookingID   uuid.UUID
	BookingCode string
}

type Coupons struct {
	ID                   uuid.UUID
	Code                 string
	DiscountType         string
	DiscountValue        pgtype.Numeric
	MaxDiscountAmount    pgtype.Numeric
	StartDate            pgtype.Timestamptz
	EndDate              pgtype.Timestamptz
	TotalUsageLimit      pgtype.Int4
	UsagePerUser         pgtype.Int4
	UsedCount            int32
	MinimumBookingAmount pgtype.Numeric
	MinimumNights        pgtype.Int4
	Scope                string
	IsActive             bool
	IsPublic             bool
	IsFirstBookingOnly   bool
	IsNewUserOnly        bool
	Priority             int32
	PropertyIDs          []uuid.UUID
}

type Bookings struct {
	ID                   uuid.UUID
	Code                 string
	GuestID              uuid.UUID
	PropertyID           uuid.UUID
	CheckIn              pgtype.Date
	CheckOut             pgtype.Date
	Adults               int32
	Children             int32
	Infants              int32
	BaseAmount           pgtype.Numeric
	DiscountAmount       pgtype.Numeric
	CouponDiscount       pgtype.Numeric
	CleaningFee          pgtype.Numeric
	ServiceFee           pgtype.Numeric
	TaxAmount            pgtype.Numeric
	TotalAmount          pgtype.Numeric
	CouponID             pgtype.UUID
	Status               string
	PaymentStatus        string
	PaymentExpiresAt     pgtype.Timestamptz
	PaidAt               pgtype.Timestamptz
	PaidAmount           pgtype.Numeric
	PaymentFailureReason pgtype.Text
	CancellationReason   pgtype.Text
	CancelledByID        pgtype.UUID
	CancelledByRole      pgtype.Text
	CancelledAt          pgtype.Timestamptz
	RefundEligible       bool
	GuestName            string
	GuestEmail           string
	GuestPhone           string
	SpecialRequests      string
	Version              int32
	CreatedAt            pgtype.Timestamptz
	UpdatedAt            pgtype.Timestamptz
	DeletedAt            pgtype.Timestamptz
}

type IdempotencyKeys struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	RequestHash     string
	Status          string
	ResultBookingID pgtype.UUID
	ExpiresAt       pgtype.Timestamptz
}
