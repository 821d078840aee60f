//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const DefaultHostEmail = "host@example.com"

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, full_name, email, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, "Test "+strings.Split(email, "@")[0], email, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

// PropertyFixture holds the columns tests usually vary; zero values fall back to column defaults.
type PropertyFixture struct {
	HostID             uuid.UUID
	Name               string
	BasePrice          decimal.Decimal
	WeekendPrice       *decimal.Decimal
	CleaningFee        decimal.Decimal
	MinNights          int
	MaxNights          *int
	MaxGuests          int
	RequiresPrepayment bool
}

func CreateTestProperty(t *testing.T, db DBLike, f PropertyFixture) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	if f.HostID == uuid.Nil {
		err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", DefaultHostEmail).Scan(&f.HostID)
		require.NoError(t, err)
	}
	if f.Name == "" {
		f.Name = "Test Homestay"
	}
	if f.BasePrice.IsZero() {
		f.BasePrice = decimal.RequireFromString("1000000")
	}
	if f.MinNights == 0 {
		f.MinNights = 1
	}
	if f.MaxGuests == 0 {
		f.MaxGuests = 4
	}

	propertyID := uuid.New()
	_, err := db.Exec(ctx, `
		INSERT INTO properties (id, host_id, name, base_nightly_price, weekend_price, cleaning_fee,
		                        min_nights, max_nights, max_guests, requires_prepayment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		propertyID, f.HostID, f.Name, f.BasePrice, f.WeekendPrice, f.CleaningFee,
		f.MinNights, f.MaxNights, f.MaxGuests, f.RequiresPrepayment)
	require.NoError(t, err)

	return propertyID
}

type CouponFixture struct {
	Code            string
	Percent         decimal.Decimal
	TotalUsageLimit *int
	UsagePerUser    *int
	ValidFrom       time.Time
	ValidTo         time.Time
}

func CreateTestCoupon(t *testing.T, db DBLike, f CouponFixture) uuid.UUID {
	t.Helper()

	if f.Percent.IsZero() {
		f.Percent = decimal.NewFromInt(10)
	}
	if f.ValidFrom.IsZero() {
		f.ValidFrom = time.Now().Add(-24 * time.Hour)
	}
	if f.ValidTo.IsZero() {
		f.ValidTo = time.Now().Add(365 * 24 * time.Hour)
	}

	couponID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO coupons (id, code, discount_type, discount_value, start_date, end_date,
		                     total_usage_limit, usage_per_user)
		VALUES ($1, $2, 'percentage', $3, $4, $5, $6, $7)`,
		couponID, strings.ToUpper(f.Code), f.Percent, f.ValidFrom, f.ValidTo, f.TotalUsageLimit, f.UsagePerUser)
	require.NoError(t, err)

	return couponID
}

// CountHolds returns the number of held nights of a property.
func CountHolds(t *testing.T, db DBLike, propertyID uuid.UUID) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM availability_holds WHERE property_id = $1", propertyID).Scan(&n)
	require.NoError(t, err)
	return n
}

// ExpireBooking moves a booking's payment deadline into the past.
func ExpireBooking(t *testing.T, db DBLike, bookingID uuid.UUID) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		"UPDATE bookings SET payment_expires_at = now() - interval '1 minute' WHERE id = $1", bookingID)
	require.NoError(t, err)
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, full_name, email, role) VALUES
		    (gen_random_uuid(), 'Default Host', $1, 'host')
		ON CONFLICT (email) DO NOTHING;
	`, DefaultHostEmail)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
