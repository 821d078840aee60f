//go:build unit

package pgconv

import (
	"database/sql"
	"testing"
	"time"

	"homestay-booking/internal/domain/stay"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalNumeric(t *testing.T) {
	for _, s := range []string{"0", "1500000", "12.345", "-0.01", "999999999999.99"} {
		t.Run(s, func(t *testing.T) {
			want := decimal.RequireFromString(s)
			got, err := DecimalFromNumeric(DecimalToNumeric(want))
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "want %s got %s", want, got)
		})
	}
}

func TestDecimalFromNumeric_Edges(t *testing.T) {
	d, err := DecimalFromNumeric(pgtype.Numeric{})
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = DecimalFromNumeric(pgtype.Numeric{NaN: true, Valid: true})
	assert.ErrorIs(t, err, ErrInvalidNumeric)

	_, err = DecimalFromNumeric(pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true})
	assert.ErrorIs(t, err, ErrInvalidNumeric)

	p, err := DecimalPtrFromNumeric(pgtype.Numeric{})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDateRoundTrip(t *testing.T) {
	d := stay.NewDate(2024, time.February, 29)
	assert.True(t, d.Equal(DateFromPgtype(DateToPgtype(d))))
}

func TestNullables(t *testing.T) {
	assert.Nil(t, UUIDPtrFromPgtype(UUIDPtrToPgtype(nil)))
	assert.Nil(t, TimePtrFromPgtype(TimePtrToPgtype(nil)))
	assert.Nil(t, StringPtrFromPgtype(StringPtrToPgtype(nil)))
	assert.Nil(t, IntPtrFromPgtype(IntPtrToPgtype(nil)))

	n := 3
	got := IntPtrFromPgtype(IntPtrToPgtype(&n))
	require.NotNil(t, got)
	assert.Equal(t, 3, *got)
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsNoRows(sql.ErrNoRows))
	assert.False(t, IsNoRows(assert.AnError))
}
