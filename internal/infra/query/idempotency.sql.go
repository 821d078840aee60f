package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type InsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
}

const insertIdempotencyKey = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING
`

func (q *Queries) InsertIdempotencyKey(ctx context.Context, db DBTX, arg InsertIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, insertIdempotencyKey, arg.Key, arg.UserID, arg.Endpoint, arg.RequestHash, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type IdempotencyKeyParams struct {
	Key    uuid.UUID
	UserID uuid.UUID
}

const getIdempotencyKey = `
SELECT key, user_id, endpoint, request_hash, status, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, arg IdempotencyKeyParams) (IdempotencyKeys, error) {
	var i IdempotencyKeys
	err := db.QueryRow(ctx, getIdempotencyKey, arg.Key, arg.UserID).Scan(
		&i.Key,
		&i.UserID,
		&i.Endpoint,
		&i.RequestHash,
		&i.Status,
		&i.ResultBookingID,
		&i.ExpiresAt,
	)
	return i, err
}

type ClaimExpiredIdempotencyKeyParams struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	RequestHash string
	Now         pgtype.Timestamptz
	ExpiresAt   pgtype.Timestamptz
}

// Takes over a key whose lease ran out; zero rows means someone else holds it.
const claimExpiredIdempotencyKey = `
UPDATE idempotency_keys
SET request_hash = $3, status = 'processing', result_booking_id = NULL, expires_at = $5
WHERE key = $1 AND user_id = $2 AND expires_at <= $4
`

func (q *Queries) ClaimExpiredIdempotencyKey(ctx context.Context, db DBTX, arg ClaimExpiredIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, claimExpiredIdempotencyKey, arg.Key, arg.UserID, arg.RequestHash, arg.Now, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type CompleteIdempotencyKeyParams struct {
	Key       uuid.UUID
	UserID    uuid.UUID
	BookingID uuid.UUID
}

const completeIdempotencyKey = `
UPDATE idempotency_keys SET status = 'completed', result_booking_id = $3
WHERE key = $1 AND user_id = $2
`

func (q *Queries) CompleteIdempotencyKey(ctx context.Context, db DBTX, arg CompleteIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, completeIdempotencyKey, arg.Key, arg.UserID, arg.BookingID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
