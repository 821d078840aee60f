package query

import (
	"context"

	"github.com/google/uuid"
)

const getUserProfile = `
SELECT id, full_name, email, phone, role, is_active, created_at
FROM users
WHERE id = $1 AND deleted_at IS NULL
`

func (q *Queries) GetUserProfile(ctx context.Context, db DBTX, id uuid.UUID) (Users, error) {
	row := db.QueryRow(ctx, getUserProfile, id)
	var i Users
	err := row.Scan(
		&i.ID,
		&i.FullName,
		&i.Email,
		&i.Phone,
		&i.Role,
		&i.IsActive,
		&i.CreatedAt,
	)
	return i, err
}
