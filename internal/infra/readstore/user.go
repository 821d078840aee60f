package readstore

import (
	"context"

	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/converter"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	GetUserProfile(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      query.DBTX
}

func NewUserReadStore(queries UserReadQueries, db query.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	row, err := r.queries.GetUserProfile(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	p, err := converter.ProfileFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert user row", err)
	}
	return p, nil
}
