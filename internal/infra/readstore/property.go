package readstore

import (
	"context"

	"homestay-booking/internal/domain/property"
	"homestay-booking/internal/infra"
	"homestay-booking/internal/infra/converter"
	"homestay-booking/internal/infra/query"
	"homestay-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PropertyReadQueries interface {
	GetProperty(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Properties, error)
}

type PropertyReadStore struct {
	queries PropertyReadQueries
	db      query.DBTX
}

func NewPropertyReadStore(queries PropertyReadQueries, db query.DBTX) *PropertyReadStore {
	return &PropertyReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *PropertyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	row, err := r.queries.GetProperty(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by ID", err)
	}

	p, err := converter.PropertyFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert property row", err)
	}
	return p, nil
}
