package queries

import (
	"context"

	"homestay-booking/internal/infra"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user_mock.go -package=queriesmock

var (
	ErrUserNotFound = errs.New("user not found")
	ErrUserInactive = errs.New("user inactive")
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	p, err := q.uow.CommandReads().GuestProfile(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !p.IsActive() {
		return nil, ErrUserInactive
	}
	return &ProfileView{
		ID:        p.ID(),
		FullName:  p.FullName(),
		Email:     p.Email().Value(),
		Phone:     p.Phone().Value(),
		Role:      p.Role().String(),
		IsActive:  p.IsActive(),
		CreatedAt: p.CreatedAt(),
	}, nil
}
