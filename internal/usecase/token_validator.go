package usecase

import (
	"homestay-booking/internal/domain/booking"
	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/pkg/errs"
	"homestay-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrUnauthenticated = errs.New("unauthenticated")

// Identity is the authenticated caller behind a request.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

func (i Identity) Actor() booking.Actor {
	return booking.ActorFromRole(i.UserID, i.Role)
}

type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, errs.Mark(err, ErrUnauthenticated)
	}
	userID, err := claims.UserID()
	if err != nil {
		return Identity{}, errs.Mark(err, ErrUnauthenticated)
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, errs.Mark(err, ErrUnauthenticated)
	}
	return Identity{UserID: userID, Role: role}, nil
}
