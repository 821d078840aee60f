//go:build unit || e2e

package builder

import (
	"time"

	"homestay-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID       uuid.UUID
	FullName string
	Email    string
	Phone    string
	Role     string
	IsActive bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:       uuid.New(),
		FullName: "Tran Thi B",
		Email:    "guest@example.com",
		Phone:    "+84 912 345 678",
		Role:     "guest",
		IsActive: true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) BuildDomain() (*user.Profile, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	phone, err := user.NewPhone(u.Phone)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructProfile(u.ID, u.FullName, email, phone, role, u.IsActive, time.Now()), nil
}

func (u *UserBuilder) MustBuild() *user.Profile {
	p, err := u.BuildDomain()
	if err != nil {
		panic(err)
	}
	return p
}

func (u *UserBuilder) AsHost() *UserBuilder {
	u.Role = "host"
	u.Email = "host@example.com"
	u.FullName = "Le Van Host"
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = "admin"
	u.Email = "admin@example.com"
	u.FullName = "Admin"
	return u
}
