package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is the flat user record the booking engine needs: identity, contact and role.
type Profile struct {
	id        uuid.UUID
	fullName  string
	email     Email
	phone     Phone
	role      Role
	isActive  bool
	createdAt time.Time
}

func NewProfile(fullName string, email Email, phone Phone, role Role, now time.Time) (*Profile, error) {
	name, err := normalizeFullName(fullName)
	if err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &Profile{
		id:        uuid.New(),
		fullName:  name,
		email:     email,
		phone:     phone,
		role:      role,
		isActive:  true,
		createdAt: now,
	}, nil
}

func ReconstructProfile(id uuid.UUID, fullName string, email Email, phone Phone, role Role, isActive bool, createdAt time.Time) *Profile {
	return &Profile{
		id:        id,
		fullName:  fullName,
		email:     email,
		phone:     phone,
		role:      role,
		isActive:  isActive,
		createdAt: createdAt,
	}
}

func normalizeFullName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyFullName
	}
	if len(s) > MaxFullNameLength {
		return "", ErrFullNameTooLong
	}
	return s, nil
}

func (p *Profile) ID() uuid.UUID        { return p.id }
func (p *Profile) FullName() string     { return p.fullName }
func (p *Profile) Email() Email         { return p.email }
func (p *Profile) Phone() Phone         { return p.phone }
func (p *Profile) Role() Role           { return p.role }
func (p *Profile) IsActive() bool       { return p.isActive }
func (p *Profile) CreatedAt() time.Time { return p.createdAt }
