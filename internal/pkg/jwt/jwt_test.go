//go:build unit

package jwt

import (
	"testing"
	"time"

	"homestay-booking/internal/domain/user"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)
	id := uuid.New()

	token, err := svc.GenerateToken(id, user.RoleHost)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "host", claims.Role)
}

func TestService_ValidateToken_Rejects(t *testing.T) {
	svc := NewService("secret", time.Hour)

	expired, err := NewService("secret", -time.Minute).GenerateToken(uuid.New(), user.RoleGuest)
	require.NoError(t, err)
	otherKey, err := NewService("other", time.Hour).GenerateToken(uuid.New(), user.RoleGuest)
	require.NoError(t, err)
	sign := func(c Claims, method gojwt.SigningMethod) string {
		t.Helper()
		token, err := gojwt.NewWithClaims(method, c).SignedString([]byte("secret"))
		require.NoError(t, err)
		return token
	}
	exp := gojwt.NewNumericDate(time.Now().Add(time.Hour))
	badRole := sign(Claims{Role: "owner", RegisteredClaims: gojwt.RegisteredClaims{
		Subject: uuid.NewString(), ExpiresAt: exp,
	}}, gojwt.SigningMethodHS256)
	noSubject := sign(Claims{Role: "guest", RegisteredClaims: gojwt.RegisteredClaims{
		ExpiresAt: exp,
	}}, gojwt.SigningMethodHS256)
	noExpiry := sign(Claims{Role: "guest", RegisteredClaims: gojwt.RegisteredClaims{
		Subject: uuid.NewString(),
	}}, gojwt.SigningMethodHS256)
	hs512 := sign(Claims{Role: "guest", RegisteredClaims: gojwt.RegisteredClaims{
		Subject: uuid.NewString(), ExpiresAt: exp,
	}}, gojwt.SigningMethodHS512)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"expired", expired, ErrExpiredToken},
		{"wrong key", otherKey, ErrInvalidToken},
		{"unknown role", badRole, ErrInvalidToken},
		{"missing subject", noSubject, ErrInvalidToken},
		{"missing expiry", noExpiry, ErrInvalidToken},
		{"other algorithm", hs512, ErrInvalidToken},
		{"garbage", "not-a-token", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
