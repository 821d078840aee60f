//go:build unit || e2e

package authtest

import (
	"testing"

	"homestay-booking/internal/domain/user"
	"homestay-booking/internal/pkg/config"
	"homestay-booking/tests/common/dbtest"

	"github.com/google/uuid"
)

// CreateAndLogin inserts a user and returns its ID with a bearer token for it.
// Accounts are issued elsewhere, so there is no login endpoint to call.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, cfg config.JWTConfig, email string, role user.Role) (uuid.UUID, string) {
	t.Helper()
	userID := dbtest.CreateTestUser(t, db, email, string(role))
	return userID, NewJWTHelper(cfg).GenerateToken(t, userID, role)
}
