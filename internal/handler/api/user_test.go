//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"homestay-booking/internal/handler/api"
	resdto "homestay-booking/internal/handler/dto/response"
	"homestay-booking/internal/usecase/queries"
	"homestay-booking/tests/common/httptest"
	queriesmock "homestay-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	tests := []struct {
		name       string
		view       *queries.ProfileView
		err        error
		wantStatus int
	}{
		{
			name: "returns the profile",
			view: &queries.ProfileView{
				ID:        userID,
				FullName:  "Tran Thi B",
				Email:     "guest@example.com",
				Role:      "guest",
				IsActive:  true,
				CreatedAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			},
			wantStatus: http.StatusOK,
		},
		{name: "unknown user", err: queries.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "inactive user", err: queries.ErrUserInactive, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUsers := queriesmock.NewMockUserQueries(ctrl)
			mockUsers.EXPECT().GetCurrentUser(gomock.Any(), userID).Return(tt.view, tt.err)

			router := gin.New()
			router.GET("/me", fakeAuth(userID), api.NewUserHandler(mockUsers).Me)

			rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "bearer-token")

			if tt.wantStatus != http.StatusOK {
				httptest.AssertErrorResponse(t, rec, tt.wantStatus, "")
				return
			}
			var body resdto.ProfileResponse
			httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
			require.Equal(t, userID, body.ID)
			assert.Equal(t, "Tran Thi B", body.FullName)
			assert.Equal(t, "guest", body.Role)
			assert.True(t, body.IsActive)
		})
	}
}
