// Mocks for the interfaces in internal/usecase/commands/coupon.go.
// Regenerate with: go generate ./internal/usecase/commands

package commandsmock

import (
	context "context"
	reflect "reflect"

	booking "homestay-booking/internal/domain/booking"
	commands "homestay-booking/internal/usecase/commands"

	uuid "github.com/google/uuid"
	gomock "go.uber.org/mock/gomock"
)

// MockCouponCommands is a mock of CouponCommands interface.
type MockCouponCommands struct {
	ctrl     *gomock.Controller
	recorder *MockCouponCommandsMockRecorder
	isgomock struct{}
}

// MockCouponCommandsMockRecorder is the mock recorder for MockCouponCommands.
type MockCouponCommandsMockRecorder struct {
	mock *MockCouponCommands
}

// NewMockCouponCommands creates a new mock instance.
func NewMockCouponCommands(ctrl *gomock.Controller) *MockCouponCommands {
	mock := &MockCouponCommands{ctrl: ctrl}
	mock.recorder = &MockCouponCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCouponCommands) EXPECT() *MockCouponCommandsMockRecorder {
	return m.recorder
}

// ValidateCoupon mocks base method.
func (m *MockCouponCommands) ValidateCoupon(ctx context.Context, userID uuid.UUID, req commands.ValidateCouponRequest) (*commands.CouponCheck, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValidateCoupon", ctx, userID, req)
	ret0, _ := ret[0].(*commands.CouponCheck)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ValidateCoupon indicates an expected call of ValidateCoupon.
func (mr *MockCouponCommandsMockRecorder) ValidateCoupon(ctx, userID, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValidateCoupon", reflect.TypeOf((*MockCouponCommands)(nil).ValidateCoupon), ctx, userID, req)
}

// ApplyCoupon mocks base method.
func (m *MockCouponCommands) ApplyCoupon(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, code string) (*booking.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ApplyCoupon", ctx, actor, bookingID, code)
	ret0, _ := ret[0].(*booking.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ApplyCoupon indicates an expected call of ApplyCoupon.
func (mr *MockCouponCommandsMockRecorder) ApplyCoupon(ctx, actor, bookingID, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ApplyCoupon", reflect.TypeOf((*MockCouponCommands)(nil).ApplyCoupon), ctx, actor, bookingID, code)
}

// RemoveCoupon mocks base method.
func (m *MockCouponCommands) RemoveCoupon(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RemoveCoupon", ctx, actor, bookingID)
	ret0, _ := ret[0].(*booking.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RemoveCoupon indicates an expected call of RemoveCoupon.
func (mr *MockCouponCommandsMockRecorder) RemoveCoupon(ctx, actor, bookingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveCoupon", reflect.TypeOf((*MockCouponCommands)(nil).RemoveCoupon), ctx, actor, bookingID)
}
