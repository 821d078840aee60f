// Mocks for the interfaces in internal/usecase/commands/booking.go.
// Regenerate with: go generate ./internal/usecase/commands

// Package commandsmock holds GoMock doubles.
package commandsmock

import (
	context "context"
	reflect "reflect"

	booking "homestay-booking/internal/domain/booking"
	commands "homestay-booking/internal/usecase/commands"

	uuid "github.com/google/uuid"
	gomock "go.uber.org/mock/gomock"
)

// MockBookingCommands is a mock of BookingCommands interface.
type MockBookingCommands struct {
	ctrl     *gomock.Controller
	recorder *MockBookingCommandsMockRecorder
	isgomock struct{}
}

// MockBookingCommandsMockRecorder is the mock recorder for MockBookingCommands.
type MockBookingCommandsMockRecorder struct {
	mock *MockBookingCommands
}

// NewMockBookingCommands creates a new mock instance.
func NewMockBookingCommands(ctrl *gomock.Controller) *MockBookingCommands {
	mock := &MockBookingCommands{ctrl: ctrl}
	mock.recorder = &MockBookingCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBookingCommands) EXPECT() *MockBookingCommandsMockRecorder {
	return m.recorder
}

// CreateBooking mocks base method.
func (m *MockBookingCommands) CreateBooking(ctx context.Context, guestID uuid.UUID, req commands.CreateBookingRequest, idempotencyKey *uuid.UUID) (*commands.CreateBookingResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateBooking", ctx, guestID, req, idempotencyKey)
	ret0, _ := ret[0].(*commands.CreateBookingResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateBooking indicates an expected call of CreateBooking.
func (mr *MockBookingCommandsMockRecorder) CreateBooking(ctx, guestID, req, idempotencyKey any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateBooking", reflect.TypeOf((*MockBookingCommands)(nil).CreateBooking), ctx, guestID, req, idempotencyKey)
}

// UpdateBooking mocks base method.
func (m *MockBookingCommands) UpdateBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, req commands.UpdateBookingRequest) (*booking.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateBooking", ctx, actor, bookingID, req)
	ret0, _ := ret[0].(*booking.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateBooking indicates an expected call of UpdateBooking.
func (mr *MockBookingCommandsMockRecorder) UpdateBooking(ctx, actor, bookingID, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateBooking", reflect.TypeOf((*MockBookingCommands)(nil).UpdateBooking), ctx, actor, bookingID, req)
}

// ConfirmBooking mocks base method.
func (m *MockBookingCommands) ConfirmBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ConfirmBooking", ctx, actor, bookingID)
	ret0, _ := ret[0].(*booking.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ConfirmBooking indicates an expected call of ConfirmBooking.
func (mr *MockBookingCommandsMockRecorder) ConfirmBooking(ctx, actor, bookingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConfirmBooking", reflect.TypeOf((*MockBookingCommands)(nil).ConfirmBooking), ctx, actor, bookingID)
}

// RejectBooking mocks base method.
func (m *MockBookingCommands) RejectBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, reason string) (*booking.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RejectBooking", ctx, actor, bookingID, reason)
	ret0, _ := ret[0].(*booking.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RejectBooking indicates an expected call of RejectBooking.
func (mr *MockBookingCommandsMockRecorder) RejectBooking(ctx, actor, bookingID, reason any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RejectBooking", reflect.TypeOf((*MockBookingCommands)(nil).RejectBooking), ctx, actor, bookingID, reason)
}

// CancelBooking mocks base method.
func (m *MockBookingCommands) CancelBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID, reason string) (*booking.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CancelBooking", ctx, actor, bookingID, reason)
	ret0, _ := ret[0].(*booking.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CancelBooking indicates an expected call of CancelBooking.
func (mr *MockBookingCommandsMockRecorder) CancelBooking(ctx, actor, bookingID, reason any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CancelBooking", reflect.TypeOf((*MockBookingCommands)(nil).CancelBooking), ctx, actor, bookingID, reason)
}

// CheckIn mocks base method.
func (m *MockBookingCommands) CheckIn(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckIn", ctx, actor, bookingID)
	ret0, _ := ret[0].(*booking.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CheckIn indicates an expected call of CheckIn.
func (mr *MockBookingCommandsMockRecorder) CheckIn(ctx, actor, bookingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckIn", reflect.TypeOf((*MockBookingCommands)(nil).CheckIn), ctx, actor, bookingID)
}

// CheckOut mocks base method.
func (m *MockBookingCommands) CheckOut(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckOut", ctx, actor, bookingID)
	ret0, _ := ret[0].(*booking.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CheckOut indicates an expected call of CheckOut.
func (mr *MockBookingCommandsMockRecorder) CheckOut(ctx, actor, bookingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckOut", reflect.TypeOf((*MockBookingCommands)(nil).CheckOut), ctx, actor, bookingID)
}

// Complete mocks base method.
func (m *MockBookingCommands) Complete(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Complete", ctx, actor, bookingID)
	ret0, _ := ret[0].(*booking.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Complete indicates an expected call of Complete.
func (mr *MockBookingCommandsMockRecorder) Complete(ctx, actor, bookingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Complete", reflect.TypeOf((*MockBookingCommands)(nil).Complete), ctx, actor, bookingID)
}

// MarkNoShow mocks base method.
func (m *MockBookingCommands) MarkNoShow(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkNoShow", ctx, actor, bookingID)
	ret0, _ := ret[0].(*booking.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MarkNoShow indicates an expected call of MarkNoShow.
func (mr *MockBookingCommandsMockRecorder) MarkNoShow(ctx, actor, bookingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkNoShow", reflect.TypeOf((*MockBookingCommands)(nil).MarkNoShow), ctx, actor, bookingID)
}
