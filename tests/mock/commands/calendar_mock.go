// Mocks for the interfaces in internal/usecase/commands/calendar.go.
// Regenerate with: go generate ./internal/usecase/commands

package commandsmock

import (
	context "context"
	reflect "reflect"

	availability "homestay-booking/internal/domain/availability"
	booking "homestay-booking/internal/domain/booking"
	stay "homestay-booking/internal/domain/stay"
	commands "homestay-booking/internal/usecase/commands"

	uuid "github.com/google/uuid"
	gomock "go.uber.org/mock/gomock"
)

// MockCalendarCommands is a mock of CalendarCommands interface.
type MockCalendarCommands struct {
	ctrl     *gomock.Controller
	recorder *MockCalendarCommandsMockRecorder
	isgomock struct{}
}

// MockCalendarCommandsMockRecorder is the mock recorder for MockCalendarCommands.
type MockCalendarCommandsMockRecorder struct {
	mock *MockCalendarCommands
}

// NewMockCalendarCommands creates a new mock instance.
func NewMockCalendarCommands(ctrl *gomock.Controller) *MockCalendarCommands {
	mock := &MockCalendarCommands{ctrl: ctrl}
	mock.recorder = &MockCalendarCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCalendarCommands) EXPECT() *MockCalendarCommandsMockRecorder {
	return m.recorder
}

// BlockRange mocks base method.
func (m *MockCalendarCommands) BlockRange(ctx context.Context, actor booking.Actor, propertyID uuid.UUID, rng stay.Range, reason *string) ([]*availability.Day, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BlockRange", ctx, actor, propertyID, rng, reason)
	ret0, _ := ret[0].([]*availability.Day)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BlockRange indicates an expected call of BlockRange.
func (mr *MockCalendarCommandsMockRecorder) BlockRange(ctx, actor, propertyID, rng, reason any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BlockRange", reflect.TypeOf((*MockCalendarCommands)(nil).BlockRange), ctx, actor, propertyID, rng, reason)
}

// UnblockRange mocks base method.
func (m *MockCalendarCommands) UnblockRange(ctx context.Context, actor booking.Actor, propertyID uuid.UUID, rng stay.Range) ([]*availability.Day, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnblockRange", ctx, actor, propertyID, rng)
	ret0, _ := ret[0].([]*availability.Day)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UnblockRange indicates an expected call of UnblockRange.
func (mr *MockCalendarCommandsMockRecorder) UnblockRange(ctx, actor, propertyID, rng any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnblockRange", reflect.TypeOf((*MockCalendarCommands)(nil).UnblockRange), ctx, actor, propertyID, rng)
}

// UpsertDays mocks base method.
func (m *MockCalendarCommands) UpsertDays(ctx context.Context, actor booking.Actor, propertyID uuid.UUID, updates []commands.DayUpdate) ([]*availability.Day, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertDays", ctx, actor, propertyID, updates)
	ret0, _ := ret[0].([]*availability.Day)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpsertDays indicates an expected call of UpsertDays.
func (mr *MockCalendarCommandsMockRecorder) UpsertDays(ctx, actor, propertyID, updates any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertDays", reflect.TypeOf((*MockCalendarCommands)(nil).UpsertDays), ctx, actor, propertyID, updates)
}
