// Mocks for the interfaces in internal/infra/repository/calendar.go.
// Regenerate with: go generate ./internal/infra/repository

package repositorymock

import (
	context "context"
	reflect "reflect"

	query "homestay-booking/internal/infra/query"

	uuid "github.com/google/uuid"
	gomock "go.uber.org/mock/gomock"
)

// MockCalendarWriteQueries is a mock of CalendarWriteQueries interface.
type MockCalendarWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockCalendarWriteQueriesMockRecorder
	isgomock struct{}
}

// MockCalendarWriteQueriesMockRecorder is the mock recorder for MockCalendarWriteQueries.
type MockCalendarWriteQueriesMockRecorder struct {
	mock *MockCalendarWriteQueries
}

// NewMockCalendarWriteQueries creates a new mock instance.
func NewMockCalendarWriteQueries(ctrl *gomock.Controller) *MockCalendarWriteQueries {
	mock := &MockCalendarWriteQueries{ctrl: ctrl}
	mock.recorder = &MockCalendarWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCalendarWriteQueries) EXPECT() *MockCalendarWriteQueriesMockRecorder {
	return m.recorder
}

// LockProperty mocks base method.
func (m *MockCalendarWriteQueries) LockProperty(ctx context.Context, db query.DBTX, id uuid.UUID) (uuid.UUID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LockProperty", ctx, db, id)
	ret0, _ := ret[0].(uuid.UUID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LockProperty indicates an expected call of LockProperty.
func (mr *MockCalendarWriteQueriesMockRecorder) LockProperty(ctx, db, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LockProperty", reflect.TypeOf((*MockCalendarWriteQueries)(nil).LockProperty), ctx, db, id)
}

// GetBooking mocks base method.
func (m *MockCalendarWriteQueries) GetBooking(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Bookings, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBooking", ctx, db, id)
	ret0, _ := ret[0].(query.Bookings)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBooking indicates an expected call of GetBooking.
func (mr *MockCalendarWriteQueriesMockRecorder) GetBooking(ctx, db, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBooking", reflect.TypeOf((*MockCalendarWriteQueries)(nil).GetBooking), ctx, db, id)
}

// ListAvailabilityHolds mocks base method.
func (m *MockCalendarWriteQueries) ListAvailabilityHolds(ctx context.Context, db query.DBTX, arg query.DateRangeParams) ([]query.AvailabilityHolds, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAvailabilityHolds", ctx, db, arg)
	ret0, _ := ret[0].([]query.AvailabilityHolds)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAvailabilityHolds indicates an expected call of ListAvailabilityHolds.
func (mr *MockCalendarWriteQueriesMockRecorder) ListAvailabilityHolds(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAvailabilityHolds", reflect.TypeOf((*MockCalendarWriteQueries)(nil).ListAvailabilityHolds), ctx, db, arg)
}

// InsertAvailabilityHolds mocks base method.
func (m *MockCalendarWriteQueries) InsertAvailabilityHolds(ctx context.Context, db query.DBTX, arg query.InsertAvailabilityHoldsParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertAvailabilityHolds", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InsertAvailabilityHolds indicates an expected call of InsertAvailabilityHolds.
func (mr *MockCalendarWriteQueriesMockRecorder) InsertAvailabilityHolds(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertAvailabilityHolds", reflect.TypeOf((*MockCalendarWriteQueries)(nil).InsertAvailabilityHolds), ctx, db, arg)
}

// DeleteAvailabilityHolds mocks base method.
func (m *MockCalendarWriteQueries) DeleteAvailabilityHolds(ctx context.Context, db query.DBTX, arg query.DeleteAvailabilityHoldsParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteAvailabilityHolds", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteAvailabilityHolds indicates an expected call of DeleteAvailabilityHolds.
func (mr *MockCalendarWriteQueriesMockRecorder) DeleteAvailabilityHolds(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteAvailabilityHolds", reflect.TypeOf((*MockCalendarWriteQueries)(nil).DeleteAvailabilityHolds), ctx, db, arg)
}

// UpsertAvailabilityDay mocks base method.
func (m *MockCalendarWriteQueries) UpsertAvailabilityDay(ctx context.Context, db query.DBTX, arg query.UpsertAvailabilityDayParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertAvailabilityDay", ctx, db, arg)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpsertAvailabilityDay indicates an expected call of UpsertAvailabilityDay.
func (mr *MockCalendarWriteQueriesMockRecorder) UpsertAvailabilityDay(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertAvailabilityDay", reflect.TypeOf((*MockCalendarWriteQueries)(nil).UpsertAvailabilityDay), ctx, db, arg)
}
