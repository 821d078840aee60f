// Mocks for the interfaces in internal/infra/repository/booking.go.
// Regenerate with: go generate ./internal/infra/repository

// Package repositorymock holds GoMock doubles.
package repositorymock

import (
	context "context"
	reflect "reflect"

	query "homestay-booking/internal/infra/query"

	gomock "go.uber.org/mock/gomock"
)

// MockBookingWriteQueries is a mock of BookingWriteQueries interface.
type MockBookingWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockBookingWriteQueriesMockRecorder
	isgomock struct{}
}

// MockBookingWriteQueriesMockRecorder is the mock recorder for MockBookingWriteQueries.
type MockBookingWriteQueriesMockRecorder struct {
	mock *MockBookingWriteQueries
}

// NewMockBookingWriteQueries creates a new mock instance.
func NewMockBookingWriteQueries(ctrl *gomock.Controller) *MockBookingWriteQueries {
	mock := &MockBookingWriteQueries{ctrl: ctrl}
	mock.recorder = &MockBookingWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBookingWriteQueries) EXPECT() *MockBookingWriteQueriesMockRecorder {
	return m.recorder
}

// InsertBooking mocks base method.
func (m *MockBookingWriteQueries) InsertBooking(ctx context.Context, db query.DBTX, arg query.Bookings) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertBooking", ctx, db, arg)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertBooking indicates an expected call of InsertBooking.
func (mr *MockBookingWriteQueriesMockRecorder) InsertBooking(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertBooking", reflect.TypeOf((*MockBookingWriteQueries)(nil).InsertBooking), ctx, db, arg)
}

// UpdateBooking mocks base method.
func (m *MockBookingWriteQueries) UpdateBooking(ctx context.Context, db query.DBTX, arg query.UpdateBookingParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateBooking", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateBooking indicates an expected call of UpdateBooking.
func (mr *MockBookingWriteQueriesMockRecorder) UpdateBooking(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateBooking", reflect.TypeOf((*MockBookingWriteQueries)(nil).UpdateBooking), ctx, db, arg)
}
