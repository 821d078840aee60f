// Mocks for the interfaces in internal/usecase/queries/booking.go.
// Regenerate with: go generate ./internal/usecase/queries

// Package queriesmock holds GoMock doubles.
package queriesmock

import (
	context "context"
	reflect "reflect"

	booking "homestay-booking/internal/domain/booking"
	queries "homestay-booking/internal/usecase/queries"

	uuid "github.com/google/uuid"
	gomock "go.uber.org/mock/gomock"
)

// MockBookingQueries is a mock of BookingQueries interface.
type MockBookingQueries struct {
	ctrl     *gomock.Controller
	recorder *MockBookingQueriesMockRecorder
	isgomock struct{}
}

// MockBookingQueriesMockRecorder is the mock recorder for MockBookingQueries.
type MockBookingQueriesMockRecorder struct {
	mock *MockBookingQueries
}

// NewMockBookingQueries creates a new mock instance.
func NewMockBookingQueries(ctrl *gomock.Controller) *MockBookingQueries {
	mock := &MockBookingQueries{ctrl: ctrl}
	mock.recorder = &MockBookingQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBookingQueries) EXPECT() *MockBookingQueriesMockRecorder {
	return m.recorder
}

// GetByID mocks base method.
func (m *MockBookingQueries) GetByID(ctx context.Context, actor booking.Actor, id uuid.UUID) (*queries.BookingView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, actor, id)
	ret0, _ := ret[0].(*queries.BookingView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockBookingQueriesMockRecorder) GetByID(ctx, actor, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockBookingQueries)(nil).GetByID), ctx, actor, id)
}

// GetByCode mocks base method.
func (m *MockBookingQueries) GetByCode(ctx context.Context, actor booking.Actor, code string) (*queries.BookingView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByCode", ctx, actor, code)
	ret0, _ := ret[0].(*queries.BookingView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByCode indicates an expected call of GetByCode.
func (mr *MockBookingQueriesMockRecorder) GetByCode(ctx, actor, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByCode", reflect.TypeOf((*MockBookingQueries)(nil).GetByCode), ctx, actor, code)
}

// ListByGuest mocks base method.
func (m *MockBookingQueries) ListByGuest(ctx context.Context, actor booking.Actor, cursor *queries.Cursor, limit int) ([]*queries.BookingListItem, *queries.Cursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByGuest", ctx, actor, cursor, limit)
	ret0, _ := ret[0].([]*queries.BookingListItem)
	ret1, _ := ret[1].(*queries.Cursor)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ListByGuest indicates an expected call of ListByGuest.
func (mr *MockBookingQueriesMockRecorder) ListByGuest(ctx, actor, cursor, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByGuest", reflect.TypeOf((*MockBookingQueries)(nil).ListByGuest), ctx, actor, cursor, limit)
}
