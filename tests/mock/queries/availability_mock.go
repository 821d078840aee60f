// Mocks for the interfaces in internal/usecase/queries/availability.go.
// Regenerate with: go generate ./internal/usecase/queries

package queriesmock

import (
	context "context"
	reflect "reflect"
	time "time"

	stay "homestay-booking/internal/domain/stay"
	queries "homestay-booking/internal/usecase/queries"

	uuid "github.com/google/uuid"
	gomock "go.uber.org/mock/gomock"
)

// MockAvailabilityQueries is a mock of AvailabilityQueries interface.
type MockAvailabilityQueries struct {
	ctrl     *gomock.Controller
	recorder *MockAvailabilityQueriesMockRecorder
	isgomock struct{}
}

// MockAvailabilityQueriesMockRecorder is the mock recorder for MockAvailabilityQueries.
type MockAvailabilityQueriesMockRecorder struct {
	mock *MockAvailabilityQueries
}

// NewMockAvailabilityQueries creates a new mock instance.
func NewMockAvailabilityQueries(ctrl *gomock.Controller) *MockAvailabilityQueries {
	mock := &MockAvailabilityQueries{ctrl: ctrl}
	mock.recorder = &MockAvailabilityQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAvailabilityQueries) EXPECT() *MockAvailabilityQueriesMockRecorder {
	return m.recorder
}

// IsRangeAvailable mocks base method.
func (m *MockAvailabilityQueries) IsRangeAvailable(ctx context.Context, propertyID uuid.UUID, rng stay.Range, excludeBookingCode *string) (*queries.RangeAvailability, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsRangeAvailable", ctx, propertyID, rng, excludeBookingCode)
	ret0, _ := ret[0].(*queries.RangeAvailability)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IsRangeAvailable indicates an expected call of IsRangeAvailable.
func (mr *MockAvailabilityQueriesMockRecorder) IsRangeAvailable(ctx, propertyID, rng, excludeBookingCode any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsRangeAvailable", reflect.TypeOf((*MockAvailabilityQueries)(nil).IsRangeAvailable), ctx, propertyID, rng, excludeBookingCode)
}

// GetMonth mocks base method.
func (m *MockAvailabilityQueries) GetMonth(ctx context.Context, propertyID uuid.UUID, year int, month time.Month) (*queries.MonthView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMonth", ctx, propertyID, year, month)
	ret0, _ := ret[0].(*queries.MonthView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetMonth indicates an expected call of GetMonth.
func (mr *MockAvailabilityQueriesMockRecorder) GetMonth(ctx, propertyID, year, month any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMonth", reflect.TypeOf((*MockAvailabilityQueries)(nil).GetMonth), ctx, propertyID, year, month)
}
