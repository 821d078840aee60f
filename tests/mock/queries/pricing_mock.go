// Mocks for the interfaces in internal/usecase/queries/pricing.go.
// Regenerate with: go generate ./internal/usecase/queries

package queriesmock

import (
	context "context"
	reflect "reflect"

	pricing "homestay-booking/internal/domain/pricing"
	stay "homestay-booking/internal/domain/stay"

	uuid "github.com/google/uuid"
	gomock "go.uber.org/mock/gomock"
)

// MockPricingQueries is a mock of PricingQueries interface.
type MockPricingQueries struct {
	ctrl     *gomock.Controller
	recorder *MockPricingQueriesMockRecorder
	isgomock struct{}
}

// MockPricingQueriesMockRecorder is the mock recorder for MockPricingQueries.
type MockPricingQueriesMockRecorder struct {
	mock *MockPricingQueries
}

// NewMockPricingQueries creates a new mock instance.
func NewMockPricingQueries(ctrl *gomock.Controller) *MockPricingQueries {
	mock := &MockPricingQueries{ctrl: ctrl}
	mock.recorder = &MockPricingQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPricingQueries) EXPECT() *MockPricingQueriesMockRecorder {
	return m.recorder
}

// CalculatePrice mocks base method.
func (m *MockPricingQueries) CalculatePrice(ctx context.Context, propertyID uuid.UUID, rng stay.Range, guests stay.Guests) (*pricing.Breakdown, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CalculatePrice", ctx, propertyID, rng, guests)
	ret0, _ := ret[0].(*pricing.Breakdown)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CalculatePrice indicates an expected call of CalculatePrice.
func (mr *MockPricingQueriesMockRecorder) CalculatePrice(ctx, propertyID, rng, guests any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CalculatePrice", reflect.TypeOf((*MockPricingQueries)(nil).CalculatePrice), ctx, propertyID, rng, guests)
}
