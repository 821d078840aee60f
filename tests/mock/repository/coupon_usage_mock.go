// Mocks for the interfaces in internal/infra/repository/coupon_usage.go.
// Regenerate with: go generate ./internal/infra/repository

package repositorymock

import (
	context "context"
	reflect "reflect"
	time "time"

	query "homestay-booking/internal/infra/query"

	uuid "github.com/google/uuid"
	gomock "go.uber.org/mock/gomock"
)

// MockCouponUsageWriteQueries is a mock of CouponUsageWriteQueries interface.
type MockCouponUsageWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockCouponUsageWriteQueriesMockRecorder
	isgomock struct{}
}

// MockCouponUsageWriteQueriesMockRecorder is the mock recorder for MockCouponUsageWriteQueries.
type MockCouponUsageWriteQueriesMockRecorder struct {
	mock *MockCouponUsageWriteQueries
}

// NewMockCouponUsageWriteQueries creates a new mock instance.
func NewMockCouponUsageWriteQueries(ctrl *gomock.Controller) *MockCouponUsageWriteQueries {
	mock := &MockCouponUsageWriteQueries{ctrl: ctrl}
	mock.recorder = &MockCouponUsageWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCouponUsageWriteQueries) EXPECT() *MockCouponUsageWriteQueriesMockRecorder {
	return m.recorder
}

// CountActiveCouponUsages mocks base method.
func (m *MockCouponUsageWriteQueries) CountActiveCouponUsages(ctx context.Context, db query.DBTX, arg query.CouponUserParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountActiveCouponUsages", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountActiveCouponUsages indicates an expected call of CountActiveCouponUsages.
func (mr *MockCouponUsageWriteQueriesMockRecorder) CountActiveCouponUsages(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountActiveCouponUsages", reflect.TypeOf((*MockCouponUsageWriteQueries)(nil).CountActiveCouponUsages), ctx, db, arg)
}

// IncrementCouponUsage mocks base method.
func (m *MockCouponUsageWriteQueries) IncrementCouponUsage(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IncrementCouponUsage", ctx, db, id)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IncrementCouponUsage indicates an expected call of IncrementCouponUsage.
func (mr *MockCouponUsageWriteQueriesMockRecorder) IncrementCouponUsage(ctx, db, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IncrementCouponUsage", reflect.TypeOf((*MockCouponUsageWriteQueries)(nil).IncrementCouponUsage), ctx, db, id)
}

// InsertCouponUsage mocks base method.
func (m *MockCouponUsageWriteQueries) InsertCouponUsage(ctx context.Context, db query.DBTX, arg query.InsertCouponUsageParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertCouponUsage", ctx, db, arg)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertCouponUsage indicates an expected call of InsertCouponUsage.
func (mr *MockCouponUsageWriteQueriesMockRecorder) InsertCouponUsage(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertCouponUsage", reflect.TypeOf((*MockCouponUsageWriteQueries)(nil).InsertCouponUsage), ctx, db, arg)
}

// ReverseCouponUsages mocks base method.
func (m *MockCouponUsageWriteQueries) ReverseCouponUsages(ctx context.Context, db query.DBTX, bookingID uuid.UUID, at time.Time) ([]uuid.UUID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReverseCouponUsages", ctx, db, bookingID, at)
	ret0, _ := ret[0].([]uuid.UUID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReverseCouponUsages indicates an expected call of ReverseCouponUsages.
func (mr *MockCouponUsageWriteQueriesMockRecorder) ReverseCouponUsages(ctx, db, bookingID, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReverseCouponUsages", reflect.TypeOf((*MockCouponUsageWriteQueries)(nil).ReverseCouponUsages), ctx, db, bookingID, at)
}

// DecrementCouponUsage mocks base method.
func (m *MockCouponUsageWriteQueries) DecrementCouponUsage(ctx context.Context, db query.DBTX, id uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DecrementCouponUsage", ctx, db, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DecrementCouponUsage indicates an expected call of DecrementCouponUsage.
func (mr *MockCouponUsageWriteQueriesMockRecorder) DecrementCouponUsage(ctx, db, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DecrementCouponUsage", reflect.TypeOf((*MockCouponUsageWriteQueries)(nil).DecrementCouponUsage), ctx, db, id)
}
