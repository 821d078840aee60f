// Mocks for the interfaces in internal/infra/repository/idempotency.go.
// Regenerate with: go generate ./internal/infra/repository

package repositorymock

import (
	context "context"
	reflect "reflect"

	query "homestay-booking/internal/infra/query"

	gomock "go.uber.org/mock/gomock"
)

// MockIdempotencyWriteQueries is a mock of IdempotencyWriteQueries interface.
type MockIdempotencyWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockIdempotencyWriteQueriesMockRecorder
	isgomock struct{}
}

// MockIdempotencyWriteQueriesMockRecorder is the mock recorder for MockIdempotencyWriteQueries.
type MockIdempotencyWriteQueriesMockRecorder struct {
	mock *MockIdempotencyWriteQueries
}

// NewMockIdempotencyWriteQueries creates a new mock instance.
func NewMockIdempotencyWriteQueries(ctrl *gomock.Controller) *MockIdempotencyWriteQueries {
	mock := &MockIdempotencyWriteQueries{ctrl: ctrl}
	mock.recorder = &MockIdempotencyWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIdempotencyWriteQueries) EXPECT() *MockIdempotencyWriteQueriesMockRecorder {
	return m.recorder
}

// InsertIdempotencyKey mocks base method.
func (m *MockIdempotencyWriteQueries) InsertIdempotencyKey(ctx context.Context, db query.DBTX, arg query.InsertIdempotencyKeyParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertIdempotencyKey", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InsertIdempotencyKey indicates an expected call of InsertIdempotencyKey.
func (mr *MockIdempotencyWriteQueriesMockRecorder) InsertIdempotencyKey(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertIdempotencyKey", reflect.TypeOf((*MockIdempotencyWriteQueries)(nil).InsertIdempotencyKey), ctx, db, arg)
}

// ClaimExpiredIdempotencyKey mocks base method.
func (m *MockIdempotencyWriteQueries) ClaimExpiredIdempotencyKey(ctx context.Context, db query.DBTX, arg query.ClaimExpiredIdempotencyKeyParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimExpiredIdempotencyKey", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimExpiredIdempotencyKey indicates an expected call of ClaimExpiredIdempotencyKey.
func (mr *MockIdempotencyWriteQueriesMockRecorder) ClaimExpiredIdempotencyKey(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimExpiredIdempotencyKey", reflect.TypeOf((*MockIdempotencyWriteQueries)(nil).ClaimExpiredIdempotencyKey), ctx, db, arg)
}

// CompleteIdempotencyKey mocks base method.
func (m *MockIdempotencyWriteQueries) CompleteIdempotencyKey(ctx context.Context, db query.DBTX, arg query.CompleteIdempotencyKeyParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CompleteIdempotencyKey", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CompleteIdempotencyKey indicates an expected call of CompleteIdempotencyKey.
func (mr *MockIdempotencyWriteQueriesMockRecorder) CompleteIdempotencyKey(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CompleteIdempotencyKey", reflect.TypeOf((*MockIdempotencyWriteQueries)(nil).CompleteIdempotencyKey), ctx, db, arg)
}
