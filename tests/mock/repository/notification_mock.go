// Mocks for the interfaces in internal/infra/repository/notification.go.
// Regenerate with: go generate ./internal/infra/repository

package repositorymock

import (
	context "context"
	reflect "reflect"

	query "homestay-booking/internal/infra/query"

	gomock "go.uber.org/mock/gomock"
)

// MockNotificationWriteQueries is a mock of NotificationWriteQueries interface.
type MockNotificationWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockNotificationWriteQueriesMockRecorder
	isgomock struct{}
}

// MockNotificationWriteQueriesMockRecorder is the mock recorder for MockNotificationWriteQueries.
type MockNotificationWriteQueriesMockRecorder struct {
	mock *MockNotificationWriteQueries
}

// NewMockNotificationWriteQueries creates a new mock instance.
func NewMockNotificationWriteQueries(ctrl *gomock.Controller) *MockNotificationWriteQueries {
	mock := &MockNotificationWriteQueries{ctrl: ctrl}
	mock.recorder = &MockNotificationWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockNotificationWriteQueries) EXPECT() *MockNotificationWriteQueriesMockRecorder {
	return m.recorder
}

// InsertNotificationJob mocks base method.
func (m *MockNotificationWriteQueries) InsertNotificationJob(ctx context.Context, db query.DBTX, arg query.InsertNotificationJobParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertNotificationJob", ctx, db, arg)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertNotificationJob indicates an expected call of InsertNotificationJob.
func (mr *MockNotificationWriteQueriesMockRecorder) InsertNotificationJob(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertNotificationJob", reflect.TypeOf((*MockNotificationWriteQueries)(nil).InsertNotificationJob), ctx, db, arg)
}
