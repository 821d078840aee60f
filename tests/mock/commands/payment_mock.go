// Mocks for the interfaces in internal/usecase/commands/payment.go.
// Regenerate with: go generate ./internal/usecase/commands

package commandsmock

import (
	context "context"
	reflect "reflect"

	commands "homestay-booking/internal/usecase/commands"

	gomock "go.uber.org/mock/gomock"
)

// MockPaymentCommands is a mock of PaymentCommands interface.
type MockPaymentCommands struct {
	ctrl     *gomock.Controller
	recorder *MockPaymentCommandsMockRecorder
	isgomock struct{}
}

// MockPaymentCommandsMockRecorder is the mock recorder for MockPaymentCommands.
type MockPaymentCommandsMockRecorder struct {
	mock *MockPaymentCommands
}

// NewMockPaymentCommands creates a new mock instance.
func NewMockPaymentCommands(ctrl *gomock.Controller) *MockPaymentCommands {
	mock := &MockPaymentCommands{ctrl: ctrl}
	mock.recorder = &MockPaymentCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPaymentCommands) EXPECT() *MockPaymentCommandsMockRecorder {
	return m.recorder
}

// OnPaymentResult mocks base method.
func (m *MockPaymentCommands) OnPaymentResult(ctx context.Context, res commands.PaymentResult) (*commands.PaymentReceipt, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OnPaymentResult", ctx, res)
	ret0, _ := ret[0].(*commands.PaymentReceipt)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// OnPaymentResult indicates an expected call of OnPaymentResult.
func (mr *MockPaymentCommandsMockRecorder) OnPaymentResult(ctx, res any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OnPaymentResult", reflect.TypeOf((*MockPaymentCommands)(nil).OnPaymentResult), ctx, res)
}
