package engine

import (
	"reflect"

	gomock "github.com/golang/mock/gomock"
)

//go:generate mockgen -write_package_comment=false -package=engine -destination=mock_observer_test.go -source=observer.go Observer

// MockObserver is a hand-maintained double for Observer, shaped the way
// mockgen would generate it (core_suite_test.go's go:generate directive is
// the teacher's grounding for "mock the collaborator interface, not the
// concrete type" — mockgen itself is never invoked, see DESIGN.md).
type MockObserver struct {
	ctrl     *gomock.Controller
	recorder *MockObserverMockRecorder
}

// MockObserverMockRecorder is the recorder for MockObserver.
type MockObserverMockRecorder struct {
	mock *MockObserver
}

// NewMockObserver creates a new mock instance.
func NewMockObserver(ctrl *gomock.Controller) *MockObserver {
	mock := &MockObserver{ctrl: ctrl}
	mock.recorder = &MockObserverMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockObserver) EXPECT() *MockObserverMockRecorder {
	return m.recorder
}

// OnReport mocks base method.
func (m *MockObserver) OnReport(snap Snapshot) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "OnReport", snap)
}

// OnReport indicates an expected call of OnReport.
func (mr *MockObserverMockRecorder) OnReport(snap interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock, "OnReport", reflect.TypeOf((*MockObserver)(nil).OnReport), snap)
}

// OnRefresh mocks base method.
func (m *MockObserver) OnRefresh(snap Snapshot) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OnRefresh", snap)
	stop, _ := ret[0].(bool)
	return stop
}

// OnRefresh indicates an expected call of OnRefresh.
func (mr *MockObserverMockRecorder) OnRefresh(snap interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock, "OnRefresh", reflect.TypeOf((*MockObserver)(nil).OnRefresh), snap)
}

// OnDump mocks base method.
func (m *MockObserver) OnDump(snap Snapshot) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "OnDump", snap)
}

// OnDump indicates an expected call of OnDump.
func (mr *MockObserverMockRecorder) OnDump(snap interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock, "OnDump", reflect.TypeOf((*MockObserver)(nil).OnDump), snap)
}
