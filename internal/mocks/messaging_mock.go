package mocks

import (
	"context"

	"mood-server/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// MockMailDispatcher is a mock type for the MailDispatcher type
type MockMailDispatcher struct {
	mock.Mock
}

// DispatchVerificationMail provides a mock function with given fields: ctx, mail
func (_m *MockMailDispatcher) DispatchVerificationMail(ctx context.Context, mail messaging.VerificationMail) error {
	ret := _m.Called(ctx, mail)
	return ret.Error(0)
}

// NewMockMailDispatcher creates a new instance of MockMailDispatcher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockMailDispatcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMailDispatcher {
	m := &MockMailDispatcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ messaging.MailDispatcher = (*MockMailDispatcher)(nil)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

// PublishQuestionnaireCompleted provides a mock function with given fields: ctx, event
func (_m *MockEventPublisher) PublishQuestionnaireCompleted(ctx context.Context, event messaging.QuestionnaireCompleted) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ messaging.EventPublisher = (*MockEventPublisher)(nil)
