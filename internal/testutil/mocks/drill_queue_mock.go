package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessdrill/internal/drill"
	"github.com/vytor/chessdrill/internal/models"
)

// MockDrillQueue is a mock implementation of drill.Queue
type MockDrillQueue struct {
	mock.Mock
}

func (m *MockDrillQueue) EnqueueStart(req drill.StartRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockDrillQueue) EnqueueCheck(sub models.AnswerSubmission, seq uint64) error {
	args := m.Called(sub, seq)
	return args.Error(0)
}

func (m *MockDrillQueue) EnqueueEnd(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

// MockSurface is a mock implementation of drill.Surface
type MockSurface struct {
	mock.Mock
}

func (m *MockSurface) ShowFeedback(text string) {
	m.Called(text)
}

func (m *MockSurface) ShowSummary(text string) {
	m.Called(text)
}

func (m *MockSurface) ShowStats(st drill.Stats) {
	m.Called(st)
}

func (m *MockSurface) DisableEnd() {
	m.Called()
}
