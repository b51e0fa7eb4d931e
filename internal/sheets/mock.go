package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/odonto-flow/internal/model"
)

// MockWriter is a mock implementation of service.ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, title string, consultas []model.Consulta, includeFinancial bool) error
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall records a single call to Write.
type WriteCall struct {
	Error            error
	Title            string
	Consultas        []model.Consulta
	IncludeFinancial bool
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements service.ReportWriter.
func (m *MockWriter) Write(ctx context.Context, title string, consultas []model.Consulta, includeFinancial bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, title, consultas, includeFinancial)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Title:            title,
		Consultas:        consultas,
		IncludeFinancial: includeFinancial,
		Error:            err,
	})

	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to fail every Write with err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, string, []model.Consulta, bool) error {
		return err
	}
}
