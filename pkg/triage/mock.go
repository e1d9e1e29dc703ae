package triage

import (
	"context"
	"sync"
)

// MockClassifier implements the Classifier interface for testing
type MockClassifier struct {
	mu sync.Mutex

	// Result is returned by Evaluate when set
	Result *Evaluation

	// Err simulates classification failures when set
	Err error

	// EvaluateCallCount tracks how many times Evaluate was called
	EvaluateCallCount int

	// LastRequest tracks the most recent classification request
	LastRequest *Request
}

// NewMockClassifier creates a new mock classifier for testing
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Evaluate records the request and returns the configured result
func (m *MockClassifier) Evaluate(_ context.Context, req *Request) (*Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EvaluateCallCount++
	m.LastRequest = req

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &Evaluation{
		Complexity: ComplexityComplex,
		Confidence: 0.0,
		Reasoning:  "mock evaluation",
	}, nil
}
