// Package mocks provides shared test doubles for bridgematrix packages.
package mocks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

// Executor implements executor.Executor for testing.
// Exit codes are scripted per case key; unscripted cases succeed.
type Executor struct {
	codes map[model.Key]int

	// ExecFunc, when set, replaces the scripted behavior.
	ExecFunc func(ctx context.Context, tc model.TestCase) model.ExecutionResult

	// Execution tracking (thread-safe)
	execCount int32
	mu        sync.Mutex
	execOrder []model.Key
	cases     []model.TestCase
}

// NewExecutor creates a mock executor where every case succeeds.
func NewExecutor() *Executor {
	return &Executor{codes: make(map[model.Key]int)}
}

// WithExitCode scripts the exit code returned for key.
func (m *Executor) WithExitCode(key model.Key, code int) *Executor {
	m.codes[key] = code
	return m
}

// WithExecFunc sets the function called by Execute.
func (m *Executor) WithExecFunc(fn func(ctx context.Context, tc model.TestCase) model.ExecutionResult) *Executor {
	m.ExecFunc = fn
	return m
}

// Execute records the call and returns the scripted result.
func (m *Executor) Execute(ctx context.Context, tc model.TestCase) model.ExecutionResult {
	atomic.AddInt32(&m.execCount, 1)
	m.mu.Lock()
	m.execOrder = append(m.execOrder, tc.Key)
	m.cases = append(m.cases, tc)
	m.mu.Unlock()

	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, tc)
	}

	code := m.codes[tc.Key]
	return model.ExecutionResult{
		Case:     tc,
		ExitCode: code,
		Success:  code == 0,
		Attempts: 1,
	}
}

// Test inspection methods

// ExecCount returns the number of times Execute was called.
func (m *Executor) ExecCount() int32 {
	return atomic.LoadInt32(&m.execCount)
}

// ExecOrder returns the keys in the order Execute was called.
func (m *Executor) ExecOrder() []model.Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Key, len(m.execOrder))
	copy(result, m.execOrder)
	return result
}

// Cases returns the test cases passed to Execute, in call order.
func (m *Executor) Cases() []model.TestCase {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.TestCase, len(m.cases))
	copy(result, m.cases)
	return result
}

// CallsFor returns how many times key was executed.
func (m *Executor) CallsFor(key model.Key) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, k := range m.execOrder {
		if k == key {
			n++
		}
	}
	return n
}

// Reset clears execution tracking state.
func (m *Executor) Reset() {
	atomic.StoreInt32(&m.execCount, 0)
	m.mu.Lock()
	m.execOrder = nil
	m.cases = nil
	m.mu.Unlock()
}
