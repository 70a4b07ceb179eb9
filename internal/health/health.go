// SPDX-License-Identifier: MIT

// Package health provides health and readiness checks for Docker
// HEALTHCHECK and Kubernetes probes.
package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the overall health/readiness status.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the result of one component check.
type CheckResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadinessResponse is the readiness probe body.
type ReadinessResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// Checker is one readiness check.
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// funcChecker adapts a plain function to Checker.
type funcChecker struct {
	name string
	fn   func(ctx context.Context) error
}

// NewChecker wraps fn as a named checker; a nil error is healthy.
func NewChecker(name string, fn func(ctx context.Context) error) Checker {
	return &funcChecker{name: name, fn: fn}
}

func (c *funcChecker) Name() string { return c.name }

func (c *funcChecker) Check(ctx context.Context) CheckResult {
	if err := c.fn(ctx); err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	return CheckResult{Status: StatusHealthy}
}

// Manager runs registered checks for the probe endpoints.
type Manager struct {
	version string

	mu       sync.RWMutex
	checkers []Checker
}

// NewManager creates a health check manager.
func NewManager(version string) *Manager {
	return &Manager{version: version}
}

// RegisterChecker adds a readiness checker.
func (m *Manager) RegisterChecker(c Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers = append(m.checkers, c)
}

// Health reports liveness: the process is up.
func (m *Manager) Health(_ context.Context) HealthResponse {
	return HealthResponse{
		Status:    StatusHealthy,
		Version:   m.version,
		Timestamp: time.Now(),
	}
}

// Ready runs all registered checks. Any unhealthy component makes the whole
// response not ready.
func (m *Manager) Ready(ctx context.Context) ReadinessResponse {
	m.mu.RLock()
	checkers := make([]Checker, len(m.checkers))
	copy(checkers, m.checkers)
	m.mu.RUnlock()

	resp := ReadinessResponse{
		Ready:     true,
		Status:    StatusHealthy,
		Timestamp: time.Now(),
	}

	if len(checkers) == 0 {
		return resp
	}

	resp.Checks = make(map[string]CheckResult, len(checkers))
	for _, c := range checkers {
		result := c.Check(ctx)
		resp.Checks[c.Name()] = result

		switch result.Status {
		case StatusUnhealthy:
			resp.Ready = false
			resp.Status = StatusUnhealthy
		case StatusDegraded:
			if resp.Status == StatusHealthy {
				resp.Status = StatusDegraded
			}
		}
	}

	return resp
}
