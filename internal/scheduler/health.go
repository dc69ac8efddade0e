package scheduler

import (
	"sync"
	"time"
)

// HealthStatus represents the health of a component.
type HealthStatus struct {
	Healthy     bool      `json:"healthy"`
	LastCheck   time.Time `json:"last_check"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	LastError   error     `json:"-"`
	Message     string    `json:"message"`
}

// Health tracks the health of named components.
type Health struct {
	mu         sync.RWMutex
	components map[string]*HealthStatus
}

// NewHealth creates a new health tracker.
func NewHealth() *Health {
	return &Health{
		components: make(map[string]*HealthStatus),
	}
}

// SetHealthy marks a component as healthy.
func (h *Health) SetHealthy(component, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	st := h.component(component)
	st.Healthy = true
	st.LastCheck = now
	st.LastSuccess = now
	st.LastError = nil
	st.Message = message
}

// SetUnhealthy marks a component as unhealthy.
func (h *Health) SetUnhealthy(component string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// LastSuccess keeps the time of the last healthy report
	st := h.component(component)
	st.Healthy = false
	st.LastCheck = time.Now()
	st.LastError = err
	st.Message = err.Error()
}

// component returns the entry for name, creating it. Callers hold mu.
func (h *Health) component(name string) *HealthStatus {
	st, ok := h.components[name]
	if !ok {
		st = &HealthStatus{}
		h.components[name] = st
	}
	return st
}

// GetStatus returns a copy of the status of a component, or nil.
func (h *Health) GetStatus(component string) *HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if status, exists := h.components[component]; exists {
		// Return a copy to avoid race conditions
		cp := *status
		return &cp
	}
	return nil
}

// GetAllStatuses returns copies of all component statuses.
func (h *Health) GetAllStatuses() map[string]*HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make(map[string]*HealthStatus, len(h.components))
	for name, status := range h.components {
		// Copies, as in GetStatus
		cp := *status
		result[name] = &cp
	}
	return result
}

// IsOverallHealthy returns true if all components are healthy.
func (h *Health) IsOverallHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	// An empty tracker is healthy
	for _, status := range h.components {
		if !status.Healthy {
			return false
		}
	}
	return true
}
