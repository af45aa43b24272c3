package provider

import "context"

// Status represents the health status of a provider.
type Status int

const (
	// StatusHealthy indicates the provider is fully operational.
	StatusHealthy Status = iota
	// StatusDegraded indicates the provider can serve requests but has not
	// yet proven it, or has recovered from a failure.
	StatusDegraded
	// StatusUnavailable indicates the provider cannot handle requests.
	StatusUnavailable
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// HealthStatus contains detailed health information for a provider.
type HealthStatus struct {
	// Status is the overall health status.
	Status Status
	// Message is a human-readable description of the health state.
	Message string
	// Details contains additional health metadata.
	Details map[string]any
}

// HealthChecker is optionally implemented by providers that can report
// detailed health beyond the simple IsAvailable() bool check.
type HealthChecker interface {
	Health(ctx context.Context) HealthStatus
}

// LazyHealth derives a HealthStatus from a lazily built client handle:
// healthy once built, unavailable if the last build failed, degraded if no
// build has been attempted.
func LazyHealth[T any](l *Lazy[T]) HealthStatus {
	switch {
	case l.IsInitialized():
		return HealthStatus{Status: StatusHealthy, Message: "client ready"}
	case l.LastError() != nil:
		return HealthStatus{
			Status:  StatusUnavailable,
			Message: "client construction failed",
			Details: map[string]any{"error": l.LastError().Error()},
		}
	default:
		return HealthStatus{Status: StatusDegraded, Message: "client not yet built"}
	}
}
