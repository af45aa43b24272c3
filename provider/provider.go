package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	// It must not perform network calls.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from a flat settings mapping.
type Factory[T Provider] func(cfg map[string]any) (T, error)
