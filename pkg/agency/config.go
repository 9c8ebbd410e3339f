package agency

import (
	"fmt"
	"slices"
	"strings"
)

// Config controls which operations may leave the privileged boundary.
type Config struct {
	// FallbackOperations lists operations allowed to use the direct-query
	// path when the boundary is unavailable. Empty disables the fallback.
	FallbackOperations []string `env:"FALLBACK_OPERATIONS" envSeparator:","`
}

// Fallback parses FallbackOperations, rejecting unknown names.
func (c Config) Fallback() ([]Operation, error) {
	known := Operations()
	ops := make([]Operation, 0, len(c.FallbackOperations))
	for _, name := range c.FallbackOperations {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		op := Operation(name)
		if !slices.Contains(known, op) {
			return nil, fmt.Errorf("%w: unknown fallback operation %q", ErrInvalidInput, name)
		}
		ops = append(ops, op)
	}
	return ops, nil
}
