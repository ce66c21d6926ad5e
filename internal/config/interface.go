package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Extensions lists the file extensions (including the dot) this loader
	// understands, e.g. ".hcl".
	Extensions() []string

	// Load reads a single file and returns its values. Every value must be a
	// scalar; see ValidateScalar.
	Load(ctx context.Context, path string) (Values, error)
}
