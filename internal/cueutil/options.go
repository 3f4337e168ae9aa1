// SPDX-License-Identifier: MPL-2.0

package cueutil

// MaxFileSize is the largest settings document accepted (5MB).
const MaxFileSize int64 = 5 * 1024 * 1024

type (
	// validateOptions holds configuration for schema validation.
	validateOptions struct {
		concrete bool
		filename string
	}

	// Option configures validation behavior.
	Option func(*validateOptions)
)

func defaultOptions() validateOptions {
	return validateOptions{
		concrete: true,
		filename: "",
	}
}

// WithConcrete sets whether all values must be concrete after unification.
// Default is true.
//
// Set to false for settings documents where every field is optional.
func WithConcrete(concrete bool) Option {
	return func(o *validateOptions) {
		o.concrete = concrete
	}
}

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *validateOptions) {
		o.filename = name
	}
}
