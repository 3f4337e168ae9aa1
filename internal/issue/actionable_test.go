// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load settings"},
			expected: "failed to load settings",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load settings", Resource: "./dynamic_inventory.cfg"},
			expected: "failed to load settings: ./dynamic_inventory.cfg",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "read host descriptor",
				Resource:  "host_vars/web01.yml",
				Cause:     errors.New("yaml: line 2: did not find expected key"),
			},
			expected: "failed to read host descriptor: host_vars/web01.yml: yaml: line 2: did not find expected key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	cause := errors.New("specific error")
	wrapped := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions are bulleted",
			err: &ActionableError{
				Operation:   "load settings",
				Resource:    "dynamic_inventory.cfg",
				Suggestions: []string{"Check JSON syntax", "Run with --verbose"},
			},
			contains: []string{"failed to load settings", "• Check JSON syntax", "• Run with --verbose"},
		},
		{
			name: "no chain without verbose",
			err: &ActionableError{
				Operation: "parse descriptor",
				Cause:     errors.New("syntax error"),
			},
			contains: []string{"failed to parse descriptor: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested chain in verbose mode",
			err: &ActionableError{
				Operation: "build inventory",
				Cause: &ActionableError{
					Operation: "parse descriptor",
					Cause:     errors.New("syntax error"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to parse descriptor: syntax error",
				"2. syntax error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_BuildError(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().
		WithOperation("load settings").
		WithResource("/etc/hostinv/dynamic_inventory.cfg").
		WithSuggestion("Check syntax").
		WithSuggestion("Verify permissions").
		Wrap(errors.New("parse error"))

	var ae *ActionableError
	if !errors.As(ctx.BuildError(), &ae) {
		t.Fatal("BuildError() should return *ActionableError")
	}
	if ae.Operation != "load settings" || ae.Resource != "/etc/hostinv/dynamic_inventory.cfg" {
		t.Errorf("unexpected context: %+v", ae)
	}
	if len(ae.Suggestions) != 2 {
		t.Errorf("Suggestions count = %d, want 2", len(ae.Suggestions))
	}
	if got, want := ae.Format(false), "failed to load settings: /etc/hostinv/dynamic_inventory.cfg: parse error\n\n  • Check syntax\n  • Verify permissions"; got != want {
		t.Errorf("Format(false) = %q, want %q", got, want)
	}

	// Later additions to the builder do not leak into errors already built.
	ctx.WithSuggestion("Run with --verbose")
	if len(ae.Suggestions) != 2 {
		t.Errorf("built error changed after builder reuse: %v", ae.Suggestions)
	}

	if NewErrorContext().WithResource("x").Wrap(errors.New("y")).BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	cause := errors.New("original error")
	err := WrapWithContext(cause, "list host descriptors", "/srv/inventory/host_vars")
	if err == nil {
		t.Fatal("WrapWithContext returned nil")
	}
	if err.Operation != "list host descriptors" || err.Resource != "/srv/inventory/host_vars" {
		t.Errorf("unexpected context: %+v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through errors.Is")
	}

	if WrapWithContext(nil, "x", "y") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
}
