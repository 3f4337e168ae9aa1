// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type (
	// ActionableError reports a failed inventory step together with the file
	// or directory it touched and hints for the operator.
	//
	//	failed to <operation>: <resource>: <cause>
	ActionableError struct {
		// Operation is a verb phrase such as "load settings".
		Operation string
		// Resource is the settings file, host_vars directory or descriptor
		// fragment involved. Optional.
		Resource string
		// Suggestions are printed below the message, one bullet each.
		Suggestions []string
		// Cause is the underlying error. Optional.
		Cause error
	}

	// ErrorContext assembles an ActionableError step by step:
	//
	//	return issue.NewErrorContext().
	//		WithOperation("load host descriptor").
	//		WithResource(path).
	//		WithSuggestion("Fix the YAML/JSON syntax of the reported fragment").
	//		Wrap(err).
	//		BuildError()
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext returns an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithContext attaches an operation and resource to err, or returns nil
// when err is nil.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error returns the single-line message without suggestions.
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause so errors.Is and errors.As see through e.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message for the terminal. Suggestions follow after a
// blank line; verbose adds the numbered cause chain.
func (e *ActionableError) Format(verbose bool) string {
	lines := []string{e.Error()}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		for _, s := range e.Suggestions {
			lines = append(lines, "  • "+s)
		}
	}

	if verbose && e.Cause != nil {
		lines = append(lines, "", "Error chain:")
		for i, msg := range causeChain(e.Cause) {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, msg))
		}
	}

	return strings.Join(lines, "\n")
}

func causeChain(err error) []string {
	var chain []string
	for ; err != nil; err = errors.Unwrap(err) {
		chain = append(chain, err.Error())
	}
	return chain
}

// WithOperation sets the failed step.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource sets the path involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends a hint.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sug)
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// BuildError returns the assembled *ActionableError, or a nil error when no
// operation was set. The result does not share state with c.
func (c *ErrorContext) BuildError() error {
	if c.err.Operation == "" {
		return nil
	}
	ae := c.err
	ae.Suggestions = slices.Clone(c.err.Suggestions)
	return &ae
}
