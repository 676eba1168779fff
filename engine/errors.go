package engine

import (
	"fmt"
	"strings"
	"time"
)

type GenerationError struct {
	Path    string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type MultiError struct {
	Errors []*GenerationError
}

func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}

	var msgs []string
	for _, err := range m.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("multiple errors:\n%s", strings.Join(msgs, "\n"))
}

// Unwrap exposes the per-file errors to errors.Is and errors.As.
func (m *MultiError) Unwrap() []error {
	errs := make([]error, len(m.Errors))
	for i, err := range m.Errors {
		errs[i] = err
	}
	return errs
}

// Report lists what a plan execution did to each output path, in plan order.
type Report struct {
	Written  []string
	Skipped  []string
	Failed   []*GenerationError
	Duration time.Duration
}

func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Written = append(r.Written, other.Written...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.Failed = append(r.Failed, other.Failed...)
	r.Duration += other.Duration
}

func (r *Report) String() string {
	return fmt.Sprintf("%d written, %d skipped, %d failed in %s",
		len(r.Written), len(r.Skipped), len(r.Failed), r.Duration.Round(time.Millisecond))
}
