// Package wizard implements the multi-step form controller shared by the
// resume builder and the salary negotiator: an ordered list of step
// descriptors, a clamped current-step pointer, one cumulative form, and a
// single-flight submission that ends in a terminal result state.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vedika48/career-compass/internal/flight"
)

// Step describes one wizard step, decoupled from any rendering concern.
type Step struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	RequiredFields []string `json:"required_fields,omitempty"`
}

// Submit errors.
var (
	// ErrNotLastStep is returned when Submit is called before the final step.
	ErrNotLastStep = errors.New("submission is only available on the final step")
	// ErrSubmitInFlight is returned when a submission is already pending;
	// the attempt is dropped, not queued.
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

// SubmitFunc packages the accumulated form and performs the remote call.
type SubmitFunc[R any] func(ctx context.Context, form map[string]any) (*R, error)

// Controller is the generic wizard state machine. Steps are freely
// revisitable; navigation never clears the form.
type Controller[R any] struct {
	steps  []Step
	submit SubmitFunc[R]
	gate   *flight.Gate

	mu      sync.Mutex
	current int // 1-based
	form    map[string]any
	result  *R
	lastErr string
}

// New creates a controller positioned on step 1 with an empty form.
func New[R any](steps []Step, submit SubmitFunc[R]) (*Controller[R], error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("wizard requires at least one step")
	}
	if submit == nil {
		return nil, fmt.Errorf("wizard requires a submit function")
	}
	return &Controller[R]{
		steps:   steps,
		submit:  submit,
		gate:    flight.NewGate(),
		current: 1,
		form:    make(map[string]any),
	}, nil
}

// Steps returns the step descriptors.
func (c *Controller[R]) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// Current returns the 1-based current step index.
func (c *Controller[R]) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// GoToStep moves the pointer to step n, clamped into [1, len(steps)].
// Always allowed regardless of validation state.
func (c *Controller[R]) GoToStep(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.clamp(n)
	return c.current
}

// Next advances one step, clamped at the last step.
func (c *Controller[R]) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.clamp(c.current + 1)
	return c.current
}

// Previous moves back one step, clamped at step 1.
func (c *Controller[R]) Previous() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.clamp(c.current - 1)
	return c.current
}

// UpdateField merges one field into the form. Fields are only ever added or
// replaced, never removed.
func (c *Controller[R]) UpdateField(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form[name] = value
}

// UpdateFields merges several fields at once.
func (c *Controller[R]) UpdateFields(fields map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, value := range fields {
		c.form[name] = value
	}
}

// Field returns a single form value.
func (c *Controller[R]) Field(name string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.form[name]
	return value, ok
}

// Form returns a shallow copy of the accumulated form.
func (c *Controller[R]) Form() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formSnapshot()
}

// Result returns the terminal result, or nil while still editing.
func (c *Controller[R]) Result() *R {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// LastError returns the message of the most recent failed submission.
func (c *Controller[R]) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// FlightState exposes the submission gate state.
func (c *Controller[R]) FlightState() flight.State {
	return c.gate.State()
}

// MissingFields lists the required fields of step n that are still unset or
// empty. Used for completeness reporting; it never gates navigation.
func (c *Controller[R]) MissingFields(n int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	n = c.clamp(n)
	var missing []string
	for _, name := range c.steps[n-1].RequiredFields {
		if isEmpty(c.form[name]) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Submit packages the form and performs the remote call. Only legal from the
// last step, and only while no submission is pending. Success transitions to
// the terminal result state; failure stays on the last step with the message
// recorded.
func (c *Controller[R]) Submit(ctx context.Context) (*R, error) {
	c.mu.Lock()
	if c.current != len(c.steps) {
		c.mu.Unlock()
		return nil, ErrNotLastStep
	}
	form := c.formSnapshot()
	c.mu.Unlock()

	if !c.gate.Begin() {
		return nil, ErrSubmitInFlight
	}

	result, err := c.submit(ctx, form)
	c.gate.Finish(err)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err.Error()
		return nil, err
	}
	c.result = result
	c.lastErr = ""
	return result, nil
}

// Reset clears the result and returns to editing with the form intact,
// enabling edit-and-resubmit. Ignored while a submission is pending.
func (c *Controller[R]) Reset() {
	if c.gate.Pending() {
		return
	}
	c.mu.Lock()
	c.result = nil
	c.lastErr = ""
	c.mu.Unlock()
	c.gate.Reset()
}

func (c *Controller[R]) clamp(n int) int {
	if n < 1 {
		return 1
	}
	if n > len(c.steps) {
		return len(c.steps)
	}
	return n
}

func (c *Controller[R]) formSnapshot() map[string]any {
	out := make(map[string]any, len(c.form))
	for k, v := range c.form {
		out[k] = v
	}
	return out
}

func isEmpty(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case []string:
		return len(value) == 0
	default:
		return false
	}
}
