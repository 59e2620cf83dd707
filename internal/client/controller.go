package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/simphiwe/guesthouse/internal/draft"
	"github.com/simphiwe/guesthouse/internal/form"
)

// =============================================================================
// States and Notifications
// =============================================================================

// State is the controller's position in the submission lifecycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Level classifies a notification, mirroring the site's toast styles.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier receives user-facing notifications. A UI shows them as
// toasts; the CLI prints them; tests capture them.
type Notifier interface {
	Notify(level Level, message string)
}

// Submitter performs the actual submission. Satisfied by *Client.
type Submitter interface {
	Submit(ctx context.Context, rec form.Record) (Response, error)
}

var (
	// ErrSubmitInFlight is returned when Submit is called while a
	// previous submission has not finished. The UI equivalent is the
	// disabled submit button.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrValidationFailed is returned when submission is blocked by
	// invalid fields. Per-field details are in Results.
	ErrValidationFailed = errors.New("form has validation errors")
)

// =============================================================================
// Controller
// =============================================================================

// Controller drives one form instance through
// Idle -> Validating -> Submitting -> {Succeeded, Failed} -> Idle.
//
// Field edits persist to the draft store so an abandoned form survives
// a restart; the draft is cleared only on successful submission. Each
// controller owns its own state; nothing is shared across forms.
type Controller struct {
	def       form.Definition
	store     draft.Store
	submitter Submitter
	notifier  Notifier
	logger    *slog.Logger

	mu      sync.Mutex
	state   State
	fields  map[string]string
	results map[string]form.Result
}

// NewController creates a controller for one form definition.
func NewController(def form.Definition, store draft.Store, submitter Submitter, notifier Notifier, logger *slog.Logger) *Controller {
	return &Controller{
		def:       def,
		store:     store,
		submitter: submitter,
		notifier:  notifier,
		logger:    logger,
		state:     StateIdle,
		fields:    make(map[string]string),
		results:   make(map[string]form.Result),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Field returns the current value of a field.
func (c *Controller) Field(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields[name]
}

// Results returns a copy of the per-field validation results from the
// most recent validation activity.
func (c *Controller) Results() map[string]form.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]form.Result, len(c.results))
	for k, v := range c.results {
		out[k] = v
	}
	return out
}

// SetField records a field edit and persists the draft. A field that
// already shows an error is revalidated immediately so the error goes
// away as the user fixes it.
func (c *Controller) SetField(ctx context.Context, name, value string) error {
	spec, ok := c.def.Spec(name)
	if !ok {
		return fmt.Errorf("form %q has no field %q", c.def.ID, name)
	}

	c.mu.Lock()
	c.fields[name] = value
	if res, seen := c.results[name]; seen && !res.Valid {
		c.results[name] = form.Validate(spec.Type, value, spec.Required)
	}
	rec := c.recordLocked()
	c.mu.Unlock()

	if err := c.store.Save(ctx, c.def.ID, rec); err != nil {
		c.logger.Warn("failed to save draft", "form_id", c.def.ID, "error", err)
	}
	return nil
}

// Touch validates a single field, the blur-event equivalent.
func (c *Controller) Touch(name string) (form.Result, error) {
	spec, ok := c.def.Spec(name)
	if !ok {
		return form.Result{}, fmt.Errorf("form %q has no field %q", c.def.ID, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	res := form.Validate(spec.Type, c.fields[name], spec.Required)
	c.results[name] = res
	return res, nil
}

// Restore loads a saved draft into the field set. A missing or
// corrupted draft leaves the form empty.
func (c *Controller) Restore(ctx context.Context) error {
	rec, ok, err := c.store.Load(ctx, c.def.ID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, spec := range c.def.Fields {
		if v, present := rec.Fields[spec.Name]; present {
			c.fields[spec.Name] = v
		}
	}
	return nil
}

// Submit validates every field and, when all pass, performs exactly one
// submission. Validation failure surfaces a notification and makes no
// network call; submission failure keeps the field values and the draft
// so retrying is cheap.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}

	c.state = StateValidating
	if !c.validateAllLocked() {
		c.state = StateIdle
		c.mu.Unlock()
		c.notifier.Notify(LevelError, validationFailedMessage(c.def.Type))
		return ErrValidationFailed
	}

	rec := c.recordLocked()
	c.state = StateSubmitting
	c.mu.Unlock()

	resp, err := c.submitter.Submit(ctx, rec)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateFailed
		c.notifier.Notify(LevelError, failureMessage(c.def.Type, err))
		c.state = StateIdle
		return fmt.Errorf("submission failed: %w", err)
	}

	c.state = StateSucceeded
	c.logger.Info("form submitted",
		"form_id", c.def.ID,
		"message_id", resp.MessageID,
	)
	c.notifier.Notify(LevelSuccess, successMessage(c.def.Type))

	// Reset the form and drop the draft; this submission is done.
	c.fields = make(map[string]string)
	c.results = make(map[string]form.Result)
	if err := c.store.Clear(ctx, c.def.ID); err != nil {
		c.logger.Warn("failed to clear draft", "form_id", c.def.ID, "error", err)
	}

	c.state = StateIdle
	return nil
}

// =============================================================================
// Internal Methods
// =============================================================================

// validateAllLocked runs the field validator over every field, not just
// the first failing one, so all errors surface at once. Booking forms
// additionally enforce checkout-after-checkin.
func (c *Controller) validateAllLocked() bool {
	valid := true
	for _, spec := range c.def.Fields {
		res := form.Validate(spec.Type, c.fields[spec.Name], spec.Required)
		c.results[spec.Name] = res
		if !res.Valid {
			valid = false
		}
	}

	if c.def.Type == form.TypeBooking {
		if res := form.ValidateStayDates(c.fields["checkin"], c.fields["checkout"]); !res.Valid {
			c.results["checkout"] = res
			valid = false
		}
	}
	return valid
}

// recordLocked snapshots the current field values as a record. Every
// defined field is included, so an unselected choice group persists as
// an empty string rather than disappearing.
func (c *Controller) recordLocked() form.Record {
	rec := form.NewRecord(c.def.Type)
	for _, spec := range c.def.Fields {
		rec.Set(spec.Name, c.fields[spec.Name])
	}
	return rec
}

// =============================================================================
// Notification Copy
// =============================================================================

func validationFailedMessage(t form.Type) string {
	if t == form.TypeReview {
		return "Please complete all required fields before submitting"
	}
	return "Please fix the errors in the form before submitting"
}

func successMessage(t form.Type) string {
	if t == form.TypeReview {
		return "Thank you for your review! Your feedback helps us improve our service."
	}
	return "Booking request sent successfully! We'll contact you within 24 hours."
}

func failureMessage(t form.Type, err error) string {
	if t == form.TypeReview {
		return fmt.Sprintf("Failed to send review. Please try again or email us directly. (Error: %v)", err)
	}
	return fmt.Sprintf("Failed to send booking request. Please try again or call us directly. (Error: %v)", err)
}
