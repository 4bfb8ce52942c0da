package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/jobboard/internal/form"
	"github.com/justsurfingit/jobboard/internal/snapshot"
	"github.com/rs/zerolog"
)

// Gate validates the fields of one step.
type Gate interface {
	Check(step int, data form.Data) (map[string]string, bool)
}

// Store keeps the snapshot of one tab session. Implementations swallow their
// own failures.
type Store interface {
	Read(ctx context.Context) (snapshot.Body, bool)
	Write(ctx context.Context, body snapshot.Body)
	Clear(ctx context.Context)
}

// Registrar submits a completed signup.
type Registrar interface {
	Register(ctx context.Context, data form.Data) error
}

// Controller drives one wizard instance. It is not safe for concurrent use;
// callers serialize the events of a session.
type Controller struct {
	state     State
	gate      Gate
	store     Store
	registrar Registrar
	log       zerolog.Logger

	// cleared is set once the snapshot has been removed for the current
	// visit to the terminal step.
	cleared   bool
	restoring bool
	observe   func(Action)
}

// Option configures a Controller.
type Option func(*Controller)

// WithRegistrar sets the collaborator called when leaving the last form step.
// Without one the wizard completes without submitting anything.
func WithRegistrar(r Registrar) Option {
	return func(c *Controller) {
		c.registrar = r
	}
}

// WithLogger sets the controller's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// NewController returns a controller in InitialState. Call Mount before
// handling the first event to pick up a stored snapshot.
func NewController(gate Gate, store Store, opts ...Option) *Controller {
	c := &Controller{
		state: InitialState(),
		gate:  gate,
		store: store,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state.Clone()
}

// View renders the current state.
func (c *Controller) View() View {
	return Render(c.state)
}

// Mount restores the stored snapshot, if any, and reports whether it did.
// Fields are restored before the step pointer moves, so the restored step
// never renders without its data. The restored step is clamped to one past
// the highest completed step and never lands on the terminal step.
func (c *Controller) Mount(ctx context.Context) bool {
	c.state = InitialState()
	c.cleared = false

	body, ok := c.store.Read(ctx)
	if !ok {
		return false
	}
	data := snapshot.Decode(body.FormData)
	highest := min(max(body.HighestCompletedStep, 0), StepCount-1)
	current := min(max(body.CurrentStep, 1), highest+1, StepCount-1)

	c.restoring = true
	for _, field := range form.TextFields() {
		if value := data.Get(field); value != "" {
			c.dispatch(ctx, UpdateField{Field: field, Value: value})
		}
	}
	c.dispatch(ctx, SetHighestCompletedStep{Step: highest})
	c.dispatch(ctx, SetStep{Step: current})
	c.restoring = false
	c.persist(ctx)

	c.log.Info().
		Int("step", current).
		Int("highest_completed_step", highest).
		Msg("restored signup wizard")
	return true
}

// FieldChange records a new value for field.
func (c *Controller) FieldChange(ctx context.Context, field string, value any) error {
	if IsTerminal(c.state.CurrentStep) {
		return ErrAlreadyComplete
	}
	c.dispatch(ctx, UpdateField{Field: field, Value: value})
	return nil
}

// ClearError drops the validation message of field.
func (c *Controller) ClearError(ctx context.Context, field string) {
	c.dispatch(ctx, ClearError{Field: field})
}

// Next validates the current step and moves forward on success. On failure
// the step's errors are recorded and ErrValidationFailed is returned.
func (c *Controller) Next(ctx context.Context) error {
	current := c.state.CurrentStep
	if IsTerminal(current) {
		return ErrAlreadyComplete
	}
	if errs, ok := c.gate.Check(current, c.state.FormData); !ok {
		c.dispatch(ctx, SetErrors{Errors: errs})
		return ErrValidationFailed
	}
	return c.advance(ctx, current)
}

// Skip moves forward from an optional step without validating it.
func (c *Controller) Skip(ctx context.Context) error {
	current := c.state.CurrentStep
	if IsTerminal(current) {
		return ErrAlreadyComplete
	}
	if !IsOptional(current) {
		return ErrStepNotSkippable
	}
	return c.advance(ctx, current)
}

// Back moves to the previous step, never below the first. It does not
// validate anything.
func (c *Controller) Back(ctx context.Context) error {
	current := c.state.CurrentStep
	if IsTerminal(current) {
		return ErrAlreadyComplete
	}
	c.dispatch(ctx, SetStep{Step: max(current-1, 1)})
	return nil
}

// Reset discards all progress.
func (c *Controller) Reset(ctx context.Context) {
	c.dispatch(ctx, Reset{})
}

func (c *Controller) advance(ctx context.Context, from int) error {
	to := min(from+1, StepCount)
	if IsTerminal(to) {
		if err := c.submit(ctx); err != nil {
			return err
		}
	}
	c.dispatch(ctx, SetHighestCompletedStep{Step: from})
	c.dispatch(ctx, SetStep{Step: to})
	return nil
}

func (c *Controller) submit(ctx context.Context) error {
	if c.registrar == nil {
		return nil
	}
	c.dispatch(ctx, SetSubmitting{Submitting: true})
	defer c.dispatch(ctx, SetSubmitting{Submitting: false})

	err := c.registrar.Register(ctx, c.state.FormData)
	if err == nil {
		return nil
	}
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		// Show the message on the page that asks for the field.
		if step, ok := StepOf(fieldErr.Field); ok && step != c.state.CurrentStep {
			c.dispatch(ctx, SetStep{Step: step})
		}
		c.dispatch(ctx, SetErrors{Errors: map[string]string{fieldErr.Field: fieldErr.Message}})
	}
	c.log.Warn().Err(err).Msg("signup registration failed")
	return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
}

func (c *Controller) dispatch(ctx context.Context, a Action) {
	c.state = Reduce(c.state, a)
	if c.observe != nil {
		c.observe(a)
	}
	c.log.Debug().
		Str("action", ActionName(a)).
		Int("step", c.state.CurrentStep).
		Msg("wizard dispatch")

	if IsTerminal(c.state.CurrentStep) {
		if !c.cleared {
			c.store.Clear(ctx)
			c.cleared = true
		}
		return
	}
	c.cleared = false
	if !c.restoring {
		c.persist(ctx)
	}
}

func (c *Controller) persist(ctx context.Context) {
	c.store.Write(ctx, snapshot.Body{
		CurrentStep:          c.state.CurrentStep,
		HighestCompletedStep: c.state.HighestCompletedStep,
		FormData:             snapshot.Encode(c.state.FormData),
	})
}
