package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/jobreport/internal/model"
)

// Step is one stage of a report run. A step reads what earlier steps left
// in the report and adds its own results.
type Step interface {
	// Do runs the step against report.
	Do(ctx context.Context, report *model.JobReport) error

	// Name identifies the step in logs, errors and report.PerformedSteps.
	Name() string
}

// StepError names the pipeline step that failed.
type StepError struct {
	// Step is the name of the failed step.
	Step string
	// Err is the error returned by the step.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Pipeline runs steps in the order they were added.
type Pipeline struct {
	steps []Step

	logger *slog.Logger

	// continueOnError keeps running later steps after a failure.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps the pipeline running after a step fails.
// Steps that need the output of a failed step fail in turn with their own
// error.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends several steps, keeping their order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step in sequence. Cancellation is checked between
// steps; a running step is never interrupted.
//
// A failure is recorded in report.Error as a *StepError. Only steps that
// succeed are appended to report.PerformedSteps. Without continueOnError
// the first failure is returned at once; with it, all steps run and the
// last failure is returned.
func (p *Pipeline) Execute(ctx context.Context, report *model.JobReport) error {
	var lastErr error

	p.logger.Debug("pipeline started", "steps", p.StepCount(), "continue_on_error", p.continueOnError)
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
			return p.fail(report, step, err)
		}

		if err := p.run(ctx, step, report); err != nil {
			lastErr = p.fail(report, step, err)
			if !p.continueOnError {
				return lastErr
			}
			continue
		}
		report.PerformedSteps = append(report.PerformedSteps, step.Name())
	}

	return lastErr
}

// run executes a single step and logs its outcome and duration.
func (p *Pipeline) run(ctx context.Context, step Step, report *model.JobReport) error {
	p.logger.Info("executing step", "step", step.Name(), "dataset", report.Dataset)

	start := time.Now()
	err := step.Do(ctx, report)
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		p.logger.Error("step failed", "step", step.Name(), "elapsed", elapsed, "error", err)
		return err
	}
	p.logger.Debug("step completed", "step", step.Name(), "elapsed", elapsed)
	return nil
}

// fail records err against step in report and returns it as a *StepError.
func (p *Pipeline) fail(report *model.JobReport, step Step, err error) error {
	stepErr := &StepError{Step: step.Name(), Err: err}
	report.Error = stepErr
	report.ErrorMessage = stepErr.Error()
	return stepErr
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
