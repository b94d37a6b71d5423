package validation

import (
	"fmt"
	"runtime/debug"

	"github.com/rahul/coachd/internal/observability"
	"github.com/rahul/coachd/internal/sanitize"
	"go.uber.org/zap"
)

// genericErrorMessage is the only message a caller ever sees for an
// unexpected failure. Internals are logged, never returned.
const genericErrorMessage = "An error occurred during validation"

// Validator checks one kind of tagged payload.
type Validator interface {
	Validate(input map[string]any) Result
}

// Dispatcher is the single entry point for validation requests. It
// sanitizes input, routes by task, normalizes every outcome into a
// Result, and records metrics and one audit event per call.
type Dispatcher struct {
	plan     Validator
	progress Validator
	metrics  *Metrics
	audit    *observability.AuditLogger
	log      *zap.SugaredLogger
}

func NewDispatcher(metrics *Metrics, audit *observability.AuditLogger, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		plan:     NewPlanValidator(),
		progress: NewProgressValidator(),
		metrics:  metrics,
		audit:    audit,
		log:      log,
	}
}

// Metrics exposes the injected counters for read-only snapshots.
func (d *Dispatcher) Metrics() Snapshot {
	return d.metrics.Snapshot()
}

// Dispatch validates one tagged request. It never panics and never
// leaks internal detail: unexpected failures inside a validator are
// recovered, logged, counted as security violations, and reported with
// a generic message.
func (d *Dispatcher) Dispatch(input map[string]any) Result {
	result := d.dispatch(input)

	d.metrics.record(result.Valid)
	d.audit.Log(observability.Event{
		Type: observability.EventValidation,
		Data: map[string]any{
			"task":   taskTag(input),
			"valid":  result.Valid,
			"status": string(result.Status),
		},
	})
	return result
}

func (d *Dispatcher) dispatch(input map[string]any) Result {
	if input == nil {
		return Result{
			Status:  StatusError,
			Valid:   false,
			Message: "input_data must be a mapping",
		}
	}

	// Sanitize before anything derived from the payload is inspected
	// or echoed.
	sanitized, ok := sanitize.Value(input).(map[string]any)
	if !ok {
		return Result{
			Status:  StatusError,
			Valid:   false,
			Message: "input_data must be a mapping",
		}
	}

	rawTask, ok := sanitized["task"].(string)
	if !ok || rawTask == "" {
		return Result{
			Status:  StatusError,
			Valid:   false,
			Message: "Missing task type in input_data",
		}
	}

	task, ok := ParseTask(rawTask)
	if !ok {
		d.audit.Log(observability.Event{
			Type: observability.EventValidationError,
			Data: map[string]any{"error": "unknown task type", "task": rawTask},
		})
		return Result{
			Status:  StatusError,
			Valid:   false,
			Message: fmt.Sprintf("Unknown task type: %s", rawTask),
		}
	}

	return d.route(task, sanitized)
}

// route runs the validator for the task behind a recover barrier.
func (d *Dispatcher) route(task Task, input map[string]any) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Errorw("validator panic",
				"task", task.String(),
				"panic", r,
				"stack", string(debug.Stack()))
			d.metrics.RecordSecurityViolation()
			d.audit.Log(observability.Event{
				Type: observability.EventValidationError,
				Data: map[string]any{"task": task.String(), "error": "unexpected failure"},
			})
			result = Result{
				Status:  StatusError,
				Valid:   false,
				Message: genericErrorMessage,
			}
		}
	}()

	switch task {
	case TaskValidateWorkoutPlan:
		return d.plan.Validate(input)
	case TaskValidateProgressTracking:
		return d.progress.Validate(input)
	default:
		// Unreachable: ParseTask only returns whitelisted tasks.
		return Result{
			Status:  StatusError,
			Valid:   false,
			Message: fmt.Sprintf("Unknown task type: %s", task),
		}
	}
}

func taskTag(input map[string]any) string {
	if input == nil {
		return ""
	}
	if s, ok := input["task"].(string); ok {
		return sanitize.String(s)
	}
	return ""
}
