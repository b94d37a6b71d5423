package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rahul/coachd/internal/validation"
)

// ValidatePlanTool exposes the validation dispatcher to the persona
// agents for workout plans. The agent hands over the structured plan it
// generated; the tool returns the full validation result so the agent
// can repair the plan before answering.
type ValidatePlanTool struct {
	Dispatcher *validation.Dispatcher
}

func NewValidatePlanTool(d *validation.Dispatcher) *ValidatePlanTool {
	return &ValidatePlanTool{Dispatcher: d}
}

func (t *ValidatePlanTool) Name() string {
	return "validate_workout_plan"
}

func (t *ValidatePlanTool) Description() string {
	return "Validates a structured workout plan against the schedule rules (duration bounds, required day and exercise fields). Input is the plan object under 'plan_to_validate'. Returns validation results including whether the plan is valid and any errors or warnings."
}

func (t *ValidatePlanTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"plan_to_validate": map[string]any{
				"type":        "object",
				"description": "The workout plan to validate, with duration_minutes and days.",
			},
		},
		"required": []string{"plan_to_validate"},
	}
}

func (t *ValidatePlanTool) Execute(ctx context.Context, input string) (string, error) {
	var args map[string]any
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	result := t.Dispatcher.Dispatch(map[string]any{
		"task":             "validate_workout_plan",
		"plan_to_validate": args["plan_to_validate"],
	})

	out, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// CheckProgressTool consults the validation dispatcher for a factual
// check on progress data before the analyst reasons about it.
type CheckProgressTool struct {
	Dispatcher *validation.Dispatcher
}

func NewCheckProgressTool(d *validation.Dispatcher) *CheckProgressTool {
	return &CheckProgressTool{Dispatcher: d}
}

func (t *CheckProgressTool) Name() string {
	return "check_progress_data"
}

func (t *CheckProgressTool) Description() string {
	return "Checks whether the provided workout progress data conforms to the expected shape before analysis. Input is the progress data object under 'progress_data'. Returns validation results with 'valid' and any errors."
}

func (t *CheckProgressTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"progress_data": map[string]any{
				"type":        "object",
				"description": "The progress data to check.",
			},
		},
		"required": []string{"progress_data"},
	}
}

func (t *CheckProgressTool) Execute(ctx context.Context, input string) (string, error) {
	var args map[string]any
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	data := args["progress_data"]
	// Tolerate one level of nesting so the tool survives agents that
	// pass the whole request body through.
	if m, ok := data.(map[string]any); ok {
		if inner, ok := m["progress_data"]; ok {
			data = inner
		}
	}

	result := t.Dispatcher.Dispatch(map[string]any{
		"task":                   "validate_progress_tracking",
		"progress_data_to_check": data,
	})

	out, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
