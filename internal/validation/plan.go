package validation

import (
	"fmt"
	"strconv"
)

// planKey is the wire key the plan payload is expected under.
const planKey = "plan_to_validate"

// Bounds for the declared plan duration and for the estimated total
// exercise time.
const (
	minDurationMinutes = 25
	maxDurationMinutes = 35
	minEstimateMinutes = 20
	maxEstimateMinutes = 35
)

// WorkoutPlan is the structured shape a plan payload must decode into.
type WorkoutPlan struct {
	DurationMinutes float64 `json:"duration_minutes"`
	Days            []Day   `json:"days"`
}

type Day struct {
	Name      string         `json:"name"`
	Exercises []ExerciseItem `json:"exercises"`
}

// ExerciseItem is a single scheduled item. The name may be the literal
// value "Rest". An item is schedulable when it carries either a
// duration or both sets and reps; that rule is advisory and surfaces
// as a warning only.
type ExerciseItem struct {
	Name            string   `json:"name"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	Sets            *float64 `json:"sets,omitempty"`
	Reps            *string  `json:"reps,omitempty"`
	InstructionText string   `json:"instruction_text"`
}

// PlanValidator checks a raw workout-plan payload against the
// WorkoutPlan schema and the numeric plan rules.
type PlanValidator struct{}

func NewPlanValidator() *PlanValidator {
	return &PlanValidator{}
}

// Validate decodes the payload under "plan_to_validate" and evaluates
// the plan rules. Structural violations are accumulated rather than
// failing fast; semantic rules run only when the structure decoded
// cleanly.
func (v *PlanValidator) Validate(input map[string]any) Result {
	raw, ok := input[planKey]
	if !ok {
		return Result{
			Status:  StatusError,
			Valid:   false,
			Message: fmt.Sprintf("Missing %q key in input data", planKey),
			Errors:  []string{fmt.Sprintf("No workout plan data provided under %q", planKey)},
		}
	}

	planMap, ok := raw.(map[string]any)
	if !ok {
		return Result{
			Status:  StatusFailed,
			Valid:   false,
			Message: "Workout validation failed",
			Errors:  []string{fmt.Sprintf("%s: expected an object, got %s", planKey, typeName(raw))},
		}
	}

	plan, errs := decodePlan(planMap)
	var warnings []string
	if len(errs) == 0 {
		errs, warnings = v.applyRules(plan)
	}

	if len(errs) > 0 {
		return Result{
			Status:   StatusFailed,
			Valid:    false,
			Message:  "Workout validation failed",
			Errors:   errs,
			Warnings: warnings,
		}
	}
	return Result{
		Status:        StatusSuccess,
		Valid:         true,
		Message:       "Workout plan is valid",
		Warnings:      warnings,
		ValidatedData: planMap,
	}
}

// applyRules evaluates the semantic plan rules and returns the
// accumulated errors and warnings.
func (v *PlanValidator) applyRules(plan *WorkoutPlan) ([]string, []string) {
	var errs, warnings []string

	if plan.DurationMinutes < minDurationMinutes || plan.DurationMinutes > maxDurationMinutes {
		errs = append(errs, fmt.Sprintf(
			"Workout duration must be between %d and %d minutes, got %s.",
			minDurationMinutes, maxDurationMinutes, formatNumber(plan.DurationMinutes)))
	}

	if len(plan.Days) == 0 {
		errs = append(errs, "Workout plan must contain at least one day.")
	}

	var totalSeconds float64
	for dayIdx, day := range plan.Days {
		if day.Name == "" {
			errs = append(errs, fmt.Sprintf("Day %d is missing a name.", dayIdx+1))
		}
		if len(day.Exercises) == 0 {
			errs = append(errs, fmt.Sprintf(
				"Day %d must contain at least one exercise or rest period.", dayIdx+1))
		}

		for itemIdx, item := range day.Exercises {
			if item.Name == "" {
				errs = append(errs, fmt.Sprintf(
					"Exercise/Rest on Day %d, item %d is missing a name.", dayIdx+1, itemIdx+1))
			}
			if item.InstructionText == "" {
				errs = append(errs, fmt.Sprintf(
					"Exercise/Rest '%s' on Day %d, item %d is missing 'instruction_text'.",
					item.Name, dayIdx+1, itemIdx+1))
			}

			switch {
			case item.DurationSeconds != nil:
				totalSeconds += *item.DurationSeconds
			case item.Sets != nil && item.Reps != nil:
				// Rough estimate: one minute per set.
				totalSeconds += *item.Sets * 60
			default:
				warnings = append(warnings, fmt.Sprintf(
					"Exercise/Rest '%s' on Day %d, item %d has neither a duration nor sets and reps; it cannot be scheduled.",
					item.Name, dayIdx+1, itemIdx+1))
			}
		}
	}

	estimatedMinutes := totalSeconds / 60
	if estimatedMinutes < minEstimateMinutes || estimatedMinutes > maxEstimateMinutes {
		warnings = append(warnings, fmt.Sprintf(
			"Estimated total exercise/rest duration (%.1f minutes) is outside the typical %d-%d minute range. Actual plan duration: %s minutes.",
			estimatedMinutes, minEstimateMinutes, maxEstimateMinutes, formatNumber(plan.DurationMinutes)))
	}

	return errs, warnings
}

// decodePlan coerces the raw map into a WorkoutPlan, collecting every
// structural violation with its schema path instead of stopping at the
// first one.
func decodePlan(m map[string]any) (*WorkoutPlan, []string) {
	var errs []string
	plan := &WorkoutPlan{}

	if raw, ok := m["duration_minutes"]; !ok {
		errs = append(errs, "duration_minutes: field required")
	} else if f, ok := toNumber(raw); ok {
		plan.DurationMinutes = f
	} else {
		errs = append(errs, fmt.Sprintf("duration_minutes: expected a number, got %s", typeName(raw)))
	}

	rawDays, ok := m["days"]
	if !ok {
		errs = append(errs, "days: field required")
		return plan, errs
	}
	daysList, ok := rawDays.([]any)
	if !ok {
		errs = append(errs, fmt.Sprintf("days: expected an array, got %s", typeName(rawDays)))
		return plan, errs
	}

	for i, rawDay := range daysList {
		dayMap, ok := rawDay.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("days[%d]: expected an object, got %s", i, typeName(rawDay)))
			continue
		}
		day, dayErrs := decodeDay(dayMap, fmt.Sprintf("days[%d]", i))
		errs = append(errs, dayErrs...)
		plan.Days = append(plan.Days, day)
	}

	return plan, errs
}

func decodeDay(m map[string]any, path string) (Day, []string) {
	var errs []string
	day := Day{}

	if raw, ok := m["name"]; !ok {
		errs = append(errs, path+".name: field required")
	} else if s, ok := raw.(string); ok {
		day.Name = s
	} else {
		errs = append(errs, fmt.Sprintf("%s.name: expected a string, got %s", path, typeName(raw)))
	}

	rawExercises, ok := m["exercises"]
	if !ok {
		errs = append(errs, path+".exercises: field required")
		return day, errs
	}
	list, ok := rawExercises.([]any)
	if !ok {
		errs = append(errs, fmt.Sprintf("%s.exercises: expected an array, got %s", path, typeName(rawExercises)))
		return day, errs
	}

	for i, rawItem := range list {
		itemMap, ok := rawItem.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("%s.exercises[%d]: expected an object, got %s", path, i, typeName(rawItem)))
			continue
		}
		item, itemErrs := decodeExercise(itemMap, fmt.Sprintf("%s.exercises[%d]", path, i))
		errs = append(errs, itemErrs...)
		day.Exercises = append(day.Exercises, item)
	}

	return day, errs
}

func decodeExercise(m map[string]any, path string) (ExerciseItem, []string) {
	var errs []string
	item := ExerciseItem{}

	if raw, ok := m["name"]; !ok {
		errs = append(errs, path+".name: field required")
	} else if s, ok := raw.(string); ok {
		item.Name = s
	} else {
		errs = append(errs, fmt.Sprintf("%s.name: expected a string, got %s", path, typeName(raw)))
	}

	if raw, ok := m["instruction_text"]; !ok {
		errs = append(errs, path+".instruction_text: field required")
	} else if s, ok := raw.(string); ok {
		item.InstructionText = s
	} else {
		errs = append(errs, fmt.Sprintf("%s.instruction_text: expected a string, got %s", path, typeName(raw)))
	}

	if raw, ok := m["duration_seconds"]; ok && raw != nil {
		if f, ok := toNumber(raw); ok {
			item.DurationSeconds = &f
		} else {
			errs = append(errs, fmt.Sprintf("%s.duration_seconds: expected a number, got %s", path, typeName(raw)))
		}
	}

	if raw, ok := m["sets"]; ok && raw != nil {
		if f, ok := toNumber(raw); ok {
			item.Sets = &f
		} else {
			errs = append(errs, fmt.Sprintf("%s.sets: expected a number, got %s", path, typeName(raw)))
		}
	}

	// reps may arrive as a string ("8-10") or a bare number.
	if raw, ok := m["reps"]; ok && raw != nil {
		switch typed := raw.(type) {
		case string:
			item.Reps = &typed
		default:
			if f, ok := toNumber(raw); ok {
				s := formatNumber(f)
				item.Reps = &s
			} else {
				errs = append(errs, fmt.Sprintf("%s.reps: expected a string or number, got %s", path, typeName(raw)))
			}
		}
	}

	return item, errs
}

func toNumber(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
