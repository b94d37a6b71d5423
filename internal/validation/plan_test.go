package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(name string, sets float64, reps, instruction string) map[string]any {
	return map[string]any{
		"name":             name,
		"sets":             sets,
		"reps":             reps,
		"instruction_text": instruction,
	}
}

func validPlan() map[string]any {
	return map[string]any{
		"duration_minutes": 30.0,
		"days": []any{
			map[string]any{
				"name": "Day 1 - Full Body",
				"exercises": []any{
					exercise("Push-ups", 10, "10-12", "Keep your core tight."),
					exercise("Squats", 10, "12-15", "Knees tracking over toes."),
					exercise("Plank", 10, "30s hold", "Straight line head to heels."),
				},
			},
		},
	}
}

func TestPlanValidator_ValidPlan(t *testing.T) {
	v := NewPlanValidator()
	result := v.Validate(map[string]any{"plan_to_validate": validPlan()})

	assert.Equal(t, StatusSuccess, result.Status)
	assert.True(t, result.Valid)
	assert.Equal(t, "Workout plan is valid", result.Message)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.NotNil(t, result.ValidatedData)
}

func TestPlanValidator_MissingKey(t *testing.T) {
	v := NewPlanValidator()
	result := v.Validate(map[string]any{"task": "validate_workout_plan"})

	assert.Equal(t, StatusError, result.Status)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, `"plan_to_validate"`)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "No workout plan data provided")
}

func TestPlanValidator_NonObjectPayload(t *testing.T) {
	v := NewPlanValidator()
	result := v.Validate(map[string]any{"plan_to_validate": "just do pushups"})

	assert.Equal(t, StatusFailed, result.Status)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "expected an object, got string")
}

func TestPlanValidator_DurationBounds(t *testing.T) {
	v := NewPlanValidator()

	for _, duration := range []float64{24.9, 20, 35.1, 60} {
		plan := validPlan()
		plan["duration_minutes"] = duration
		result := v.Validate(map[string]any{"plan_to_validate": plan})
		assert.False(t, result.Valid, "duration %v should be rejected", duration)
		assert.Contains(t, result.Errors[0], "Workout duration must be between 25 and 35 minutes")
	}

	// Bounds are inclusive.
	for _, duration := range []float64{25, 35} {
		plan := validPlan()
		plan["duration_minutes"] = duration
		result := v.Validate(map[string]any{"plan_to_validate": plan})
		assert.True(t, result.Valid, "duration %v should be accepted", duration)
	}
}

func TestPlanValidator_DurationErrorMessageFormat(t *testing.T) {
	v := NewPlanValidator()
	plan := validPlan()
	plan["duration_minutes"] = 20.0
	result := v.Validate(map[string]any{"plan_to_validate": plan})

	require.NotEmpty(t, result.Errors)
	assert.Equal(t,
		"Workout duration must be between 25 and 35 minutes, got 20.",
		result.Errors[0])
}

func TestPlanValidator_NoDays(t *testing.T) {
	v := NewPlanValidator()
	plan := map[string]any{"duration_minutes": 30.0, "days": []any{}}
	result := v.Validate(map[string]any{"plan_to_validate": plan})

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Workout plan must contain at least one day.")
}

func TestPlanValidator_AccumulatesAllStructuralErrors(t *testing.T) {
	v := NewPlanValidator()
	plan := map[string]any{
		"duration_minutes": "thirty",
		"days": []any{
			map[string]any{
				"name": 1.0,
				"exercises": []any{
					map[string]any{"name": 2.0, "instruction_text": true},
				},
			},
		},
	}
	result := v.Validate(map[string]any{"plan_to_validate": plan})

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "duration_minutes: expected a number, got string")
	assert.Contains(t, result.Errors, "days[0].name: expected a string, got number")
	assert.Contains(t, result.Errors, "days[0].exercises[0].name: expected a string, got number")
	assert.Contains(t, result.Errors, "days[0].exercises[0].instruction_text: expected a string, got boolean")
	assert.Len(t, result.Errors, 4)
}

func TestPlanValidator_EmptyNamesAndInstructions(t *testing.T) {
	v := NewPlanValidator()
	plan := map[string]any{
		"duration_minutes": 30.0,
		"days": []any{
			map[string]any{
				"name": "",
				"exercises": []any{
					exercise("", 10, "10", ""),
				},
			},
		},
	}
	result := v.Validate(map[string]any{"plan_to_validate": plan})

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Day 1 is missing a name.")
	assert.Contains(t, result.Errors, "Exercise/Rest on Day 1, item 1 is missing a name.")
	assert.Contains(t, result.Errors, "Exercise/Rest '' on Day 1, item 1 is missing 'instruction_text'.")
}

func TestPlanValidator_DayWithoutExercises(t *testing.T) {
	v := NewPlanValidator()
	plan := map[string]any{
		"duration_minutes": 30.0,
		"days": []any{
			map[string]any{"name": "Day 1", "exercises": []any{}},
		},
	}
	result := v.Validate(map[string]any{"plan_to_validate": plan})

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Day 1 must contain at least one exercise or rest period.")
}

func TestPlanValidator_EstimateWarning(t *testing.T) {
	v := NewPlanValidator()
	plan := map[string]any{
		"duration_minutes": 30.0,
		"days": []any{
			map[string]any{
				"name": "Day 1",
				"exercises": []any{
					// 5 sets -> estimated 5 minutes, below the 20 minute floor.
					exercise("Squats", 5, "10", "Slow and controlled."),
				},
			},
		},
	}
	result := v.Validate(map[string]any{"plan_to_validate": plan})

	assert.True(t, result.Valid, "estimate band is advisory only")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t,
		"Estimated total exercise/rest duration (5.0 minutes) is outside the typical 20-35 minute range. Actual plan duration: 30 minutes.",
		result.Warnings[0])
}

func TestPlanValidator_DurationSecondsCountsTowardEstimate(t *testing.T) {
	v := NewPlanValidator()
	plan := map[string]any{
		"duration_minutes": 30.0,
		"days": []any{
			map[string]any{
				"name": "Day 1",
				"exercises": []any{
					map[string]any{
						"name":             "Run",
						"duration_seconds": 1500.0,
						"instruction_text": "Steady pace.",
					},
					exercise("Push-ups", 5, "10", "Full range of motion."),
				},
			},
		},
	}
	result := v.Validate(map[string]any{"plan_to_validate": plan})

	// 1500s + 5*60s = 30 minutes, inside the band.
	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
}

func TestPlanValidator_UnschedulableItemWarning(t *testing.T) {
	v := NewPlanValidator()
	plan := map[string]any{
		"duration_minutes": 30.0,
		"days": []any{
			map[string]any{
				"name": "Day 1",
				"exercises": []any{
					exercise("Push-ups", 25, "10", "Full range of motion."),
					map[string]any{
						"name":             "Stretch",
						"instruction_text": "Hold each stretch.",
					},
				},
			},
		},
	}
	result := v.Validate(map[string]any{"plan_to_validate": plan})

	assert.True(t, result.Valid)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "'Stretch' on Day 1, item 2 has neither a duration nor sets and reps")
}

func TestPlanValidator_RestPeriodsAreItems(t *testing.T) {
	v := NewPlanValidator()
	plan := map[string]any{
		"duration_minutes": 28.0,
		"days": []any{
			map[string]any{
				"name": "Day 1",
				"exercises": []any{
					exercise("Burpees", 12, "8", "Explode up."),
					map[string]any{
						"name":             "Rest",
						"duration_seconds": 600.0,
						"instruction_text": "Breathe and hydrate.",
					},
					exercise("Lunges", 10, "12", "Step long."),
				},
			},
		},
	}
	result := v.Validate(map[string]any{"plan_to_validate": plan})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
}
