package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rahul/coachd/internal/history"
)

// CheckHistoryTool lets an agent inspect the workout history before
// recommending new workouts, so it can suggest recovery instead of
// piling on training days.
type CheckHistoryTool struct {
	Store *history.Store
}

func NewCheckHistoryTool(store *history.Store) *CheckHistoryTool {
	return &CheckHistoryTool{Store: store}
}

func (t *CheckHistoryTool) Name() string {
	return "check_workout_history"
}

func (t *CheckHistoryTool) Description() string {
	return "Checks the user's workout history to determine if rest should be recommended based on consecutive workout days and weekly goal achievement. Use this before recommending new workouts to ensure proper recovery and avoid overtraining."
}

func (t *CheckHistoryTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (t *CheckHistoryTool) Execute(ctx context.Context, input string) (string, error) {
	summary := t.Store.GetSummary()

	warnings := []string{}
	recommendations := []string{}

	if summary.ConsecutiveDays >= summary.MaxConsecutiveDays {
		warnings = append(warnings, fmt.Sprintf(
			"User has worked out %d consecutive days, which equals or exceeds the recommended maximum of %d.",
			summary.ConsecutiveDays, summary.MaxConsecutiveDays))
		recommendations = append(recommendations,
			"Recommend taking a rest day to allow for recovery.")
	}
	if summary.WeeklyCount >= summary.WeeklyGoal {
		recommendations = append(recommendations, fmt.Sprintf(
			"User has reached their weekly goal of %d workouts. Consider suggesting a lighter workout or rest day.",
			summary.WeeklyGoal))
	}

	out, err := json.Marshal(map[string]any{
		"summary":         summary,
		"warnings":        warnings,
		"recommendations": recommendations,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RecordWorkoutTool records a completed workout in the history store.
type RecordWorkoutTool struct {
	Store *history.Store
}

func NewRecordWorkoutTool(store *history.Store) *RecordWorkoutTool {
	return &RecordWorkoutTool{Store: store}
}

func (t *RecordWorkoutTool) Name() string {
	return "record_workout"
}

func (t *RecordWorkoutTool) Description() string {
	return "Records a completed workout in the workout history. workout_type must be one of: strength, yoga, runs. Returns status, warnings and recommendations."
}

func (t *RecordWorkoutTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"workout_type": map[string]any{
				"type":        "string",
				"enum":        []string{"strength", "yoga", "runs"},
				"description": "Type of workout completed.",
			},
		},
		"required": []string{"workout_type"},
	}
}

func (t *RecordWorkoutTool) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		WorkoutType string `json:"workout_type"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	result := t.Store.RecordWorkout(args.WorkoutType, time.Time{})
	out, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
