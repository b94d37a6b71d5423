package validation

// Task identifies a validation task. The set is closed; routing in the
// dispatcher switches exhaustively over it so adding a task is a
// compile-time change.
type Task int

const (
	TaskUnknown Task = iota
	TaskValidateWorkoutPlan
	TaskValidateProgressTracking
)

// ParseTask maps a wire-level task tag to a Task. Unknown tags return
// (TaskUnknown, false) and are always rejected by the dispatcher.
func ParseTask(s string) (Task, bool) {
	switch s {
	case "validate_workout_plan":
		return TaskValidateWorkoutPlan, true
	case "validate_progress_tracking":
		return TaskValidateProgressTracking, true
	default:
		return TaskUnknown, false
	}
}

func (t Task) String() string {
	switch t {
	case TaskValidateWorkoutPlan:
		return "validate_workout_plan"
	case TaskValidateProgressTracking:
		return "validate_progress_tracking"
	default:
		return "unknown"
	}
}
