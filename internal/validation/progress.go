package validation

import "fmt"

// progressKey is the wire key the progress payload is expected under.
const progressKey = "progress_data_to_check"

// ProgressReport is the minimal shape contract for a progress payload.
// The data itself is opaque to the validator; the deeper scoring logic
// (goal percentages, distribution) lives in the history store, not
// here.
type ProgressReport struct {
	ProgressData map[string]any `json:"progress_data"`
}

// ProgressValidator checks a raw progress-report payload against the
// ProgressReport shape.
type ProgressValidator struct{}

func NewProgressValidator() *ProgressValidator {
	return &ProgressValidator{}
}

// Validate requires the payload under "progress_data_to_check" to be a
// mapping. No semantic numeric rules apply beyond shape.
func (v *ProgressValidator) Validate(input map[string]any) Result {
	raw, ok := input[progressKey]
	if !ok {
		return Result{
			Status:  StatusError,
			Valid:   false,
			Message: fmt.Sprintf("Missing %q key in input data", progressKey),
			Errors:  []string{fmt.Sprintf("No progress data provided under %q", progressKey)},
		}
	}

	data, ok := raw.(map[string]any)
	if !ok {
		return Result{
			Status:  StatusFailed,
			Valid:   false,
			Message: "Progress tracking validation failed",
			Errors:  []string{fmt.Sprintf("progress_data: expected an object, got %s", typeName(raw))},
		}
	}

	report := ProgressReport{ProgressData: data}
	return Result{
		Status:        StatusSuccess,
		Valid:         true,
		Message:       "Progress tracking validation successful",
		ValidatedData: report.ProgressData,
	}
}
