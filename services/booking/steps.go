package booking

import "sparklean/models"

// Step names a wizard page. Steps only advance on valid input; navigating back
// never wipes later fields unless a forward field becomes inconsistent.
type Step string

const (
	StepService  Step = "service"
	StepDetails  Step = "details"
	StepSchedule Step = "schedule"
	StepCleaner  Step = "cleaner"
	StepReview   Step = "review"
)

// EarliestIncompleteStep returns the first wizard step whose prerequisite
// fields are missing from the draft. Pages verify this on mount and redirect.
func EarliestIncompleteStep(d *models.BookingDraft) Step {
	switch {
	case !d.HasService():
		return StepService
	case !d.HasDetails():
		return StepDetails
	case !d.HasSchedule():
		return StepSchedule
	default:
		return StepReview
	}
}

// requireStep guards a step mutation: every step before it must be complete.
func requireStep(d *models.BookingDraft, step Step) error {
	earliest := EarliestIncompleteStep(d)
	if stepOrder(earliest) < stepOrder(step) {
		return NewIncompleteStep(earliest)
	}
	return nil
}

func stepOrder(s Step) int {
	switch s {
	case StepService:
		return 0
	case StepDetails:
		return 1
	case StepSchedule:
		return 2
	case StepCleaner:
		return 3
	default:
		return 4
	}
}
