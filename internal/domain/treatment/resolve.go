package treatment

// StepState is the reconciled progress of a cycle against its catalogue.
type StepState struct {
	// CurrentStep is the catalogue id of the active step, empty when none
	// could be determined.
	CurrentStep string
	// CompletedSteps holds completed catalogue ids in catalogue order.
	CompletedSteps []string
}

// Timeline entry statuses.
const (
	StepCompleted = "completed"
	StepCurrent   = "current"
	StepPending   = "pending"
)

// TimelineEntry pairs a catalogue step with its resolved status.
type TimelineEntry struct {
	Step   Step   `json:"step"`
	Status string `json:"status"`
	Badge  Badge  `json:"badge"`
}

func indexOf(catalogue []Step, stepID string) int {
	for i, s := range catalogue {
		if s.ID == stepID {
			return i
		}
	}
	return -1
}

// Resolve reconciles a cycle's stored progress with its catalogue.
//
// The current step comes from, in order of preference: a live numeric index
// (used only when it falls inside the catalogue), the cycle's stored current
// step id (used only when the catalogue contains it), and otherwise nothing.
//
// Completed steps are the union of everything positioned before the current
// step and the stored ids that exist in the catalogue. Stored ids unknown to
// the catalogue are dropped. The result lists completed ids in catalogue
// order regardless of stored order.
func Resolve(catalogue []Step, cycle *TreatmentCycle, liveIndex *int) StepState {
	currentIdx := -1
	if liveIndex != nil && *liveIndex >= 0 && *liveIndex < len(catalogue) {
		currentIdx = *liveIndex
	} else if cycle != nil && cycle.CurrentStep != nil {
		currentIdx = indexOf(catalogue, *cycle.CurrentStep)
	}

	completed := make(map[string]bool)
	for i := 0; i < currentIdx; i++ {
		completed[catalogue[i].ID] = true
	}
	if cycle != nil {
		for _, id := range cycle.CompletedSteps {
			if indexOf(catalogue, id) >= 0 {
				completed[id] = true
			}
		}
	}

	st := StepState{}
	if currentIdx >= 0 {
		st.CurrentStep = catalogue[currentIdx].ID
	}
	for _, s := range catalogue {
		if completed[s.ID] {
			st.CompletedSteps = append(st.CompletedSteps, s.ID)
		}
	}
	return st
}

// Timeline projects the resolved state over the full catalogue. Every
// catalogue step appears exactly once; steps neither completed nor current
// are pending.
func Timeline(catalogue []Step, state StepState) []TimelineEntry {
	completed := make(map[string]bool, len(state.CompletedSteps))
	for _, id := range state.CompletedSteps {
		completed[id] = true
	}

	entries := make([]TimelineEntry, 0, len(catalogue))
	for _, s := range catalogue {
		status := StepPending
		switch {
		case s.ID == state.CurrentStep:
			status = StepCurrent
		case completed[s.ID]:
			status = StepCompleted
		}
		entries = append(entries, TimelineEntry{Step: s, Status: status, Badge: BadgeFor(status)})
	}
	return entries
}
