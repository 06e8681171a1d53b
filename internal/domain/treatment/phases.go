package treatment

import (
	"fmt"
	"time"
)

// PlanPhase is a suggested calendar block for one protocol phase.
type PlanPhase struct {
	Name         string    `json:"name"`
	DurationDays int       `json:"duration_days"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

type phaseTemplate struct {
	name string
	days int
}

// Durations are the clinic's standard planning defaults, not medical
// predictions; doctors adjust the generated plan per patient.
var ivfPhaseTemplates = []phaseTemplate{
	{"Pre-cycle preparation", 7},
	{"Ovarian stimulation", 10},
	{"Oocyte pickup (OPU)", 1},
	{"Fertilization", 1},
	{"Embryo culture", 5},
	{"Embryo transfer", 1},
	{"Luteal support", 13},
	{"Pregnancy test", 1},
}

var iuiPhaseTemplates = []phaseTemplate{
	{"Baseline assessment", 2},
	{"Ovarian stimulation", 8},
	{"Follicular monitoring", 4},
	{"Ovulation trigger", 1},
	{"Insemination", 1},
	{"Luteal support", 13},
	{"Pregnancy test", 1},
}

// GeneratePhases lays the protocol's phases onto the calendar from a start
// date. Each phase ends at start + duration days; the next phase starts the
// day after the prior one ends.
func GeneratePhases(treatmentType string, startDate time.Time) ([]PlanPhase, error) {
	var templates []phaseTemplate
	switch treatmentType {
	case TypeIVF:
		templates = ivfPhaseTemplates
	case TypeIUI:
		templates = iuiPhaseTemplates
	default:
		return nil, fmt.Errorf("unknown treatment type %q", treatmentType)
	}

	start := startDate.Truncate(24 * time.Hour)
	phases := make([]PlanPhase, 0, len(templates))
	for _, t := range templates {
		end := start.AddDate(0, 0, t.days)
		phases = append(phases, PlanPhase{
			Name:         t.name,
			DurationDays: t.days,
			StartDate:    start,
			EndDate:      end,
		})
		start = end.AddDate(0, 0, 1)
	}
	return phases, nil
}
