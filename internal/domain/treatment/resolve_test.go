package treatment

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestResolveLiveIndexWinsWhenInRange(t *testing.T) {
	cycle := &TreatmentCycle{TreatmentType: TypeIVF, CurrentStep: strPtr("step1_stimulation")}
	state := Resolve(ivfSteps, cycle, intPtr(3))

	if state.CurrentStep != "step5_fertilization" {
		t.Fatalf("current = %q, want step5_fertilization", state.CurrentStep)
	}
	want := []string{"step0_pre_cycle_prep", "step1_stimulation", "step4_opu"}
	if !reflect.DeepEqual(state.CompletedSteps, want) {
		t.Errorf("completed = %v, want %v", state.CompletedSteps, want)
	}
}

func TestResolveOutOfRangeLiveIndexFallsBackToStored(t *testing.T) {
	cycle := &TreatmentCycle{TreatmentType: TypeIVF, CurrentStep: strPtr("step1_stimulation")}

	for _, idx := range []int{-1, len(ivfSteps), 99} {
		state := Resolve(ivfSteps, cycle, intPtr(idx))
		if state.CurrentStep != "step1_stimulation" {
			t.Errorf("liveIndex %d: current = %q, want stored step1_stimulation", idx, state.CurrentStep)
		}
	}
}

func TestResolveImplicitCompletionFromCurrentStep(t *testing.T) {
	// A cycle at OPU with nothing recorded as completed still shows every
	// earlier catalogue entry as done.
	cycle := &TreatmentCycle{
		TreatmentType:  TypeIVF,
		CurrentStep:    strPtr("step4_opu"),
		CompletedSteps: []string{},
	}
	state := Resolve(ivfSteps, cycle, nil)

	if state.CurrentStep != "step4_opu" {
		t.Fatalf("current = %q, want step4_opu", state.CurrentStep)
	}
	want := []string{"step0_pre_cycle_prep", "step1_stimulation"}
	if !reflect.DeepEqual(state.CompletedSteps, want) {
		t.Errorf("completed = %v, want %v", state.CompletedSteps, want)
	}

	entries := Timeline(ivfSteps, state)
	for _, e := range entries[3:] {
		if e.Status != StepPending {
			t.Errorf("step %s after current should be pending, got %s", e.Step.ID, e.Status)
		}
	}
}

func TestResolveDropsStoredIdsUnknownToCatalogue(t *testing.T) {
	cycle := &TreatmentCycle{
		TreatmentType:  TypeIVF,
		CompletedSteps: []string{"step1_stimulation", "step_retired_monitoring", "step0_pre_cycle_prep"},
	}
	state := Resolve(ivfSteps, cycle, nil)

	if state.CurrentStep != "" {
		t.Errorf("current = %q, want none", state.CurrentStep)
	}
	// Catalogue order, not stored order; unknown id dropped.
	want := []string{"step0_pre_cycle_prep", "step1_stimulation"}
	if !reflect.DeepEqual(state.CompletedSteps, want) {
		t.Errorf("completed = %v, want %v", state.CompletedSteps, want)
	}
}

func TestResolveStoredCurrentStepNotInCatalogue(t *testing.T) {
	cycle := &TreatmentCycle{TreatmentType: TypeIUI, CurrentStep: strPtr("step4_opu")}
	state := Resolve(iuiSteps, cycle, nil)
	if state.CurrentStep != "" {
		t.Errorf("current = %q, want none for id outside catalogue", state.CurrentStep)
	}
}

func TestTimelineCoversWholeCatalogueOnce(t *testing.T) {
	cycle := &TreatmentCycle{TreatmentType: TypeIUI, CurrentStep: strPtr("step3_trigger")}
	entries := Timeline(iuiSteps, Resolve(iuiSteps, cycle, nil))

	if len(entries) != len(iuiSteps) {
		t.Fatalf("len = %d, want %d", len(entries), len(iuiSteps))
	}
	var currents int
	for i, e := range entries {
		if e.Step.ID != iuiSteps[i].ID {
			t.Errorf("entry %d out of catalogue order", i)
		}
		if e.Status == StepCurrent {
			currents++
		}
	}
	if currents != 1 {
		t.Errorf("timeline has %d current entries, want 1", currents)
	}
}
