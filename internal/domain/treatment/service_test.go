package treatment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type mockCycleRepo struct {
	cycles map[uuid.UUID]*TreatmentCycle
}

func newMockCycleRepo() *mockCycleRepo {
	return &mockCycleRepo{cycles: make(map[uuid.UUID]*TreatmentCycle)}
}

func (m *mockCycleRepo) Create(_ context.Context, c *TreatmentCycle) error {
	c.ID = uuid.New()
	cp := *c
	m.cycles[c.ID] = &cp
	return nil
}

func (m *mockCycleRepo) GetByID(_ context.Context, id uuid.UUID) (*TreatmentCycle, error) {
	c, ok := m.cycles[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *c
	return &cp, nil
}

func (m *mockCycleRepo) Update(_ context.Context, c *TreatmentCycle) error {
	if _, ok := m.cycles[c.ID]; !ok {
		return errors.New("not found")
	}
	cp := *c
	m.cycles[c.ID] = &cp
	return nil
}

func (m *mockCycleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.cycles, id)
	return nil
}

func (m *mockCycleRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*TreatmentCycle, int, error) {
	var items []*TreatmentCycle
	for _, c := range m.cycles {
		if s, ok := params["status"]; ok && c.Status != s {
			continue
		}
		items = append(items, c)
	}
	return items, len(items), nil
}

type mockAgreementChecker struct {
	signed map[uuid.UUID]bool
}

func (m *mockAgreementChecker) FullySigned(_ context.Context, id uuid.UUID) (bool, error) {
	signed, ok := m.signed[id]
	if !ok {
		return false, errors.New("agreement not found")
	}
	return signed, nil
}

func newTestService() (*Service, *mockCycleRepo, *mockAgreementChecker) {
	repo := newMockCycleRepo()
	checker := &mockAgreementChecker{signed: make(map[uuid.UUID]bool)}
	return NewService(repo, checker), repo, checker
}

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func TestCreateCycleRequiresSignedAgreement(t *testing.T) {
	svc, _, checker := newTestService()
	ctx := context.Background()

	base := TreatmentCycle{
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		TreatmentType: TypeIVF,
	}

	c := base
	if err := svc.CreateCycle(ctx, &c); !errors.Is(err, ErrAgreementRequired) {
		t.Errorf("no agreement: err = %v, want ErrAgreementRequired", err)
	}

	halfSigned := uuid.New()
	checker.signed[halfSigned] = false
	c = base
	c.AgreementID = uuidPtr(halfSigned)
	if err := svc.CreateCycle(ctx, &c); !errors.Is(err, ErrAgreementNotSigned) {
		t.Errorf("unsigned agreement: err = %v, want ErrAgreementNotSigned", err)
	}

	signed := uuid.New()
	checker.signed[signed] = true
	c = base
	c.AgreementID = uuidPtr(signed)
	if err := svc.CreateCycle(ctx, &c); err != nil {
		t.Fatalf("signed agreement: %v", err)
	}
	if c.Status != StatusPlanned {
		t.Errorf("status = %q, want default %q", c.Status, StatusPlanned)
	}
}

func TestCreateCycleRejectsUnknownType(t *testing.T) {
	svc, _, _ := newTestService()
	c := TreatmentCycle{PatientID: uuid.New(), DoctorID: uuid.New(), TreatmentType: "FET"}
	if err := svc.CreateCycle(context.Background(), &c); err == nil {
		t.Error("expected error for unknown treatment type")
	}
}

func mustCreateCycle(t *testing.T, svc *Service, checker *mockAgreementChecker, typ string) *TreatmentCycle {
	t.Helper()
	agreementID := uuid.New()
	checker.signed[agreementID] = true
	c := &TreatmentCycle{
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		AgreementID:   uuidPtr(agreementID),
		TreatmentType: typ,
	}
	if err := svc.CreateCycle(context.Background(), c); err != nil {
		t.Fatalf("create cycle: %v", err)
	}
	return c
}

func TestAdvanceStepWalksTheCatalogue(t *testing.T) {
	svc, _, checker := newTestService()
	ctx := context.Background()
	c := mustCreateCycle(t, svc, checker, TypeIUI)

	// First advance starts the cycle at the first catalogue entry.
	got, err := svc.AdvanceStep(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentStep == nil || *got.CurrentStep != iuiSteps[0].ID {
		t.Fatalf("current = %v, want %s", got.CurrentStep, iuiSteps[0].ID)
	}
	if got.Status != StatusInProgress {
		t.Errorf("status = %q, want in-progress", got.Status)
	}
	if got.StartDate == nil {
		t.Error("start date should be stamped on first advance")
	}

	for i := 1; i < len(iuiSteps); i++ {
		got, err = svc.AdvanceStep(ctx, c.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.CurrentStep == nil || *got.CurrentStep != iuiSteps[i].ID {
			t.Fatalf("advance %d: current = %v, want %s", i, got.CurrentStep, iuiSteps[i].ID)
		}
	}

	// Advancing past the final step finishes the cycle.
	got, err = svc.AdvanceStep(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusCompleted || got.CurrentStep != nil {
		t.Errorf("after final advance: status = %q current = %v, want completed/none", got.Status, got.CurrentStep)
	}
	if got.EndDate == nil {
		t.Error("end date should be stamped on completion")
	}
	if len(got.CompletedSteps) != len(iuiSteps) {
		t.Errorf("completed %d steps, want %d", len(got.CompletedSteps), len(iuiSteps))
	}

	if _, err := svc.AdvanceStep(ctx, c.ID); !errors.Is(err, ErrCycleFinished) {
		t.Errorf("advance on finished cycle: err = %v, want ErrCycleFinished", err)
	}
}

func TestUpdateCycleTerminalStatusIsSticky(t *testing.T) {
	svc, repo, checker := newTestService()
	ctx := context.Background()
	c := mustCreateCycle(t, svc, checker, TypeIVF)

	stored := repo.cycles[c.ID]
	stored.Status = StatusCancelled

	upd := *c
	upd.Status = StatusInProgress
	if err := svc.UpdateCycle(ctx, &upd); !errors.Is(err, ErrCycleFinished) {
		t.Errorf("err = %v, want ErrCycleFinished", err)
	}

	// Re-saving with the same terminal status is fine.
	upd.Status = StatusCancelled
	if err := svc.UpdateCycle(ctx, &upd); err != nil {
		t.Errorf("same-status update: %v", err)
	}
}

func TestCurrentStepIndex(t *testing.T) {
	svc, repo, checker := newTestService()
	ctx := context.Background()
	c := mustCreateCycle(t, svc, checker, TypeIVF)

	idx, stepID, err := svc.CurrentStepIndex(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if idx != -1 || stepID != "" {
		t.Errorf("fresh cycle: index = %d step = %q, want -1/none", idx, stepID)
	}

	step := "step4_opu"
	repo.cycles[c.ID].CurrentStep = &step
	idx, stepID, err = svc.CurrentStepIndex(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 2 || stepID != "step4_opu" {
		t.Errorf("index = %d step = %q, want 2/step4_opu", idx, stepID)
	}
}
