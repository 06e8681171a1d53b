package agreement

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	agreements map[uuid.UUID]*Agreement
	updates    int
}

func newMockRepo() *mockRepo {
	return &mockRepo{agreements: make(map[uuid.UUID]*Agreement)}
}

func (m *mockRepo) Create(_ context.Context, a *Agreement) error {
	a.ID = uuid.New()
	cp := *a
	m.agreements[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Agreement, error) {
	a, ok := m.agreements[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, a *Agreement) error {
	if _, ok := m.agreements[a.ID]; !ok {
		return errors.New("not found")
	}
	m.updates++
	cp := *a
	m.agreements[a.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.agreements, id)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Agreement, int, error) {
	var items []*Agreement
	for _, a := range m.agreements {
		if a.PatientID == patientID {
			items = append(items, a)
		}
	}
	return items, len(items), nil
}

func mustCreate(t *testing.T, svc *Service) *Agreement {
	t.Helper()
	a := &Agreement{
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		TreatmentType: "IVF",
		Title:         "IVF treatment consent",
	}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}
	return a
}

func TestSignBothParties(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	a := mustCreate(t, svc)

	got, err := svc.Sign(ctx, a.ID, SignerDoctor)
	if err != nil {
		t.Fatal(err)
	}
	if !got.DoctorSigned || got.PatientSigned {
		t.Fatalf("after doctor sign: doctor=%v patient=%v", got.DoctorSigned, got.PatientSigned)
	}
	if got.DoctorSignedAt == nil {
		t.Error("doctor signature timestamp missing")
	}

	signed, err := svc.FullySigned(ctx, a.ID)
	if err != nil || signed {
		t.Errorf("half-signed agreement reported fully signed (err=%v)", err)
	}

	if _, err := svc.Sign(ctx, a.ID, SignerPatient); err != nil {
		t.Fatal(err)
	}
	signed, err = svc.FullySigned(ctx, a.ID)
	if err != nil || !signed {
		t.Errorf("fully signed agreement reported unsigned (err=%v)", err)
	}
}

func TestSignIsIdempotent(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	a := mustCreate(t, svc)

	first, err := svc.Sign(ctx, a.ID, SignerDoctor)
	if err != nil {
		t.Fatal(err)
	}
	updatesAfterFirst := repo.updates

	// Signing again as the same party succeeds, changes nothing and
	// writes nothing.
	second, err := svc.Sign(ctx, a.ID, SignerDoctor)
	if err != nil {
		t.Fatalf("double sign: %v", err)
	}
	if !second.DoctorSigned {
		t.Error("signature lost on re-sign")
	}
	if !second.DoctorSignedAt.Equal(*first.DoctorSignedAt) {
		t.Error("re-sign moved the signature timestamp")
	}
	if repo.updates != updatesAfterFirst {
		t.Errorf("re-sign wrote %d extra updates", repo.updates-updatesAfterFirst)
	}
}

func TestSignRejectsUnknownSigner(t *testing.T) {
	svc := NewService(newMockRepo())
	a := mustCreate(t, svc)
	if _, err := svc.Sign(context.Background(), a.ID, "witness"); err == nil {
		t.Error("expected error for unknown signer role")
	}
}

func TestUpdateCannotTouchSignatures(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	a := mustCreate(t, svc)

	if _, err := svc.Sign(ctx, a.ID, SignerPatient); err != nil {
		t.Fatal(err)
	}

	upd := *a
	upd.Title = "Amended consent"
	upd.PatientSigned = false
	upd.DoctorSigned = true
	if err := svc.Update(ctx, &upd); err != nil {
		t.Fatal(err)
	}

	stored, _ := svc.Get(ctx, a.ID)
	if stored.Title != "Amended consent" {
		t.Errorf("title = %q, want amended", stored.Title)
	}
	if !stored.PatientSigned || stored.DoctorSigned {
		t.Errorf("update changed signatures: doctor=%v patient=%v", stored.DoctorSigned, stored.PatientSigned)
	}
}
