package treatment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrAgreementRequired means a cycle was created without a treatment
	// agreement attached.
	ErrAgreementRequired = errors.New("treatment cycle requires a treatment agreement")
	// ErrAgreementNotSigned means the attached agreement is missing the
	// doctor's or the patient's signature.
	ErrAgreementNotSigned = errors.New("treatment agreement must be signed by both doctor and patient")
	// ErrCycleFinished means a progress mutation hit a completed or
	// cancelled cycle.
	ErrCycleFinished = errors.New("treatment cycle is already finished")
)

type Service struct {
	cycles     CycleRepository
	agreements AgreementChecker
}

func NewService(cycles CycleRepository, agreements AgreementChecker) *Service {
	return &Service{cycles: cycles, agreements: agreements}
}

// CreateCycle starts a cycle for a patient. The attached agreement must
// already carry both signatures.
func (s *Service) CreateCycle(ctx context.Context, c *TreatmentCycle) error {
	if !ValidType(c.TreatmentType) {
		return fmt.Errorf("unknown treatment type %q", c.TreatmentType)
	}
	if c.PatientID == uuid.Nil || c.DoctorID == uuid.Nil {
		return fmt.Errorf("patient_id and doctor_id are required")
	}
	if c.AgreementID == nil {
		return ErrAgreementRequired
	}
	signed, err := s.agreements.FullySigned(ctx, *c.AgreementID)
	if err != nil {
		return fmt.Errorf("check agreement: %w", err)
	}
	if !signed {
		return ErrAgreementNotSigned
	}

	if c.Status == "" {
		c.Status = StatusPlanned
	}
	if !validCycleStatuses[c.Status] {
		return fmt.Errorf("invalid cycle status %q", c.Status)
	}
	if c.CurrentStep != nil && indexOf(CatalogueFor(c.TreatmentType), *c.CurrentStep) < 0 {
		return fmt.Errorf("step %q is not part of the %s protocol", *c.CurrentStep, c.TreatmentType)
	}
	return s.cycles.Create(ctx, c)
}

func (s *Service) GetCycle(ctx context.Context, id uuid.UUID) (*TreatmentCycle, error) {
	return s.cycles.GetByID(ctx, id)
}

// UpdateCycle applies changes to a cycle. Completed and cancelled are
// terminal: the status of a finished cycle cannot change.
func (s *Service) UpdateCycle(ctx context.Context, c *TreatmentCycle) error {
	existing, err := s.cycles.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if !validCycleStatuses[c.Status] {
		return fmt.Errorf("invalid cycle status %q", c.Status)
	}
	finished := existing.Status == StatusCompleted || existing.Status == StatusCancelled
	if finished && c.Status != existing.Status {
		return ErrCycleFinished
	}
	c.TreatmentType = existing.TreatmentType
	c.PatientID = existing.PatientID
	return s.cycles.Update(ctx, c)
}

func (s *Service) DeleteCycle(ctx context.Context, id uuid.UUID) error {
	return s.cycles.Delete(ctx, id)
}

func (s *Service) SearchCycles(ctx context.Context, params map[string]string, limit, offset int) ([]*TreatmentCycle, int, error) {
	return s.cycles.Search(ctx, params, limit, offset)
}

// State resolves a cycle's step progress. liveIndex, when non-nil, overrides
// the stored current step if it points inside the catalogue.
func (s *Service) State(ctx context.Context, id uuid.UUID, liveIndex *int) (*TreatmentCycle, StepState, error) {
	c, err := s.cycles.GetByID(ctx, id)
	if err != nil {
		return nil, StepState{}, err
	}
	return c, Resolve(CatalogueFor(c.TreatmentType), c, liveIndex), nil
}

// CurrentStepIndex returns the catalogue position of the resolved current
// step, or -1 when the cycle has no determinable current step.
func (s *Service) CurrentStepIndex(ctx context.Context, id uuid.UUID) (int, string, error) {
	c, state, err := s.State(ctx, id, nil)
	if err != nil {
		return 0, "", err
	}
	if state.CurrentStep == "" {
		return -1, "", nil
	}
	return indexOf(CatalogueFor(c.TreatmentType), state.CurrentStep), state.CurrentStep, nil
}

// AdvanceStep completes the resolved current step and moves to the next
// catalogue entry. A cycle with no current step starts at the first entry.
// Advancing past the last entry finishes the cycle.
func (s *Service) AdvanceStep(ctx context.Context, id uuid.UUID) (*TreatmentCycle, error) {
	c, err := s.cycles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == StatusCompleted || c.Status == StatusCancelled {
		return nil, ErrCycleFinished
	}

	catalogue := CatalogueFor(c.TreatmentType)
	state := Resolve(catalogue, c, nil)

	if state.CurrentStep == "" {
		first := catalogue[0].ID
		c.CurrentStep = &first
		c.Status = StatusInProgress
		if c.StartDate == nil {
			now := time.Now().UTC()
			c.StartDate = &now
		}
	} else {
		idx := indexOf(catalogue, state.CurrentStep)
		state.CompletedSteps = appendUnique(state.CompletedSteps, state.CurrentStep)
		c.CompletedSteps = state.CompletedSteps
		if idx+1 < len(catalogue) {
			next := catalogue[idx+1].ID
			c.CurrentStep = &next
			c.Status = StatusInProgress
		} else {
			c.CurrentStep = nil
			c.Status = StatusCompleted
			now := time.Now().UTC()
			c.EndDate = &now
		}
	}

	if err := s.cycles.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
