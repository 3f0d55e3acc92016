package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/errs"
)

type Service struct {
	patients PatientRepository
	now      func() time.Time
}

func NewService(patients PatientRepository) *Service {
	return &Service{patients: patients, now: time.Now}
}

// Create registers the caller as a patient. Callers may only onboard
// themselves and hold at most one patient profile.
func (s *Service) Create(ctx context.Context, callerID string, in CreateInput) (*Patient, error) {
	if in.UserID != callerID {
		return nil, errs.ErrUnauthorized
	}
	if dob, err := time.Parse(time.DateOnly, in.DateOfBirth); err == nil && dob.After(s.now()) {
		return nil, errs.Validation("dateOfBirth", "dateOfBirth must not be in the future")
	}
	existing, err := s.patients.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("patient profile for user %s: %w", in.UserID, errs.ErrConflict)
	}

	p := in.toPatient()
	if err := s.patients.Create(ctx, p); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("patient profile for user %s: %w", in.UserID, errs.ErrConflict)
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (*Patient, error) {
	return s.patients.GetByUserID(ctx, userID)
}
