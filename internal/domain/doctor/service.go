package doctor

import (
	"context"
	"fmt"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/errs"
)

type Service struct {
	doctors DoctorRepository
}

func NewService(doctors DoctorRepository) *Service {
	return &Service{doctors: doctors}
}

// Create registers the caller as a doctor. Callers may only onboard themselves
// and hold at most one doctor profile.
func (s *Service) Create(ctx context.Context, callerID string, in CreateInput) (*Doctor, error) {
	if in.UserID != callerID {
		return nil, errs.ErrUnauthorized
	}
	if in.EndTime <= in.StartTime {
		return nil, errs.Validation("endTime", "endTime must be after startTime")
	}
	existing, err := s.doctors.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("doctor profile for user %s: %w", in.UserID, errs.ErrConflict)
	}

	d := in.toDoctor()
	if err := s.doctors.Create(ctx, d); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("doctor profile for user %s: %w", in.UserID, errs.ErrConflict)
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (*Doctor, error) {
	return s.doctors.GetByUserID(ctx, userID)
}

func (s *Service) GetProfile(ctx context.Context, id int) (*Profile, error) {
	return s.doctors.GetProfile(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Profile, error) {
	return s.doctors.ListProfiles(ctx)
}
