package appointment

import (
	"context"
	"fmt"

	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/errs"
)

// DoctorLookup resolves doctor profiles. *doctor.Service satisfies it.
type DoctorLookup interface {
	Get(ctx context.Context, id int) (*doctor.Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*doctor.Doctor, error)
}

// PatientLookup resolves patient profiles. *patient.Service satisfies it.
type PatientLookup interface {
	Get(ctx context.Context, id int) (*patient.Patient, error)
	GetByUserID(ctx context.Context, userID string) (*patient.Patient, error)
}

type Service struct {
	appointments AppointmentRepository
	doctors      DoctorLookup
	patients     PatientLookup
}

func NewService(appointments AppointmentRepository, doctors DoctorLookup, patients PatientLookup) *Service {
	return &Service{appointments: appointments, doctors: doctors, patients: patients}
}

// ListForCaller returns the caller's appointments. A caller holding both
// profiles sees the doctor view. Callers with neither get an empty list.
func (s *Service) ListForCaller(ctx context.Context, callerID string) ([]*View, error) {
	d, err := s.doctors.GetByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if d != nil {
		return s.appointments.ListForDoctor(ctx, d.ID)
	}

	p, err := s.patients.GetByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return s.appointments.ListForPatient(ctx, p.ID)
	}
	return []*View{}, nil
}

// Create books an appointment for the caller's own patient profile.
func (s *Service) Create(ctx context.Context, callerID string, in CreateInput) (*Appointment, error) {
	p, err := s.patients.Get(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.UserID != callerID {
		return nil, errs.ErrUnauthorized
	}

	d, err := s.doctors.Get(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errs.Validation("doctorId", "Doctor not found")
	}

	a := &Appointment{
		PatientID: p.ID,
		DoctorID:  d.ID,
		Date:      in.Date,
		Time:      in.Time,
		Status:    StatusPending,
		Reason:    in.Reason,
		Notes:     in.Notes,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, createError(err)
	}
	return a, nil
}

// createError maps a foreign key violation on insert, raised when a profile
// is removed between the lookup and the write, to a 400 on the missing field.
func createError(err error) error {
	if !db.IsForeignKeyViolation(err) {
		return err
	}
	if db.ViolatedConstraint(err) == "appointments_patient_id_fkey" {
		return errs.Validation("patientId", "Patient not found")
	}
	return errs.Validation("doctorId", "Doctor not found")
}

// UpdateStatus moves an appointment to a new status. Either party may do so;
// transitions are not restricted.
func (s *Service) UpdateStatus(ctx context.Context, callerID string, id int, in StatusInput) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("appointment %d: %w", id, errs.ErrNotFound)
	}

	party, err := s.isParty(ctx, callerID, a)
	if err != nil {
		return nil, err
	}
	if !party {
		return nil, errs.ErrUnauthorized
	}

	updated, err := s.appointments.UpdateStatus(ctx, id, in.Status, in.Notes)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("appointment %d: %w", id, errs.ErrNotFound)
	}
	return updated, nil
}

func (s *Service) isParty(ctx context.Context, callerID string, a *Appointment) (bool, error) {
	d, err := s.doctors.GetByUserID(ctx, callerID)
	if err != nil {
		return false, err
	}
	if d != nil && d.ID == a.DoctorID {
		return true, nil
	}
	p, err := s.patients.GetByUserID(ctx, callerID)
	if err != nil {
		return false, err
	}
	return p != nil && p.ID == a.PatientID, nil
}
