package medicalrecord

import (
	"context"
	"fmt"

	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/errs"
)

type DoctorLookup interface {
	GetByUserID(ctx context.Context, userID string) (*doctor.Doctor, error)
}

type PatientLookup interface {
	Get(ctx context.Context, id int) (*patient.Patient, error)
	GetByUserID(ctx context.Context, userID string) (*patient.Patient, error)
}

type Service struct {
	records  MedicalRecordRepository
	doctors  DoctorLookup
	patients PatientLookup
}

func NewService(records MedicalRecordRepository, doctors DoctorLookup, patients PatientLookup) *Service {
	return &Service{records: records, doctors: doctors, patients: patients}
}

// Create files a record authored by the caller's doctor profile.
func (s *Service) Create(ctx context.Context, callerID string, in CreateInput) (*MedicalRecord, error) {
	d, err := s.doctors.GetByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if d == nil || d.ID != in.DoctorID {
		return nil, errs.ErrUnauthorized
	}
	p, err := s.patients.Get(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.Validation("patientId", "Patient not found")
	}

	rec := &MedicalRecord{
		PatientID:     p.ID,
		DoctorID:      d.ID,
		Diagnosis:     in.Diagnosis,
		Prescription:  in.Prescription,
		TestResults:   in.TestResults,
		TreatmentPlan: in.TreatmentPlan,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		if !db.IsForeignKeyViolation(err) {
			return nil, err
		}
		if db.ViolatedConstraint(err) == "medical_records_doctor_id_fkey" {
			return nil, errs.Validation("doctorId", "Doctor not found")
		}
		return nil, errs.Validation("patientId", "Patient not found")
	}
	return rec, nil
}

// ListForCaller returns the caller's own records. Callers without a patient
// profile get ErrNotFound.
func (s *Service) ListForCaller(ctx context.Context, callerID string) ([]*View, error) {
	p, err := s.patients.GetByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("patient profile for user %s: %w", callerID, errs.ErrNotFound)
	}
	return s.records.ListForPatient(ctx, p.ID)
}
