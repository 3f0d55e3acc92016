package medicalrecord

import "context"

type MedicalRecordRepository interface {
	Create(ctx context.Context, r *MedicalRecord) error
	// ListForPatient returns the patient's records newest visit first, each
	// with its authoring doctor.
	ListForPatient(ctx context.Context, patientID int) ([]*View, error)
}
