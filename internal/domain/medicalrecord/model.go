package medicalrecord

import (
	"time"

	"github.com/hms/hms/internal/domain/doctor"
)

type MedicalRecord struct {
	ID            int       `db:"id" json:"id"`
	PatientID     int       `db:"patient_id" json:"patientId"`
	DoctorID      int       `db:"doctor_id" json:"doctorId"`
	Diagnosis     string    `db:"diagnosis" json:"diagnosis"`
	Prescription  string    `db:"prescription" json:"prescription"`
	TestResults   *string   `db:"test_results" json:"testResults,omitempty"`
	TreatmentPlan *string   `db:"treatment_plan" json:"treatmentPlan,omitempty"`
	VisitDate     time.Time `db:"visit_date" json:"visitDate"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// View is a record as shown to its patient, with the authoring doctor.
type View struct {
	MedicalRecord
	Doctor *doctor.Profile `json:"doctor"`
}

// CreateInput is the body of POST /api/medical-records. The visit date is
// always the time of insertion.
type CreateInput struct {
	PatientID     int     `json:"patientId" validate:"required,gt=0"`
	DoctorID      int     `json:"doctorId" validate:"required,gt=0"`
	Diagnosis     string  `json:"diagnosis" validate:"required"`
	Prescription  string  `json:"prescription" validate:"required"`
	TestResults   *string `json:"testResults"`
	TreatmentPlan *string `json:"treatmentPlan"`
}
