package appointment

import (
	"time"

	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID        int       `db:"id" json:"id"`
	PatientID int       `db:"patient_id" json:"patientId"`
	DoctorID  int       `db:"doctor_id" json:"doctorId"`
	Date      string    `db:"date" json:"date"`
	Time      string    `db:"time" json:"time"`
	Status    string    `db:"status" json:"status"`
	Reason    string    `db:"reason" json:"reason"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// View is an appointment as listed to one of its parties. Only the other
// party is embedded: patients see the doctor, doctors see the patient.
type View struct {
	Appointment
	Doctor  *doctor.Profile  `json:"doctor,omitempty"`
	Patient *patient.Profile `json:"patient,omitempty"`
}

// CreateInput is the body of POST /api/appointments. A status in the body is
// ignored; new appointments always start pending.
type CreateInput struct {
	PatientID int     `json:"patientId" validate:"required,gt=0"`
	DoctorID  int     `json:"doctorId" validate:"required,gt=0"`
	Date      string  `json:"date" validate:"required,isodate"`
	Time      string  `json:"time" validate:"required,hhmm"`
	Reason    string  `json:"reason" validate:"required"`
	Notes     *string `json:"notes"`
}

// StatusInput is the body of PATCH /api/appointments/:id/status. Omitting
// notes keeps the stored notes.
type StatusInput struct {
	Status string  `json:"status" validate:"required,appointmentstatus"`
	Notes  *string `json:"notes"`
}
