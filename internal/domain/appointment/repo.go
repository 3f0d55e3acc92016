package appointment

import "context"

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	// GetByID returns nil, nil when the appointment does not exist.
	GetByID(ctx context.Context, id int) (*Appointment, error)
	// ListForPatient embeds each appointment's doctor and the doctor's user.
	ListForPatient(ctx context.Context, patientID int) ([]*View, error)
	// ListForDoctor embeds each appointment's patient and the patient's user.
	ListForDoctor(ctx context.Context, doctorID int) ([]*View, error)
	// UpdateStatus sets status, and notes when non-nil. It returns nil, nil
	// when the appointment does not exist.
	UpdateStatus(ctx context.Context, id int, status string, notes *string) (*Appointment, error)
}
