package patient

import (
	"time"

	"github.com/hms/hms/internal/domain/identity"
)

type Patient struct {
	ID                    int       `db:"id" json:"id"`
	UserID                string    `db:"user_id" json:"userId"`
	DateOfBirth           string    `db:"date_of_birth" json:"dateOfBirth"`
	Gender                string    `db:"gender" json:"gender"`
	BloodType             *string   `db:"blood_type" json:"bloodType,omitempty"`
	Allergies             *string   `db:"allergies" json:"allergies,omitempty"`
	EmergencyContactName  *string   `db:"emergency_contact_name" json:"emergencyContactName,omitempty"`
	EmergencyContactPhone *string   `db:"emergency_contact_phone" json:"emergencyContactPhone,omitempty"`
	Address               *string   `db:"address" json:"address,omitempty"`
	CreatedAt             time.Time `db:"created_at" json:"createdAt"`
}

// Profile is a patient with its user account flattened alongside.
type Profile struct {
	Patient
	User *identity.User `json:"user"`
}

// CreateInput is the body of POST /api/patients.
type CreateInput struct {
	UserID                string  `json:"userId" validate:"required"`
	DateOfBirth           string  `json:"dateOfBirth" validate:"required,isodate"`
	Gender                string  `json:"gender" validate:"required"`
	BloodType             *string `json:"bloodType"`
	Allergies             *string `json:"allergies"`
	EmergencyContactName  *string `json:"emergencyContactName"`
	EmergencyContactPhone *string `json:"emergencyContactPhone"`
	Address               *string `json:"address"`
}

func (in CreateInput) toPatient() *Patient {
	return &Patient{
		UserID:                in.UserID,
		DateOfBirth:           in.DateOfBirth,
		Gender:                in.Gender,
		BloodType:             in.BloodType,
		Allergies:             in.Allergies,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
		Address:               in.Address,
	}
}
