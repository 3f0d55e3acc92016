package doctor

import (
	"time"

	"github.com/hms/hms/internal/domain/identity"
)

type Doctor struct {
	ID                int       `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"userId"`
	Specialty         string    `db:"specialty" json:"specialty"`
	LicenseNumber     string    `db:"license_number" json:"licenseNumber"`
	YearsOfExperience int       `db:"years_of_experience" json:"yearsOfExperience"`
	Bio               *string   `db:"bio" json:"bio,omitempty"`
	ConsultationFee   int       `db:"consultation_fee" json:"consultationFee"`
	AvailableDays     []string  `db:"available_days" json:"availableDays"`
	StartTime         string    `db:"start_time" json:"startTime"`
	EndTime           string    `db:"end_time" json:"endTime"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

// Profile is a doctor with its user account flattened alongside.
type Profile struct {
	Doctor
	User *identity.User `json:"user"`
}

// CreateInput is the body of POST /api/doctors.
type CreateInput struct {
	UserID            string   `json:"userId" validate:"required"`
	Specialty         string   `json:"specialty" validate:"required"`
	LicenseNumber     string   `json:"licenseNumber" validate:"required"`
	YearsOfExperience *int     `json:"yearsOfExperience" validate:"required,gte=0"`
	Bio               *string  `json:"bio"`
	ConsultationFee   *int     `json:"consultationFee" validate:"required,gte=0"`
	AvailableDays     []string `json:"availableDays" validate:"required,unique,dive,weekday"`
	StartTime         string   `json:"startTime" validate:"required,hhmm"`
	EndTime           string   `json:"endTime" validate:"required,hhmm"`
}

func (in CreateInput) toDoctor() *Doctor {
	return &Doctor{
		UserID:            in.UserID,
		Specialty:         in.Specialty,
		LicenseNumber:     in.LicenseNumber,
		YearsOfExperience: *in.YearsOfExperience,
		Bio:               in.Bio,
		ConsultationFee:   *in.ConsultationFee,
		AvailableDays:     in.AvailableDays,
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
	}
}
