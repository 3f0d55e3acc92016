package patient

import "context"

// PatientRepository lookups return nil, nil when nothing matches.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int) (*Patient, error)
	GetByUserID(ctx context.Context, userID string) (*Patient, error)
}
