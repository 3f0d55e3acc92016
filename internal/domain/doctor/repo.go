package doctor

import "context"

// DoctorRepository reads and writes doctors. Lookups return nil, nil when
// nothing matches.
type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id int) (*Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*Doctor, error)
	GetProfile(ctx context.Context, id int) (*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)
}
