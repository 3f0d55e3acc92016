package doctor

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/platform/db"
)

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

// Columns lists the doctors columns qualified with alias, in ScanFields order.
func Columns(alias string) string {
	return alias + ".id, " + alias + ".user_id, " + alias + ".specialty, " + alias + ".license_number, " +
		alias + ".years_of_experience, " + alias + ".bio, " + alias + ".consultation_fee, " +
		alias + ".available_days, " + alias + ".start_time, " + alias + ".end_time, " + alias + ".created_at"
}

func (d *Doctor) ScanFields() []interface{} {
	return []interface{}{&d.ID, &d.UserID, &d.Specialty, &d.LicenseNumber, &d.YearsOfExperience, &d.Bio,
		&d.ConsultationFee, &d.AvailableDays, &d.StartTime, &d.EndTime, &d.CreatedAt}
}

// NewProfile returns an empty profile whose ScanFields cover Columns(d)
// followed by identity.Columns(u).
func NewProfile() *Profile {
	return &Profile{User: &identity.User{}}
}

func (p *Profile) ScanFields() []interface{} {
	return append(p.Doctor.ScanFields(), p.User.ScanFields()...)
}

var (
	doctorSelect  = `SELECT ` + Columns("d") + ` FROM doctors d`
	profileSelect = `SELECT ` + Columns("d") + `, ` + identity.Columns("u") + `
		FROM doctors d
		JOIN users u ON u.id = d.user_id`
)

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(d.ScanFields()...); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	if d.AvailableDays == nil {
		d.AvailableDays = []string{}
	}
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO doctors (user_id, specialty, license_number, years_of_experience, bio,
			consultation_fee, available_days, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		d.UserID, d.Specialty, d.LicenseNumber, d.YearsOfExperience, d.Bio,
		d.ConsultationFee, d.AvailableDays, d.StartTime, d.EndTime,
	).Scan(&d.ID, &d.CreatedAt)
	return db.Wrap("create doctor", err)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id int) (*Doctor, error) {
	d, err := scanDoctor(db.Conn(ctx, r.pool).QueryRow(ctx, doctorSelect+` WHERE d.id = $1`, id))
	if db.IsNoRows(err) {
		return nil, nil
	}
	return d, db.Wrap("get doctor", err)
}

func (r *doctorRepoPG) GetByUserID(ctx context.Context, userID string) (*Doctor, error) {
	d, err := scanDoctor(db.Conn(ctx, r.pool).QueryRow(ctx, doctorSelect+` WHERE d.user_id = $1`, userID))
	if db.IsNoRows(err) {
		return nil, nil
	}
	return d, db.Wrap("get doctor by user", err)
}

func (r *doctorRepoPG) GetProfile(ctx context.Context, id int) (*Profile, error) {
	p := NewProfile()
	err := db.Conn(ctx, r.pool).QueryRow(ctx, profileSelect+` WHERE d.id = $1`, id).Scan(p.ScanFields()...)
	if db.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Wrap("get doctor profile", err)
	}
	return p, nil
}

func (r *doctorRepoPG) ListProfiles(ctx context.Context) ([]*Profile, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, profileSelect+` ORDER BY d.id`)
	if err != nil {
		return nil, db.Wrap("list doctors", err)
	}
	defer rows.Close()

	items := []*Profile{}
	for rows.Next() {
		p := NewProfile()
		if err := rows.Scan(p.ScanFields()...); err != nil {
			return nil, db.Wrap("scan doctor", err)
		}
		items = append(items, p)
	}
	return items, db.Wrap("list doctors", rows.Err())
}
