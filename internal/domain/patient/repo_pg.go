package patient

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/platform/db"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

// Columns lists the patients columns qualified with alias, in ScanFields order.
func Columns(alias string) string {
	return alias + ".id, " + alias + ".user_id, " + alias + ".date_of_birth, " + alias + ".gender, " +
		alias + ".blood_type, " + alias + ".allergies, " + alias + ".emergency_contact_name, " +
		alias + ".emergency_contact_phone, " + alias + ".address, " + alias + ".created_at"
}

func (p *Patient) ScanFields() []interface{} {
	return []interface{}{&p.ID, &p.UserID, &p.DateOfBirth, &p.Gender, &p.BloodType, &p.Allergies,
		&p.EmergencyContactName, &p.EmergencyContactPhone, &p.Address, &p.CreatedAt}
}

// NewProfile returns an empty profile whose ScanFields cover Columns(p)
// followed by identity.Columns(u).
func NewProfile() *Profile {
	return &Profile{User: &identity.User{}}
}

func (p *Profile) ScanFields() []interface{} {
	return append(p.Patient.ScanFields(), p.User.ScanFields()...)
}

var patientSelect = `SELECT ` + Columns("p") + ` FROM patients p`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := row.Scan(p.ScanFields()...); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO patients (user_id, date_of_birth, gender, blood_type, allergies,
			emergency_contact_name, emergency_contact_phone, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		p.UserID, p.DateOfBirth, p.Gender, p.BloodType, p.Allergies,
		p.EmergencyContactName, p.EmergencyContactPhone, p.Address,
	).Scan(&p.ID, &p.CreatedAt)
	return db.Wrap("create patient", err)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int) (*Patient, error) {
	p, err := scanPatient(db.Conn(ctx, r.pool).QueryRow(ctx, patientSelect+` WHERE p.id = $1`, id))
	if db.IsNoRows(err) {
		return nil, nil
	}
	return p, db.Wrap("get patient", err)
}

func (r *patientRepoPG) GetByUserID(ctx context.Context, userID string) (*Patient, error) {
	p, err := scanPatient(db.Conn(ctx, r.pool).QueryRow(ctx, patientSelect+` WHERE p.user_id = $1`, userID))
	if db.IsNoRows(err) {
		return nil, nil
	}
	return p, db.Wrap("get patient by user", err)
}
