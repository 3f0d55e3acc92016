package appointment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/db"
)

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const apptCols = `id, patient_id, doctor_id, date, time, status, reason, notes, created_at`

func columns(alias string) string {
	return alias + ".id, " + alias + ".patient_id, " + alias + ".doctor_id, " + alias + ".date, " +
		alias + ".time, " + alias + ".status, " + alias + ".reason, " + alias + ".notes, " + alias + ".created_at"
}

func (a *Appointment) scanFields() []interface{} {
	return []interface{}{&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time, &a.Status, &a.Reason, &a.Notes, &a.CreatedAt}
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	if err := row.Scan(a.scanFields()...); err != nil {
		return nil, err
	}
	return &a, nil
}

var (
	patientViewSQL = `SELECT ` + columns("a") + `, ` + doctor.Columns("d") + `, ` + identity.Columns("u") + `
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN users u ON u.id = d.user_id
		WHERE a.patient_id = $1
		ORDER BY a.date, a.time, a.id`

	doctorViewSQL = `SELECT ` + columns("a") + `, ` + patient.Columns("p") + `, ` + identity.Columns("u") + `
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN users u ON u.id = p.user_id
		WHERE a.doctor_id = $1
		ORDER BY a.date, a.time, a.id`
)

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO appointments (patient_id, doctor_id, date, time, status, reason, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		a.PatientID, a.DoctorID, a.Date, a.Time, a.Status, a.Reason, a.Notes,
	).Scan(&a.ID, &a.CreatedAt)
	return db.Wrap("create appointment", err)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id int) (*Appointment, error) {
	a, err := scanAppointment(db.Conn(ctx, r.pool).QueryRow(ctx, `SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return nil, nil
	}
	return a, db.Wrap("get appointment", err)
}

func (r *appointmentRepoPG) ListForPatient(ctx context.Context, patientID int) ([]*View, error) {
	return r.list(ctx, "list patient appointments", patientViewSQL, patientID, func(v *View) []interface{} {
		v.Doctor = doctor.NewProfile()
		return append(v.scanFields(), v.Doctor.ScanFields()...)
	})
}

func (r *appointmentRepoPG) ListForDoctor(ctx context.Context, doctorID int) ([]*View, error) {
	return r.list(ctx, "list doctor appointments", doctorViewSQL, doctorID, func(v *View) []interface{} {
		v.Patient = patient.NewProfile()
		return append(v.scanFields(), v.Patient.ScanFields()...)
	})
}

func (r *appointmentRepoPG) list(ctx context.Context, op, sql string, id int, dest func(*View) []interface{}) ([]*View, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, id)
	if err != nil {
		return nil, db.Wrap(op, err)
	}
	defer rows.Close()

	views := []*View{}
	for rows.Next() {
		v := &View{}
		if err := rows.Scan(dest(v)...); err != nil {
			return nil, db.Wrap(op, err)
		}
		views = append(views, v)
	}
	return views, db.Wrap(op, rows.Err())
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id int, status string, notes *string) (*Appointment, error) {
	a, err := scanAppointment(db.Conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE appointments
		SET status = $2, notes = COALESCE($3, notes)
		WHERE id = $1
		RETURNING `+apptCols,
		id, status, notes))
	if db.IsNoRows(err) {
		return nil, nil
	}
	return a, db.Wrap("update appointment status", err)
}
