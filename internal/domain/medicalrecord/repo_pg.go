package medicalrecord

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/platform/db"
)

type medicalRecordRepoPG struct{ pool *pgxpool.Pool }

func NewMedicalRecordRepoPG(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepoPG{pool: pool}
}

var listForPatientSQL = `SELECT mr.id, mr.patient_id, mr.doctor_id, mr.diagnosis, mr.prescription,
		mr.test_results, mr.treatment_plan, mr.visit_date, mr.created_at,
		` + doctor.Columns("d") + `, ` + identity.Columns("u") + `
	FROM medical_records mr
	JOIN doctors d ON d.id = mr.doctor_id
	JOIN users u ON u.id = d.user_id
	WHERE mr.patient_id = $1
	ORDER BY mr.visit_date DESC, mr.id DESC`

func (r *medicalRecordRepoPG) Create(ctx context.Context, rec *MedicalRecord) error {
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO medical_records (patient_id, doctor_id, diagnosis, prescription, test_results, treatment_plan)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, visit_date, created_at`,
		rec.PatientID, rec.DoctorID, rec.Diagnosis, rec.Prescription, rec.TestResults, rec.TreatmentPlan,
	).Scan(&rec.ID, &rec.VisitDate, &rec.CreatedAt)
	return db.Wrap("create medical record", err)
}

func (r *medicalRecordRepoPG) ListForPatient(ctx context.Context, patientID int) ([]*View, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, listForPatientSQL, patientID)
	if err != nil {
		return nil, db.Wrap("list medical records", err)
	}
	defer rows.Close()

	views := []*View{}
	for rows.Next() {
		v := &View{Doctor: doctor.NewProfile()}
		m := &v.MedicalRecord
		dest := []interface{}{&m.ID, &m.PatientID, &m.DoctorID, &m.Diagnosis, &m.Prescription,
			&m.TestResults, &m.TreatmentPlan, &m.VisitDate, &m.CreatedAt}
		if err := rows.Scan(append(dest, v.Doctor.ScanFields()...)...); err != nil {
			return nil, db.Wrap("list medical records", err)
		}
		views = append(views, v)
	}
	return views, db.Wrap("list medical records", rows.Err())
}
