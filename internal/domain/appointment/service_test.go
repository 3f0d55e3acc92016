package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/errs"
)

// -- Mocks --

type mockAppointmentRepo struct {
	items     map[int]*Appointment
	nextID    int
	createErr error
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{items: make(map[int]*Appointment), nextID: 1}
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *Appointment) error {
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = m.nextID
	m.nextID++
	a.CreatedAt = time.Now()
	m.items[a.ID] = a
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id int) (*Appointment, error) {
	return m.items[id], nil
}

func (m *mockAppointmentRepo) ListForPatient(_ context.Context, patientID int) ([]*View, error) {
	out := []*View{}
	for id := 1; id < m.nextID; id++ {
		if a, ok := m.items[id]; ok && a.PatientID == patientID {
			out = append(out, &View{Appointment: *a, Doctor: &doctor.Profile{Doctor: doctor.Doctor{ID: a.DoctorID}}})
		}
	}
	return out, nil
}

func (m *mockAppointmentRepo) ListForDoctor(_ context.Context, doctorID int) ([]*View, error) {
	out := []*View{}
	for id := 1; id < m.nextID; id++ {
		if a, ok := m.items[id]; ok && a.DoctorID == doctorID {
			out = append(out, &View{Appointment: *a, Patient: &patient.Profile{Patient: patient.Patient{ID: a.PatientID}}})
		}
	}
	return out, nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, id int, status string, notes *string) (*Appointment, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	a.Status = status
	if notes != nil {
		a.Notes = notes
	}
	return a, nil
}

type fakeDoctors map[int]*doctor.Doctor

func (f fakeDoctors) Get(_ context.Context, id int) (*doctor.Doctor, error) { return f[id], nil }

func (f fakeDoctors) GetByUserID(_ context.Context, userID string) (*doctor.Doctor, error) {
	for _, d := range f {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

type fakePatients map[int]*patient.Patient

func (f fakePatients) Get(_ context.Context, id int) (*patient.Patient, error) { return f[id], nil }

func (f fakePatients) GetByUserID(_ context.Context, userID string) (*patient.Patient, error) {
	for _, p := range f {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

// Doctor 1 belongs to doc-user, patient 1 to pat-user, patient 2 to other-user.
func newTestService() (*Service, *mockAppointmentRepo) {
	repo := newMockAppointmentRepo()
	doctors := fakeDoctors{1: {ID: 1, UserID: "doc-user"}}
	patients := fakePatients{
		1: {ID: 1, UserID: "pat-user"},
		2: {ID: 2, UserID: "other-user"},
	}
	return NewService(repo, doctors, patients), repo
}

func strPtr(s string) *string { return &s }

func validInput() CreateInput {
	return CreateInput{PatientID: 1, DoctorID: 1, Date: "2025-07-01", Time: "10:30", Reason: "checkup"}
}

// -- Tests --

func TestService_Create_ForcesPending(t *testing.T) {
	svc, _ := newTestService()
	a, err := svc.Create(context.Background(), "pat-user", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == 0 || a.Status != StatusPending {
		t.Errorf("expected new pending appointment, got %+v", a)
	}
	if a.Notes != nil {
		t.Error("notes should stay nil when omitted")
	}
}

func TestService_Create_Errors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		caller string
		mut    func(*CreateInput)
		check  func(error) bool
	}{
		{"someone else's patient", "pat-user", func(in *CreateInput) { in.PatientID = 2 },
			func(err error) bool { return errors.Is(err, errs.ErrUnauthorized) }},
		{"unknown patient", "pat-user", func(in *CreateInput) { in.PatientID = 99 },
			func(err error) bool { return errors.Is(err, errs.ErrUnauthorized) }},
		{"doctor booking as patient", "doc-user", func(*CreateInput) {},
			func(err error) bool { return errors.Is(err, errs.ErrUnauthorized) }},
		{"unknown doctor", "pat-user", func(in *CreateInput) { in.DoctorID = 42 },
			func(err error) bool {
				var ve *errs.ValidationError
				return errors.As(err, &ve) && ve.Field == "doctorId"
			}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			in := validInput()
			tt.mut(&in)
			_, err := svc.Create(ctx, tt.caller, in)
			if !tt.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.items) != 0 {
				t.Error("nothing should be stored on failure")
			}
		})
	}
}

func TestService_Create_ForeignKeyViolation(t *testing.T) {
	tests := []struct {
		constraint string
		field      string
	}{
		{"appointments_doctor_id_fkey", "doctorId"},
		{"appointments_patient_id_fkey", "patientId"},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			svc, repo := newTestService()
			repo.createErr = &db.StorageError{Op: "create appointment", Code: "23503", Constraint: tt.constraint, Err: errors.New("fk")}
			_, err := svc.Create(context.Background(), "pat-user", validInput())
			var ve *errs.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("expected validation error on %s, got %v", tt.field, err)
			}
		})
	}

	svc, repo := newTestService()
	other := errors.New("connection reset")
	repo.createErr = other
	if _, err := svc.Create(context.Background(), "pat-user", validInput()); !errors.Is(err, other) {
		t.Errorf("non-constraint errors should pass through, got %v", err)
	}
}

func TestService_ListForCaller(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, "pat-user", validInput()); err != nil {
		t.Fatal(err)
	}

	asPatient, err := svc.ListForCaller(ctx, "pat-user")
	if err != nil {
		t.Fatal(err)
	}
	if len(asPatient) != 1 || asPatient[0].Doctor == nil || asPatient[0].Patient != nil {
		t.Errorf("patient view should embed only the doctor: %+v", asPatient)
	}

	asDoctor, err := svc.ListForCaller(ctx, "doc-user")
	if err != nil {
		t.Fatal(err)
	}
	if len(asDoctor) != 1 || asDoctor[0].Patient == nil || asDoctor[0].Doctor != nil {
		t.Errorf("doctor view should embed only the patient: %+v", asDoctor)
	}

	none, err := svc.ListForCaller(ctx, "stranger")
	if err != nil {
		t.Fatal(err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", none)
	}
}

func TestService_ListForCaller_DoctorViewWins(t *testing.T) {
	repo := newMockAppointmentRepo()
	doctors := fakeDoctors{1: {ID: 1, UserID: "both"}}
	patients := fakePatients{1: {ID: 1, UserID: "both"}, 2: {ID: 2, UserID: "pat-user"}}
	svc := NewService(repo, doctors, patients)
	ctx := context.Background()

	in := validInput()
	in.PatientID = 2
	if _, err := svc.Create(ctx, "pat-user", in); err != nil {
		t.Fatal(err)
	}
	items, err := svc.ListForCaller(ctx, "both")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Patient == nil {
		t.Errorf("dual-role caller should get the doctor view, got %+v", items)
	}
}

func TestService_UpdateStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	in := validInput()
	in.Notes = strPtr("bring x-rays")
	a, err := svc.Create(ctx, "pat-user", in)
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.UpdateStatus(ctx, "doc-user", a.ID, StatusInput{Status: StatusConfirmed})
	if err != nil {
		t.Fatalf("doctor should be able to confirm: %v", err)
	}
	if got.Status != StatusConfirmed || got.Notes == nil || *got.Notes != "bring x-rays" {
		t.Errorf("status change should keep notes: %+v", got)
	}

	got, err = svc.UpdateStatus(ctx, "pat-user", a.ID, StatusInput{Status: StatusCancelled, Notes: strPtr("sick")})
	if err != nil {
		t.Fatalf("patient should be able to cancel: %v", err)
	}
	if got.Status != StatusCancelled || *got.Notes != "sick" {
		t.Errorf("unexpected appointment %+v", got)
	}
}

func TestService_UpdateStatus_Errors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	a, err := svc.Create(ctx, "pat-user", validInput())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateStatus(ctx, "pat-user", 999, StatusInput{Status: StatusConfirmed}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "other-user", a.ID, StatusInput{Status: StatusConfirmed}); !errors.Is(err, errs.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for non-party, got %v", err)
	}
}
