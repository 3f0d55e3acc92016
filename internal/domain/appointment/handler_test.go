package appointment

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/errs"
	"github.com/hms/hms/internal/platform/validate"
)

func newTestHandler() (*Handler, *echo.Echo, *mockAppointmentRepo) {
	svc, repo := newTestService()
	e := echo.New()
	e.Validator = validate.New()
	return NewHandler(svc), e, repo
}

func callerContext(e *echo.Echo, method, body, callerID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(auth.WithCaller(req.Context(), auth.Caller{ID: callerID}))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_CreateAppointment_IgnoresStatus(t *testing.T) {
	h, e, _ := newTestHandler()
	body := `{"patientId":1,"doctorId":1,"date":"2025-07-01","time":"09:00","reason":"flu","status":"completed"}`
	c, rec := callerContext(e, http.MethodPost, body, "pat-user")

	if err := h.CreateAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var got Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != StatusPending {
		t.Errorf("status = %q, want pending", got.Status)
	}
}

func TestHandler_CreateAppointment_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing reason", `{"patientId":1,"doctorId":1,"date":"2025-07-01","time":"09:00"}`, "reason"},
		{"bad date", `{"patientId":1,"doctorId":1,"date":"07/01/2025","time":"09:00","reason":"x"}`, "date"},
		{"bad time", `{"patientId":1,"doctorId":1,"date":"2025-07-01","time":"9","reason":"x"}`, "time"},
		{"doctorId wrong type", `{"patientId":1,"doctorId":"one","date":"2025-07-01","time":"09:00","reason":"x"}`, "doctorId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, e, _ := newTestHandler()
			c, _ := callerContext(e, http.MethodPost, tt.body, "pat-user")
			err := h.CreateAppointment(c)
			var ve *errs.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("expected validation error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestHandler_UpdateStatus(t *testing.T) {
	h, e, repo := newTestHandler()
	c, _ := callerContext(e, http.MethodPost, `{"patientId":1,"doctorId":1,"date":"2025-07-01","time":"09:00","reason":"flu"}`, "pat-user")
	if err := h.CreateAppointment(c); err != nil {
		t.Fatal(err)
	}

	c, rec := callerContext(e, http.MethodPatch, `{"status":"confirmed"}`, "doc-user")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || repo.items[1].Status != StatusConfirmed {
		t.Errorf("expected confirmed appointment, got %d %+v", rec.Code, repo.items[1])
	}
}

func TestHandler_UpdateStatus_Errors(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		body  string
		check func(error) bool
	}{
		{"bad status", "1", `{"status":"archived"}`, func(err error) bool {
			var ve *errs.ValidationError
			return errors.As(err, &ve) && ve.Field == "status"
		}},
		{"non-integer id", "abc", `{"status":"confirmed"}`, func(err error) bool {
			var ve *errs.ValidationError
			return errors.As(err, &ve) && ve.Field == "id"
		}},
		{"unknown id", "77", `{"status":"confirmed"}`, func(err error) bool {
			var he *echo.HTTPError
			return errors.As(err, &he) && he.Code == http.StatusNotFound
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, e, _ := newTestHandler()
			c, _ := callerContext(e, http.MethodPatch, tt.body, "doc-user")
			c.SetParamNames("id")
			c.SetParamValues(tt.id)
			if err := h.UpdateStatus(c); !tt.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestHandler_ListAppointments_Empty(t *testing.T) {
	h, e, _ := newTestHandler()
	c, rec := callerContext(e, http.MethodGet, "", "stranger")
	if err := h.ListAppointments(c); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected [], got %s", rec.Body.String())
	}
}
