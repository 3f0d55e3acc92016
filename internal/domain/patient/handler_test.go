package patient

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

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	e := echo.New()
	e.Validator = validate.New()
	return NewHandler(svc), e
}

func callerRequest(method, body, callerID string) *http.Request {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req.WithContext(auth.WithCaller(req.Context(), auth.Caller{ID: callerID}))
}

func TestHandler_GetMyProfile_NotFound(t *testing.T) {
	h, e := newTestHandler()
	err := h.GetMyProfile(e.NewContext(callerRequest(http.MethodGet, "", "user-1"), httptest.NewRecorder()))
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_CreateThenGetMyProfile(t *testing.T) {
	h, e := newTestHandler()
	body := `{"userId":"user-1","dateOfBirth":"1985-02-03","gender":"male","allergies":"penicillin"}`

	rec := httptest.NewRecorder()
	if err := h.CreatePatient(e.NewContext(callerRequest(http.MethodPost, body, "user-1"), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	if err := h.GetMyProfile(e.NewContext(callerRequest(http.MethodGet, "", "user-1"), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.DateOfBirth != "1985-02-03" || got.Gender != "male" || got.Allergies == nil || *got.Allergies != "penicillin" {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestHandler_CreatePatient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		caller string
		check  func(error) bool
	}{
		{"bad date", `{"userId":"u","dateOfBirth":"03/02/1985","gender":"m"}`, "u", func(err error) bool {
			var ve *errs.ValidationError
			return errors.As(err, &ve) && ve.Field == "dateOfBirth"
		}},
		{"missing gender", `{"userId":"u","dateOfBirth":"1985-02-03"}`, "u", func(err error) bool {
			var ve *errs.ValidationError
			return errors.As(err, &ve) && ve.Field == "gender"
		}},
		{"other user", `{"userId":"victim","dateOfBirth":"1985-02-03","gender":"m"}`, "u", func(err error) bool {
			return errors.Is(err, errs.ErrUnauthorized)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, e := newTestHandler()
			err := h.CreatePatient(e.NewContext(callerRequest(http.MethodPost, tt.body, tt.caller), httptest.NewRecorder()))
			if !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}
