package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSigningKey = []byte("test-secret-key-for-unit-tests-only")

func createTestToken(t *testing.T, claims Claims, key []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return tokenStr
}

func validClaims(sub string) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    "https://idp.test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:      "ada@example.com",
		GivenName:  "Ada",
		FamilyName: "Lovelace",
	}
}

// runMiddleware executes mw and reports the caller seen by the next handler.
func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (Caller, bool, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got Caller
	var ok bool
	err := mw(func(c echo.Context) error {
		got, ok = CallerFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})(c)
	return got, ok, err
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	httpErr, isHTTP := err.(*echo.HTTPError)
	if !isHTTP {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}

func TestJWTMiddleware_NoHeaderIsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	_, ok, err := runMiddleware(t, JWTMiddleware(JWTConfig{SigningKey: testSigningKey}), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no caller without Authorization header")
	}
}

func TestJWTMiddleware_InvalidFormat(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "Token abc123"},
		{"missing token", "Bearer"},
		{"empty value", "Bearer "},
		{"basic auth", "Basic dXNlcjpwYXNz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tt.header)
			_, _, err := runMiddleware(t, JWTMiddleware(JWTConfig{SigningKey: testSigningKey}), req)
			assertUnauthorized(t, err)
		})
	}
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token := createTestToken(t, validClaims("user-123"), testSigningKey)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	caller, ok, err := runMiddleware(t, JWTMiddleware(JWTConfig{SigningKey: testSigningKey, Issuer: "https://idp.test"}), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected caller on context")
	}
	want := Caller{ID: "user-123", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}
	if caller != want {
		t.Errorf("caller = %+v, want %+v", caller, want)
	}
}

func TestJWTMiddleware_AlternateProfileClaims(t *testing.T) {
	claims := validClaims("user-9")
	claims.GivenName, claims.FamilyName = "", ""
	claims.FirstName, claims.LastName = "Grace", "Hopper"
	claims.ProfileImageURL = "https://img.example.com/g.png"
	token := createTestToken(t, claims, testSigningKey)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	caller, _, err := runMiddleware(t, JWTMiddleware(JWTConfig{SigningKey: testSigningKey}), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caller.FirstName != "Grace" || caller.LastName != "Hopper" || caller.ProfileImageURL != "https://img.example.com/g.png" {
		t.Errorf("unexpected caller %+v", caller)
	}
}

func TestJWTMiddleware_RejectedTokens(t *testing.T) {
	expired := validClaims("user-1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	wrongIssuer := validClaims("user-1")
	wrongIssuer.Issuer = "https://evil.test"

	noSubject := validClaims("")

	tests := []struct {
		name  string
		token string
	}{
		{"expired", createTestToken(t, expired, testSigningKey)},
		{"wrong key", createTestToken(t, validClaims("user-1"), []byte("some-other-key"))},
		{"wrong issuer", createTestToken(t, wrongIssuer, testSigningKey)},
		{"no subject", createTestToken(t, noSubject, testSigningKey)},
		{"garbage", "not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			_, _, err := runMiddleware(t, JWTMiddleware(JWTConfig{SigningKey: testSigningKey, Issuer: "https://idp.test"}), req)
			assertUnauthorized(t, err)
		})
	}
}

func TestJWTMiddleware_AudienceMismatch(t *testing.T) {
	claims := validClaims("user-1")
	claims.Audience = jwt.ClaimStrings{"other-api"}
	token := createTestToken(t, claims, testSigningKey)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, _, err := runMiddleware(t, JWTMiddleware(JWTConfig{SigningKey: testSigningKey, Audience: "hms-api"}), req)
	assertUnauthorized(t, err)
}

func TestDevAuthMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DevUserIDHeader, "dev-patient")
	req.Header.Set(DevUserEmailHeader, "p@example.com")
	req.Header.Set(DevUserFirstNameHeader, "Pat")

	caller, ok, err := runMiddleware(t, DevAuthMiddleware(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || caller.ID != "dev-patient" || caller.Email != "p@example.com" || caller.FirstName != "Pat" {
		t.Errorf("unexpected caller %+v (ok=%v)", caller, ok)
	}
}

func TestDevAuthMiddleware_NoHeaderIsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok, err := runMiddleware(t, DevAuthMiddleware(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected anonymous request")
	}
}

func TestDevAuthMiddleware_KeepsTokenCaller(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithCaller(req.Context(), Caller{ID: "from-token"}))
	req.Header.Set(DevUserIDHeader, "spoofed")

	caller, _, err := runMiddleware(t, DevAuthMiddleware(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caller.ID != "from-token" {
		t.Errorf("expected token caller to win, got %q", caller.ID)
	}
}

func TestRequireCaller(t *testing.T) {
	e := echo.New()
	h := RequireCaller()(func(c echo.Context) error {
		return c.String(http.StatusOK, CallerID(c.Request().Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	rec := httptest.NewRecorder()
	assertUnauthorized(t, h(e.NewContext(req, rec)))

	req = httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	req = req.WithContext(WithCaller(req.Context(), Caller{ID: "user-1"}))
	rec = httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Body.String() != "user-1" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestCallerFromContext_EmptyIDIsAnonymous(t *testing.T) {
	ctx := WithCaller(httptest.NewRequest(http.MethodGet, "/", nil).Context(), Caller{Email: "x@example.com"})
	if _, ok := CallerFromContext(ctx); ok {
		t.Error("caller without id must be treated as anonymous")
	}
}
