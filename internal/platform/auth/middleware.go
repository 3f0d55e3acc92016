package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims carries the profile claims mirrored into the users table. Both the
// OIDC standard names and the first_name/last_name/profile_image_url variants
// are accepted.
type Claims struct {
	jwt.RegisteredClaims
	Email           string `json:"email"`
	GivenName       string `json:"given_name"`
	FamilyName      string `json:"family_name"`
	Picture         string `json:"picture"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

func (cl *Claims) Caller() Caller {
	return Caller{
		ID:              cl.Subject,
		Email:           cl.Email,
		FirstName:       firstNonEmpty(cl.GivenName, cl.FirstName),
		LastName:        firstNonEmpty(cl.FamilyName, cl.LastName),
		ProfileImageURL: firstNonEmpty(cl.Picture, cl.ProfileImageURL),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

type JWTConfig struct {
	Issuer   string
	Audience string
	JWKSURL  string
	// SigningKey switches verification to HS256 with a shared secret.
	SigningKey []byte
}

func (cfg JWTConfig) keyFunc() (jwt.Keyfunc, []string) {
	if len(cfg.SigningKey) > 0 {
		return func(*jwt.Token) (interface{}, error) { return cfg.SigningKey, nil }, []string{"HS256"}
	}
	if cfg.JWKSURL != "" {
		return NewJWKSCache(cfg.JWKSURL, defaultJWKSCacheTTL).KeyFunc(), []string{"RS256"}
	}
	d := &discoveredKeys{issuer: cfg.Issuer}
	return func(t *jwt.Token) (interface{}, error) {
		if d.issuer == "" {
			return nil, fmt.Errorf("no issuer, JWKS URL or signing key configured")
		}
		cache, err := d.get()
		if err != nil {
			return nil, err
		}
		return cache.KeyFunc()(t)
	}, []string{"RS256"}
}

// JWTMiddleware verifies a bearer token when one is sent and stores the
// resulting Caller on the request context. Requests without an Authorization
// header pass through anonymously; RequireCaller guards the routes that need
// an identity.
func JWTMiddleware(cfg JWTConfig) echo.MiddlewareFunc {
	keyFunc, methods := cfg.keyFunc()
	opts := []jwt.ParserOption{jwt.WithValidMethods(methods)}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			scheme, tokenStr, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenStr) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), claims, keyFunc, opts...)
			if err != nil || !token.Valid || claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			setCaller(c, claims.Caller())
			return next(c)
		}
	}
}

// Development identity headers.
const (
	DevUserIDHeader        = "X-Dev-User-Id"
	DevUserEmailHeader     = "X-Dev-User-Email"
	DevUserFirstNameHeader = "X-Dev-User-First-Name"
	DevUserLastNameHeader  = "X-Dev-User-Last-Name"
)

// DevAuthMiddleware trusts X-Dev-User-* headers. It is only installed when
// ENV=development and never overrides a caller set by a verified token.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CallerFromContext(c.Request().Context()); ok {
				return next(c)
			}
			h := c.Request().Header
			id := strings.TrimSpace(h.Get(DevUserIDHeader))
			if id == "" {
				return next(c)
			}
			setCaller(c, Caller{
				ID:        id,
				Email:     h.Get(DevUserEmailHeader),
				FirstName: h.Get(DevUserFirstNameHeader),
				LastName:  h.Get(DevUserLastNameHeader),
			})
			return next(c)
		}
	}
}
