// Package errs holds the API error taxonomy and the echo error handler that
// turns it into HTTP responses.
package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("already exists")
)

// ValidationError reports the first request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Body is the JSON shape of every error response.
type Body struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

const internalMessage = "Internal Server Error"

// Resolve maps err onto a status code and response body. Unknown errors become
// a generic 500 so storage details never reach the client.
func Resolve(err error) (int, Body) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, Body{Message: ve.Message, Field: ve.Field}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, Body{Message: internalMessage}
		}
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, Body{Message: msg}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, Body{Message: "Unauthorized"}
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, Body{Message: "Not found"}
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, Body{Message: "Already exists"}
	}
	return http.StatusInternalServerError, Body{Message: internalMessage}
}

// HTTPErrorHandler writes errors returned by handlers and middleware. Server
// errors are logged with the request id.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := Resolve(err)
		if code >= http.StatusInternalServerError {
			logger.Error().
				Err(err).
				Str("request_id", fmt.Sprintf("%v", c.Get("request_id"))).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, body)
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}
