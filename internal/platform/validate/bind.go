package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/errs"
)

// Bind decodes the request body into i and runs the registered validator.
// Decode failures become a 400 naming the offending field where the decoder
// reports one. Oversized bodies keep their 413.
func Bind(c echo.Context, i interface{}) error {
	if err := c.Bind(i); err != nil {
		return bindError(err)
	}
	return c.Validate(i)
}

func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		var inner *echo.HTTPError
		if errors.As(he.Internal, &inner) {
			return inner
		}
		if he.Code != http.StatusBadRequest {
			return he
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return errs.Validation(typeErr.Field, fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
	}
	return errs.Validation("", "Invalid request body")
}
