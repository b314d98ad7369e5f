package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// decodeJSON reads an optional JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// pathInt reads a numeric URL parameter.
func pathInt(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validator.ValidationErrors{{Field: name, Message: "must be a number"}}
	}
	return n, nil
}

func pathPeriod(r *http.Request) (year, month int, err error) {
	if year, err = pathInt(r, "year"); err != nil {
		return 0, 0, err
	}
	if month, err = pathInt(r, "month"); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// authorizeEmployee returns the caller's claims when they may act on employeeID.
func authorizeEmployee(r *http.Request, employeeID string) (user.Claims, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return user.Claims{}, user.ErrInvalidToken
	}
	if !claims.CanAccessEmployee(employeeID) {
		return user.Claims{}, user.ErrEmployeeAccessDenied
	}
	return claims, nil
}
