package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or missing access token")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrEmployeeAccessDenied    = errors.New("access to another employee's records is not allowed")
	ErrInvalidRole             = errors.New("invalid role")
)
