package usererrors

import (
	"net/http"

	"github.com/ZBee-Tech/e-Conges/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of Employee, HOD, HR Manager, CEO, Admin",
		http.StatusBadRequest,
	)
	ErrCredentialTaken = apperror.New(
		apperror.CodeConflict,
		"username or email is already in use",
		http.StatusConflict,
	)
	ErrWrongOrganization = apperror.New(
		apperror.CodeForbidden,
		"you can only manage users of your own organization",
		http.StatusForbidden,
	)
	ErrNotAManager = apperror.New(
		apperror.CodeForbidden,
		"only a CEO or Admin can manage user accounts",
		http.StatusForbidden,
	)
)
