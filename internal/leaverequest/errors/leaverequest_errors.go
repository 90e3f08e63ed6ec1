package leaverequesterrors

import (
	"net/http"

	"github.com/ZBee-Tech/e-Conges/internal/shared/apperror"
)

var (
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrOutOfOrderApproval = apperror.New(
		apperror.CodeOutOfOrder,
		"it is not your turn to act on this request",
		http.StatusConflict,
	)
	ErrDecisionConflict = apperror.New(
		apperror.CodeConflict,
		"the request was decided by someone else, refresh and retry",
		http.StatusConflict,
	)
	ErrWrongOrganization = apperror.New(
		apperror.CodeForbidden,
		"you are not authorized to act on requests of this organization",
		http.StatusForbidden,
	)
	ErrNotAnApprover = apperror.New(
		apperror.CodeForbidden,
		"your role cannot approve or reject leave requests",
		http.StatusForbidden,
	)
	ErrUnknownStage = apperror.New(
		apperror.CodeInvalidInput,
		"unknown approval stage",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be APPROVE or REJECT",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
)
