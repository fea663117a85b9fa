package ingestionerrors

import (
	"net/http"

	"go-payslip/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidUploadID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid upload id",
		http.StatusBadRequest,
	)
	ErrMissingFileURL = apperror.New(
		apperror.CodeInvalidInput,
		"file_url is required",
		http.StatusBadRequest,
	)
	ErrUploadNotFound = apperror.New(
		apperror.CodeNotFound,
		"upload job not found",
		http.StatusNotFound,
	)
	ErrNoUsableMapping = apperror.New(
		apperror.CodeFailedPrecondition,
		"no csv column is mapped to any payroll item",
		http.StatusPreconditionFailed,
	)
	ErrUploadAlreadyRunning = apperror.New(
		apperror.CodeInvalidState,
		"upload is already being processed",
		http.StatusConflict,
	)
)
