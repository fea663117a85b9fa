package mappingerrors

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
	ErrEmptyHeaderLines = apperror.New(
		apperror.CodeInvalidInput,
		"both header lines are required",
		http.StatusBadRequest,
	)
)
