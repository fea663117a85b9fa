package payrollitemerrors

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
	ErrInvalidItemType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll item type",
		http.StatusBadRequest,
	)
	ErrCatalogEmpty = apperror.New(
		apperror.CodeNotFound,
		"no payroll items configured for this company",
		http.StatusNotFound,
	)
)
