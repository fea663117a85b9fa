package mapping

import "errors"

// Validation sentinels. These stay plain errors so the pure config code does
// not depend on the HTTP layer; the service wraps them into AppErrors.
var (
	ErrMissingIdentificationCode = errors.New("mapping is missing the identification code main field")
	ErrMissingEmployeeCode       = errors.New("mapping is missing the employee code main field")
	ErrDuplicateColumn           = errors.New("two visible items resolve to the same column")
)
