package directory

import (
	"time"

	"github.com/google/uuid"
)

// Employee links a payroll employee code to the user account that will view
// the produced payslips. EmployeeCode is the value found in the CSV
// identifier column, unique within a company.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index:idx_company_employee_code,unique"`
	UserID         uuid.UUID `gorm:"type:uuid;not null"`
	EmployeeCode   string    `gorm:"type:varchar(60);not null;index:idx_company_employee_code,unique"`
	FullName       string    `gorm:"type:varchar(120)"`
	DepartmentCode *string   `gorm:"type:varchar(60)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Employee) TableName() string {
	return "employees"
}
