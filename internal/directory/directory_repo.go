package directory

import (
	"context"

	"go-payslip/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=directory_repo.go -destination=mock/directory_repo_mock.go -package=mock
type Repository interface {
	// EmployeeMap returns the full employeeCode -> userID map of a company in
	// one query. The ingestion pipeline resolves every row against this
	// snapshot instead of querying per row.
	EmployeeMap(ctx context.Context, companyID string) (map[string]string, error)
	UpdateEmployeeDepartment(ctx context.Context, companyID, employeeCode, departmentCode string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) EmployeeMap(ctx context.Context, companyID string) (map[string]string, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Select("employee_code", "user_id").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(employees))
	for _, e := range employees {
		m[e.EmployeeCode] = e.UserID.String()
	}
	return m, nil
}

func (r *repository) UpdateEmployeeDepartment(ctx context.Context, companyID, employeeCode, departmentCode string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_code = ?", employeeCode).
		Where("department_code IS DISTINCT FROM ?", departmentCode).
		Update("department_code", departmentCode)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
