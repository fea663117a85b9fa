package payrollitem

import (
	"context"

	"go-payslip/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payrollitem_repo.go -destination=mock/payrollitem_repo_mock.go -package=mock
type Repository interface {
	FindAllByCompany(ctx context.Context, companyID string) ([]PayrollItem, error)
	UpsertAll(ctx context.Context, items []PayrollItem) error
	DeleteAllByCompany(ctx context.Context, companyID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]PayrollItem, error) {
	var items []PayrollItem
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) UpsertAll(ctx context.Context, items []PayrollItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}, {Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "type", "csv_column", "updated_at"}),
		}).
		Create(&items).Error
}

func (r *repository) DeleteAllByCompany(ctx context.Context, companyID string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PayrollItem{}).Error
}
