package payslip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-payslip/internal/tenant"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	// CreateAll inserts one batch of records in a single transaction. Either
	// the whole batch lands or none of it does.
	CreateAll(ctx context.Context, records []Payslip) error
	FindAllByCompany(ctx context.Context, companyID string, userID string) ([]Payslip, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payslip, error)
	MarkViewed(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateAll(ctx context.Context, records []Payslip) error {
	if len(records) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if IsUniqueViolation(err) {
		return fmt.Errorf("duplicate payslip id in batch: %w", err)
	}
	return err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, userID string) ([]Payslip, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("payment_date DESC")
	if userID != "" {
		db = db.Where("user_id = ?", userID)
	}

	var records []Payslip
	err := db.Find(&records).Error
	return records, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payslip, error) {
	var record Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&record, "id = ?", id).Error
	return &record, err
}

func (r *repository) MarkViewed(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("viewed_at", time.Now().UTC()).Error
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
