package ingestion

import (
	"context"
	"database/sql"
	"time"

	"go-payslip/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=upload_repo.go -destination=mock/upload_repo_mock.go -package=mock
type UploadRepository interface {
	WithTx(tx *sql.Tx) UploadRepository
	Create(ctx context.Context, job *UploadJob) error
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*UploadJob, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string, processedCount, errorCount int) error
	MarkError(ctx context.Context, id string, message string, processedCount, errorCount int) error
	MarkNotified(ctx context.Context, id string) error
}

type uploadRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) WithTx(tx *sql.Tx) UploadRepository {
	return &uploadRepository{db: r.db, tx: tx}
}

func (r *uploadRepository) Create(ctx context.Context, job *UploadJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *uploadRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*UploadJob, error) {
	var job UploadJob
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&job, "id = ?", id).Error
	return &job, err
}

func (r *uploadRepository) MarkProcessing(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&UploadJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        StatusProcessing,
			"error_message": nil,
		}).Error
}

func (r *uploadRepository) MarkCompleted(ctx context.Context, id string, processedCount, errorCount int) error {
	if r.tx != nil {
		query := `
UPDATE upload_jobs
SET
	status = $2,
	processed_count = $3,
	error_count = $4,
	error_message = NULL,
	updated_at = NOW()
WHERE id = $1
`
		_, err := r.tx.ExecContext(ctx, query, id, StatusCompleted, processedCount, errorCount)
		return err
	}

	return r.db.WithContext(ctx).
		Model(&UploadJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":          StatusCompleted,
			"processed_count": processedCount,
			"error_count":     errorCount,
			"error_message":   nil,
		}).Error
}

func (r *uploadRepository) MarkError(ctx context.Context, id string, message string, processedCount, errorCount int) error {
	return r.db.WithContext(ctx).
		Model(&UploadJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":          StatusError,
			"processed_count": processedCount,
			"error_count":     errorCount,
			"error_message":   message,
		}).Error
}

func (r *uploadRepository) MarkNotified(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&UploadJob{}).
		Where("id = ?", id).
		Update("notified_at", time.Now().UTC()).Error
}
