package ingestion

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// UploadJob tracks one ingestion run from registration to completion or
// error. Status transitions are driven only by the pipeline; completed and
// error are terminal, there is no automatic retry.
type UploadJob struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	FileURL        string    `gorm:"type:text;not null"`
	PaymentDate    time.Time `gorm:"type:date;not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'"`
	ProcessedCount int       `gorm:"not null;default:0"`
	ErrorCount     int       `gorm:"not null;default:0"`
	ErrorMessage   *string   `gorm:"type:text"`
	ScheduledDate  *time.Time
	NotifiedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (UploadJob) TableName() string {
	return "upload_jobs"
}
