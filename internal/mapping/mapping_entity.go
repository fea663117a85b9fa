package mapping

import (
	"time"

	"github.com/google/uuid"
)

// CSVMapping persists one company's column mapping. The config body is kept
// as a single jsonb document; its shape is the wire shape of Config.
type CSVMapping struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Config    []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CSVMapping) TableName() string {
	return "csv_mappings"
}

// CompanyCSVSetting is the minimal projection of the mapping consumed by the
// employee-directory synchronizer. Written on every save, never read here.
type CompanyCSVSetting struct {
	CompanyID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeIDColumn     string    `gorm:"type:varchar(120)"`
	DepartmentCodeColumn string    `gorm:"type:varchar(120)"`
	UpdatedAt            time.Time
}

func (CompanyCSVSetting) TableName() string {
	return "company_csv_settings"
}
