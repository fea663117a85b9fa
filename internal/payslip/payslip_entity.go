package payslip

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ItemValue is one payroll line inside a payslip. Value is a float64 for
// currency items and a string for time/days items, mirroring how the cell was
// converted during ingestion.
type ItemValue struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Payslip is one employee's computed payroll result for one payment date.
// Records are created only by the ingestion pipeline and are immutable
// afterwards, except for the view-tracking flag owned by the client app.
type Payslip struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_company_date"`
	EmployeeID     string    `gorm:"type:varchar(60);not null"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentDate    time.Time `gorm:"type:date;not null;index:idx_payslip_company_date"`
	UploadID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Items          []byte    `gorm:"type:jsonb;not null"`
	TotalIncome    float64   `gorm:"not null;default:0"`
	TotalDeduction float64   `gorm:"not null;default:0"`
	NetAmount      float64   `gorm:"not null;default:0"`
	ViewedAt       *time.Time
	CreatedAt      time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}

func (p *Payslip) SetItems(items map[string]ItemValue) error {
	body, err := json.Marshal(items)
	if err != nil {
		return err
	}
	p.Items = body
	return nil
}

func (p *Payslip) GetItems() (map[string]ItemValue, error) {
	items := map[string]ItemValue{}
	if len(p.Items) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(p.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}
