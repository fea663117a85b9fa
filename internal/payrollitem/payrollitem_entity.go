package payrollitem

import (
	"time"

	"github.com/google/uuid"
)

// Item types. time/days items carry their raw cell text through ingestion,
// every other type is treated as a currency amount.
const (
	TypeIncome     = "income"
	TypeDeduction  = "deduction"
	TypeAttendance = "attendance"
	TypeTime       = "time"
	TypeDays       = "days"
	TypeOther      = "other"
)

func ValidType(t string) bool {
	switch t {
	case TypeIncome, TypeDeduction, TypeAttendance, TypeTime, TypeDays, TypeOther:
		return true
	default:
		return false
	}
}

// PayrollItem is one entry of a company's payroll-item catalog. The ID is the
// deterministic mapping item id, which is also the key under which the item's
// value is stored inside a payslip record.
type PayrollItem struct {
	ID        string    `gorm:"type:varchar(160);primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(120);not null"`
	Type      string    `gorm:"type:varchar(20);not null"`
	CSVColumn *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollItem) TableName() string {
	return "payroll_items"
}
