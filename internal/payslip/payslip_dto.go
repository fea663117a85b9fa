package payslip

import "time"

type PayslipResponse struct {
	ID             string               `json:"id"`
	CompanyID      string               `json:"company_id"`
	EmployeeID     string               `json:"employee_id"`
	UserID         string               `json:"user_id"`
	PaymentDate    string               `json:"payment_date"`
	UploadID       string               `json:"upload_id"`
	Items          map[string]ItemValue `json:"items"`
	TotalIncome    float64              `json:"total_income"`
	TotalDeduction float64              `json:"total_deduction"`
	NetAmount      float64              `json:"net_amount"`
	ViewedAt       *string              `json:"viewed_at,omitempty"`
	CreatedAt      string               `json:"created_at"`
}

func mapToResponse(record Payslip) (PayslipResponse, error) {
	items, err := record.GetItems()
	if err != nil {
		return PayslipResponse{}, err
	}

	resp := PayslipResponse{
		ID:             record.ID.String(),
		CompanyID:      record.CompanyID.String(),
		EmployeeID:     record.EmployeeID,
		UserID:         record.UserID.String(),
		PaymentDate:    record.PaymentDate.Format("2006-01-02"),
		UploadID:       record.UploadID.String(),
		Items:          items,
		TotalIncome:    record.TotalIncome,
		TotalDeduction: record.TotalDeduction,
		NetAmount:      record.NetAmount,
		CreatedAt:      record.CreatedAt.Format(time.RFC3339),
	}

	if record.ViewedAt != nil {
		v := record.ViewedAt.Format(time.RFC3339)
		resp.ViewedAt = &v
	}

	return resp, nil
}

func mapToListResponse(records []Payslip) ([]PayslipResponse, error) {
	resp := make([]PayslipResponse, len(records))
	for i, record := range records {
		mapped, err := mapToResponse(record)
		if err != nil {
			return nil, err
		}
		resp[i] = mapped
	}
	return resp, nil
}
