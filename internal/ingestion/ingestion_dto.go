package ingestion

import "time"

type RegisterUploadRequest struct {
	CompanyID     string  `json:"company_id" binding:"required,uuid"`
	FileURL       string  `json:"file_url" binding:"required"`
	PaymentDate   string  `json:"payment_date" binding:"required"`
	ScheduledDate *string `json:"scheduled_date"`
}

type UploadResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	FileURL        string  `json:"file_url"`
	PaymentDate    string  `json:"payment_date"`
	Status         string  `json:"status"`
	ProcessedCount int     `json:"processed_count"`
	ErrorCount     int     `json:"error_count"`
	ErrorMessage   *string `json:"error_message,omitempty"`
	ScheduledDate  *string `json:"scheduled_date,omitempty"`
	NotifiedAt     *string `json:"notified_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// ProcessUploadRequest triggers one ingestion run. ColumnMappings, when
// present, overrides the per-item column hints of the payroll-item catalog;
// keys are payroll item ids, values are 0-based CSV column indexes.
type ProcessUploadRequest struct {
	UploadID           string         `json:"upload_id" binding:"required,uuid"`
	FileURL            string         `json:"file_url"`
	CompanyID          string         `json:"company_id" binding:"required,uuid"`
	UpdateEmployeeInfo bool           `json:"update_employee_info"`
	ColumnMappings     map[string]int `json:"column_mappings"`
}

type ProcessUploadResponse struct {
	Success          bool `json:"success"`
	ProcessedCount   int  `json:"processed_count"`
	EmployeesUpdated int  `json:"employees_updated"`
	ErrorCount       int  `json:"error_count"`
}

func mapToUploadResponse(job UploadJob) UploadResponse {
	resp := UploadResponse{
		ID:             job.ID.String(),
		CompanyID:      job.CompanyID.String(),
		FileURL:        job.FileURL,
		PaymentDate:    job.PaymentDate.Format("2006-01-02"),
		Status:         job.Status,
		ProcessedCount: job.ProcessedCount,
		ErrorCount:     job.ErrorCount,
		ErrorMessage:   job.ErrorMessage,
		CreatedAt:      job.CreatedAt.Format(time.RFC3339),
	}

	if job.ScheduledDate != nil {
		v := job.ScheduledDate.Format("2006-01-02")
		resp.ScheduledDate = &v
	}
	if job.NotifiedAt != nil {
		v := job.NotifiedAt.Format(time.RFC3339)
		resp.NotifiedAt = &v
	}

	return resp
}
