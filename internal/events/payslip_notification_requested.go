package events

import "time"

const PayslipNotificationRequestedTopic = "payslip.notification.requested.v1"

// PayslipNotificationRequestedEvent asks the notification scheduler to tell
// employees that their payslips are available on the scheduled date.
type PayslipNotificationRequestedEvent struct {
	EventType     string    `json:"event_type"`
	UploadID      string    `json:"upload_id"`
	CompanyID     string    `json:"company_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}
