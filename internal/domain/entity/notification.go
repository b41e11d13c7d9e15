package entity

import (
	"time"
)

const NotificationFraudReportResponse = "fraud_report_response"

// Notification is delivered to a reporter when a moderator answers their complaint.
type Notification struct {
	ID         string     `json:"id" firestore:"id"`
	UserID     string     `json:"userId" firestore:"userId"`
	Type       string     `json:"type" firestore:"type"`
	Message    string     `json:"message" firestore:"message"`
	ReportID   string     `json:"reportId" firestore:"reportId"`
	ReportType ReportType `json:"reportType" firestore:"reportType"`
	Read       bool       `json:"read" firestore:"read"`
	CreatedAt  time.Time  `json:"createdAt" firestore:"createdAt"`
}
