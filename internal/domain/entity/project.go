package entity

import (
	"time"
)

// ProjectComplaint is a fraud complaint embedded in the project it targets.
type ProjectComplaint struct {
	ID              string     `json:"id" firestore:"id"`
	ReportedBy      string     `json:"reportedBy" firestore:"reportedBy"`
	Reason          string     `json:"reason" firestore:"reason"`
	CreatedAt       time.Time  `json:"createdAt" firestore:"createdAt"`
	ResponseMessage *string    `json:"responseMessage,omitempty" firestore:"responseMessage,omitempty"`
	ResponseAt      *time.Time `json:"responseAt,omitempty" firestore:"responseAt,omitempty"`
}

type Project struct {
	ID      string             `json:"id" firestore:"id"`
	Title   string             `json:"title" firestore:"title"`
	UserID  string             `json:"userId" firestore:"userId"` // owner
	Status  string             `json:"status" firestore:"status"`
	Reports []ProjectComplaint `json:"reports" firestore:"reports"`

	// Owner index over Reports, rewritten on every complaint mutation
	ReportIDs   []string `json:"-" firestore:"reportIds"`
	ReportCount int      `json:"-" firestore:"reportCount"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ReindexReports recomputes ReportIDs and ReportCount from Reports.
func (p *Project) ReindexReports() {
	ids := make([]string, 0, len(p.Reports))
	for _, r := range p.Reports {
		ids = append(ids, r.ID)
	}
	p.ReportIDs = ids
	p.ReportCount = len(ids)
}

// FindReport returns the index of the embedded complaint, or -1.
func (p *Project) FindReport(reportID string) int {
	for i, r := range p.Reports {
		if r.ID == reportID {
			return i
		}
	}
	return -1
}
