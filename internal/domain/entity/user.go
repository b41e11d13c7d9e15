package entity

import (
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserComplaint is a fraud complaint embedded in the user it targets.
type UserComplaint struct {
	ID              string     `json:"id" firestore:"id"`
	ReporterID      string     `json:"reporterId" firestore:"reporterId"`
	Reason          string     `json:"reason" firestore:"reason"`
	ReportedAt      time.Time  `json:"reportedAt" firestore:"reportedAt"`
	ResponseMessage *string    `json:"responseMessage,omitempty" firestore:"responseMessage,omitempty"`
	ResponseAt      *time.Time `json:"responseAt,omitempty" firestore:"responseAt,omitempty"`
}

type User struct {
	ID     string `json:"id" firestore:"id"`
	Name   string `json:"name" firestore:"name"`
	Email  string `json:"email" firestore:"email"`
	Role   string `json:"role" firestore:"role"`
	Status string `json:"status" firestore:"status"`

	ReportedBy []UserComplaint `json:"reportedBy" firestore:"reportedBy"`

	// Owner index over ReportedBy
	ReportIDs   []string `json:"-" firestore:"reportIds"`
	ReportCount int      `json:"-" firestore:"reportCount"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) ReindexReports() {
	ids := make([]string, 0, len(u.ReportedBy))
	for _, r := range u.ReportedBy {
		ids = append(ids, r.ID)
	}
	u.ReportIDs = ids
	u.ReportCount = len(ids)
}

func (u *User) FindReport(reportID string) int {
	for i, r := range u.ReportedBy {
		if r.ID == reportID {
			return i
		}
	}
	return -1
}

// UserIdentity is the display subset of a user used when rendering reports.
type UserIdentity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Identity() UserIdentity {
	return UserIdentity{ID: u.ID, Name: u.Name, Email: u.Email}
}
