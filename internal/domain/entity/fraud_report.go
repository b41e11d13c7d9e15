package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ReportType discriminates the two FraudReport variants.
type ReportType string

const (
	ReportTypeProject ReportType = "project"
	ReportTypeUser    ReportType = "user"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeProject, ReportTypeUser:
		return true
	default:
		return false
	}
}

// ReportKey identifies a report across both sources. A report id alone is
// only unique inside its owning document.
type ReportKey struct {
	Type     ReportType
	ReportID string
}

// ReportBase holds the fields shared by both report variants.
type ReportBase struct {
	ReportID         string  `json:"reportId"`
	ReportedByUserID string  `json:"reportedByUserId"`
	ReportedByName   *string `json:"reportedByName,omitempty"`
	ReportedByEmail  *string `json:"reportedByEmail,omitempty"`

	// Set when the related entity could not be resolved at read time
	ReporterUnavailable bool `json:"reporterUnavailable,omitempty"`
	SubjectUnavailable  bool `json:"subjectUnavailable,omitempty"`

	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`

	// Both nil until a moderator responds, then both set
	ResponseMessage *string    `json:"responseMessage"`
	ResponseAt      *time.Time `json:"responseAt"`
}

func (b *ReportBase) Responded() bool {
	return b.ResponseMessage != nil && b.ResponseAt != nil
}

// SetResponse records a moderator reply. The pair is always written together.
func (b *ReportBase) SetResponse(message string, at time.Time) {
	msg := message
	ts := at
	b.ResponseMessage = &msg
	b.ResponseAt = &ts
}

// FraudReport is the normalized read model. Only *ProjectReport and
// *UserReport implement it.
type FraudReport interface {
	Type() ReportType
	// SubjectRef is the id of the project or user complained about
	SubjectRef() string
	Base() *ReportBase
	Key() ReportKey

	isFraudReport()
}

type ProjectReport struct {
	ReportBase
	FraudProjectID    string  `json:"fraudProjectId"`
	ProjectTitle      *string `json:"projectTitle,omitempty"`
	ProjectOwnerName  *string `json:"projectOwnerName,omitempty"`
	ProjectOwnerEmail *string `json:"projectOwnerEmail,omitempty"`
}

func (r *ProjectReport) Type() ReportType   { return ReportTypeProject }
func (r *ProjectReport) SubjectRef() string { return r.FraudProjectID }
func (r *ProjectReport) Base() *ReportBase  { return &r.ReportBase }
func (r *ProjectReport) Key() ReportKey     { return ReportKey{Type: ReportTypeProject, ReportID: r.ReportID} }
func (r *ProjectReport) isFraudReport()     {}

func (r ProjectReport) MarshalJSON() ([]byte, error) {
	type plain ProjectReport
	return json.Marshal(struct {
		Type ReportType `json:"type"`
		plain
	}{ReportTypeProject, plain(r)})
}

type UserReport struct {
	ReportBase
	ReportedUserID    string  `json:"reportedUserId"`
	ReportedUserName  *string `json:"reportedUserName,omitempty"`
	ReportedUserEmail *string `json:"reportedUserEmail,omitempty"`
}

func (r *UserReport) Type() ReportType   { return ReportTypeUser }
func (r *UserReport) SubjectRef() string { return r.ReportedUserID }
func (r *UserReport) Base() *ReportBase  { return &r.ReportBase }
func (r *UserReport) Key() ReportKey     { return ReportKey{Type: ReportTypeUser, ReportID: r.ReportID} }
func (r *UserReport) isFraudReport()     {}

func (r UserReport) MarshalJSON() ([]byte, error) {
	type plain UserReport
	return json.Marshal(struct {
		Type ReportType `json:"type"`
		plain
	}{ReportTypeUser, plain(r)})
}

// DecodeFraudReport reads one wire item and returns the variant named by its
// type field. Unknown types are rejected.
func DecodeFraudReport(raw []byte) (FraudReport, error) {
	var head struct {
		Type ReportType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case ReportTypeProject:
		var r ProjectReport
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		return &r, nil
	case ReportTypeUser:
		var r UserReport
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		return &r, nil
	default:
		return nil, fmt.Errorf("unknown report type %q", head.Type)
	}
}

// CloneReport returns a copy whose response fields can be replaced without
// touching the original.
func CloneReport(r FraudReport) FraudReport {
	switch v := r.(type) {
	case *ProjectReport:
		c := *v
		return &c
	case *UserReport:
		c := *v
		return &c
	default:
		panic(fmt.Sprintf("entity: unexpected FraudReport variant %T", r))
	}
}

// MinResponseMessageLength is the shortest accepted moderator reply, counted
// in characters after trimming surrounding whitespace.
const MinResponseMessageLength = 10

func ValidResponseMessage(message string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(message)) >= MinResponseMessageLength
}
