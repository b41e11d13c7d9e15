package feedclient

import (
	"context"
	"errors"
	"sync"

	"freelancebid/internal/domain/entity"
)

// ReportsAPI is the server surface the Feed drives. *Client implements it.
type ReportsAPI interface {
	ListReports(ctx context.Context, q Query) (*PageResult, error)
	Respond(ctx context.Context, key entity.ReportKey, message string) (*RespondResult, error)
	Delete(ctx context.Context, reportType entity.ReportType, subjectRef, reportID string) error
}

type FetchStatus struct {
	Loading bool
	Err     error
}

// RespondStatus tracks respond calls, separately from fetches.
type RespondStatus struct {
	Loading bool
	Err     error
	Success string
}

type DeleteStatus struct {
	Loading bool
	Err     error
	Success string
}

// State is a snapshot of the feed. Items is a copy owned by the caller.
type State struct {
	Items       []entity.FraudReport
	Total       int
	CurrentPage int
	TotalPages  int
	Query       Query

	Fetch   FetchStatus
	Respond RespondStatus
	Delete  DeleteStatus
}

// Feed holds the admin's current page of reports and reconciles it with the
// results of fetch, respond and delete calls.
type Feed struct {
	api ReportsAPI

	mu         sync.Mutex
	state      State
	issuedSeq  uint64
	appliedSeq uint64
}

func NewFeed(api ReportsAPI, limit int) *Feed {
	return &Feed{
		api: api,
		state: State{
			CurrentPage: 1,
			TotalPages:  1,
			Query:       Query{Page: 1, Limit: limit},
		},
	}
}

func (f *Feed) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.state
	s.Items = append([]entity.FraudReport(nil), f.state.Items...)
	return s
}

// SetFilters replaces the filter and goes back to the first page.
func (f *Feed) SetFilters(respondedOnly bool, from, to string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state.Query.RespondedOnly = respondedOnly
	f.state.Query.From = from
	f.state.Query.To = to
	f.state.Query.Page = 1
}

func (f *Feed) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	f.mu.Lock()
	f.state.Query.Page = page
	f.mu.Unlock()
}

// Fetch loads the page for the current query. A response is applied only if
// no later-issued fetch has been applied already.
func (f *Feed) Fetch(ctx context.Context) error {
	f.mu.Lock()
	f.issuedSeq++
	seq := f.issuedSeq
	q := f.state.Query
	f.state.Fetch = FetchStatus{Loading: true}
	f.mu.Unlock()

	result, err := f.api.ListReports(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq <= f.appliedSeq {
		return err
	}
	f.appliedSeq = seq

	f.state.Fetch = FetchStatus{Loading: f.appliedSeq < f.issuedSeq, Err: err}
	if err != nil {
		return err
	}

	f.state.Items = result.Items
	f.state.Total = result.Total
	f.state.CurrentPage = result.CurrentPage
	f.state.TotalPages = result.TotalPages
	return nil
}

// Respond sends a reply and patches the matching row with the server's echo.
func (f *Feed) Respond(ctx context.Context, key entity.ReportKey, message string) error {
	f.mu.Lock()
	f.state.Respond = RespondStatus{Loading: true}
	f.mu.Unlock()

	result, err := f.api.Respond(ctx, key, message)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state.Respond = RespondStatus{Err: err}
		return err
	}

	for i, item := range f.state.Items {
		if item.Key() != key {
			continue
		}
		patched := entity.CloneReport(item)
		patched.Base().SetResponse(result.ResponseMessage, result.ResponseAt)
		f.state.Items[i] = patched
		break
	}
	f.state.Respond = RespondStatus{Success: result.Message}
	return nil
}

// Delete removes a report. A report the server no longer has is dropped
// locally as well. Totals are left for the next fetch to correct.
func (f *Feed) Delete(ctx context.Context, reportType entity.ReportType, subjectRef, reportID string) error {
	f.mu.Lock()
	f.state.Delete = DeleteStatus{Loading: true}
	f.mu.Unlock()

	err := f.api.Delete(ctx, reportType, subjectRef, reportID)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil && !IsNotFound(err) {
		f.state.Delete = DeleteStatus{Err: err}
		return err
	}

	items := f.state.Items[:0:0]
	for _, item := range f.state.Items {
		if item.Type() == reportType && item.SubjectRef() == subjectRef && item.Base().ReportID == reportID {
			continue
		}
		items = append(items, item)
	}
	f.state.Items = items

	if err != nil {
		f.state.Delete = DeleteStatus{Success: "Report was already deleted"}
		return nil
	}
	f.state.Delete = DeleteStatus{Success: "Report deleted"}
	return nil
}

// ErrorKind reports the Kind of a Feed or Client error, or 0.
func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
