package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapterrepo "freelancebid/internal/adapter/repository"
	"freelancebid/internal/domain/entity"
	"freelancebid/pkg/errors"
)

var (
	day1 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	day3 = time.Date(2024, 5, 3, 23, 30, 0, 0, time.UTC)
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) LookupUsers(ctx context.Context, ids []string) (map[string]entity.UserIdentity, error) {
	args := m.Called(ctx, ids)
	identities, _ := args.Get(0).(map[string]entity.UserIdentity)
	return identities, args.Error(1)
}

// seedStore stores one project with two complaints and one user with one.
func seedStore(t *testing.T) *adapterrepo.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := adapterrepo.NewMemoryStore()

	users := []*entity.User{
		{ID: "owner", Name: "Olivia Owner", Email: "olivia@example.com", Role: entity.RoleUser},
		{ID: "alice", Name: "Alice", Email: "alice@example.com", Role: entity.RoleUser},
		{ID: "bob", Name: "Bob", Email: "bob@example.com", Role: entity.RoleUser},
		{ID: "mallory", Name: "Mallory", Email: "mallory@example.com", Role: entity.RoleUser,
			ReportedBy: []entity.UserComplaint{
				{ID: "u-r1", ReporterID: "alice", Reason: "asked for off-platform payment", ReportedAt: day3},
			},
		},
	}
	for _, u := range users {
		require.NoError(t, store.Users().Create(ctx, u))
	}

	require.NoError(t, store.Projects().Create(ctx, &entity.Project{
		ID:     "p1",
		Title:  "Mobile app MVP",
		UserID: "owner",
		Reports: []entity.ProjectComplaint{
			{ID: "p-r1", ReportedBy: "alice", Reason: "copied description", CreatedAt: day1},
			{ID: "p-r2", ReportedBy: "bob", Reason: "budget is fake", CreatedAt: day2},
		},
	}))
	return store
}

func newUseCase(store *adapterrepo.MemoryStore, now time.Time) *FraudReportUseCase {
	directory := adapterrepo.NewUserDirectory(store.Users())
	return NewFraudReportUseCase(store.Projects(), store.Users(), store.Notifications(), directory).
		WithClock(func() time.Time { return now })
}

func reportIDs(reports []entity.FraudReport) []string {
	ids := make([]string, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.Base().ReportID)
	}
	return ids
}

func TestListReportsPaginatesNewestFirst(t *testing.T) {
	uc := newUseCase(seedStore(t), time.Now())
	ctx := context.Background()

	page, err := uc.ListReports(ctx, ListReportsInput{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, []string{"u-r1", "p-r2"}, reportIDs(page.Items))

	page, err = uc.ListReports(ctx, ListReportsInput{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-r1"}, reportIDs(page.Items))

	page, err = uc.ListReports(ctx, ListReportsInput{Page: 7, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestListReportsAttachesIdentities(t *testing.T) {
	uc := newUseCase(seedStore(t), time.Now())

	page, err := uc.ListReports(context.Background(), ListReportsInput{Page: 1, Limit: 10})
	require.NoError(t, err)

	for _, r := range page.Items {
		switch v := r.(type) {
		case *entity.ProjectReport:
			assert.Equal(t, "p1", v.FraudProjectID)
			assert.Equal(t, "Mobile app MVP", *v.ProjectTitle)
			assert.Equal(t, "Olivia Owner", *v.ProjectOwnerName)
			assert.Equal(t, "olivia@example.com", *v.ProjectOwnerEmail)
			assert.False(t, v.SubjectUnavailable)
		case *entity.UserReport:
			assert.Equal(t, "mallory", v.ReportedUserID)
			assert.Equal(t, "Mallory", *v.ReportedUserName)
			assert.Equal(t, "Alice", *v.ReportedByName)
			assert.True(t, day3.Equal(v.CreatedAt))
		default:
			t.Fatalf("unexpected report %T", r)
		}
		assert.False(t, r.Base().ReporterUnavailable)
		assert.False(t, r.Base().Responded())
	}
}

func TestListReportsFilters(t *testing.T) {
	store := seedStore(t)
	uc := newUseCase(store, day3.Add(time.Hour))
	ctx := context.Background()

	_, err := uc.Respond(ctx, "admin", RespondInput{ReportType: "project", ReportID: "p-r1", ResponseMessage: "Listing removed, thanks"})
	require.NoError(t, err)

	page, err := uc.ListReports(ctx, ListReportsInput{Page: 1, Limit: 10, Filter: ReportFilter{RespondedOnly: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-r1"}, reportIDs(page.Items))
	assert.Equal(t, 1, page.Total)

	from, err := ParseCalendarDate("from", "2024-05-02")
	require.NoError(t, err)
	to, err := ParseCalendarDate("to", "2024-05-03")
	require.NoError(t, err)

	page, err = uc.ListReports(ctx, ListReportsInput{Page: 1, Limit: 10, Filter: ReportFilter{From: from, To: to}})
	require.NoError(t, err)
	assert.Equal(t, []string{"u-r1", "p-r2"}, reportIDs(page.Items))

	page, err = uc.ListReports(ctx, ListReportsInput{Page: 1, Limit: 10, Filter: ReportFilter{From: to, To: from}})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestRespondRejectsShortMessage(t *testing.T) {
	store := seedStore(t)
	uc := newUseCase(store, time.Now())
	ctx := context.Background()

	_, err := uc.Respond(ctx, "admin", RespondInput{ReportType: "project", ReportID: "p-r1", ResponseMessage: "short"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = uc.Respond(ctx, "admin", RespondInput{ReportType: "project", ReportID: "p-r1", ResponseMessage: "    padded    "})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	project, err := store.Projects().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, project.Reports[0].ResponseMessage)
	assert.Nil(t, project.Reports[0].ResponseAt)

	notifications, err := store.Notifications().ListByUser(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestRespondRejectsUnknownType(t *testing.T) {
	uc := newUseCase(seedStore(t), time.Now())

	_, err := uc.Respond(context.Background(), "admin", RespondInput{ReportType: "listing", ReportID: "p-r1", ResponseMessage: "long enough message"})
	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestRespondRecordsAndOverwrites(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()
	first := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	result, err := newUseCase(store, first).Respond(ctx, "admin", RespondInput{
		ReportType: "user", ReportID: "u-r1", ResponseMessage: "Account suspended pending review",
	})
	require.NoError(t, err)
	assert.Equal(t, "Response sent successfully", result.Message)
	assert.Equal(t, entity.ReportTypeUser, result.ReportType)
	assert.Equal(t, "u-r1", result.ReportID)
	assert.True(t, first.Equal(result.ResponseAt))

	user, err := store.Users().GetByID(ctx, "mallory")
	require.NoError(t, err)
	require.NotNil(t, user.ReportedBy[0].ResponseMessage)
	assert.Equal(t, "Account suspended pending review", *user.ReportedBy[0].ResponseMessage)
	assert.True(t, first.Equal(*user.ReportedBy[0].ResponseAt))

	second := first.Add(2 * time.Hour)
	_, err = newUseCase(store, second).Respond(ctx, "admin", RespondInput{
		ReportType: "user", ReportID: "u-r1", ResponseMessage: "Account permanently banned",
	})
	require.NoError(t, err)

	user, err = store.Users().GetByID(ctx, "mallory")
	require.NoError(t, err)
	assert.Equal(t, "Account permanently banned", *user.ReportedBy[0].ResponseMessage)
	assert.True(t, second.Equal(*user.ReportedBy[0].ResponseAt))
	assert.Len(t, user.ReportedBy, 1)

	notifications, err := store.Notifications().ListByUser(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "Account permanently banned", notifications[0].Message)
	assert.Equal(t, entity.NotificationFraudReportResponse, notifications[0].Type)
}

func TestRespondUnknownReport(t *testing.T) {
	uc := newUseCase(seedStore(t), time.Now())

	_, err := uc.Respond(context.Background(), "admin", RespondInput{ReportType: "project", ReportID: "u-r1", ResponseMessage: "long enough message"})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestDeleteReport(t *testing.T) {
	store := seedStore(t)
	uc := newUseCase(store, time.Now())
	ctx := context.Background()

	input := DeleteReportInput{ReportType: "project", ReportedOnID: "p1", ReportID: "p-r2"}
	require.NoError(t, uc.DeleteReport(ctx, "admin", input))

	project, err := store.Projects().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, project.ReportCount)
	assert.Equal(t, []string{"p-r1"}, project.ReportIDs)

	err = uc.DeleteReport(ctx, "admin", input)
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	err = uc.DeleteReport(ctx, "admin", DeleteReportInput{ReportType: "user", ReportedOnID: "nobody", ReportID: "u-r1"})
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	err = uc.DeleteReport(ctx, "admin", DeleteReportInput{ReportType: "thing", ReportedOnID: "p1", ReportID: "p-r1"})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	page, err := uc.ListReports(ctx, ListReportsInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}

func TestListReportsDegradesOnLookupFailure(t *testing.T) {
	store := seedStore(t)
	directory := new(mockDirectory)
	directory.On("LookupUsers", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	uc := NewFraudReportUseCase(store.Projects(), store.Users(), store.Notifications(), directory)

	page, err := uc.ListReports(context.Background(), ListReportsInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	for _, r := range page.Items {
		assert.True(t, r.Base().ReporterUnavailable)
		assert.Nil(t, r.Base().ReportedByName)
		if p, ok := r.(*entity.ProjectReport); ok {
			assert.True(t, p.SubjectUnavailable)
			assert.Nil(t, p.ProjectOwnerName)
			assert.NotNil(t, p.ProjectTitle)
		}
	}
	directory.AssertNumberOfCalls(t, "LookupUsers", 1)
}

func TestListReportsMarksMissingReporter(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()
	require.NoError(t, store.Projects().AddReport(ctx, "p1", entity.ProjectComplaint{
		ID: "p-r3", ReportedBy: "deleted-user", Reason: "spam listing", CreatedAt: day3.Add(time.Hour),
	}))

	page, err := newUseCase(store, time.Now()).ListReports(ctx, ListReportsInput{Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	r := page.Items[0]
	assert.Equal(t, "p-r3", r.Base().ReportID)
	assert.True(t, r.Base().ReporterUnavailable)
	assert.False(t, r.(*entity.ProjectReport).SubjectUnavailable)
}
