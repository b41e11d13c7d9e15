package feedclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancebid/internal/domain/entity"
)

const listPayload = `{
	"items": [
		{"type":"user","reportId":"r1","reportedByUserId":"a","reason":"scam","createdAt":"2024-05-03T10:00:00Z","responseMessage":null,"responseAt":null,"reportedUserId":"u1"},
		{"type":"project","reportId":"r1","reportedByUserId":"b","reason":"fake","createdAt":"2024-05-02T10:00:00Z","responseMessage":null,"responseAt":null,"fraudProjectId":"p1","projectTitle":"Shop"}
	],
	"total": 5,
	"currentPage": 1,
	"totalPages": 3
}`

func TestListReportsDecodesVariants(t *testing.T) {
	var gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/fraud-reports", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(listPayload))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL + "/", Token: "tkn"})
	page, err := client.ListReports(context.Background(), Query{Page: 1, Limit: 2, RespondedOnly: true, From: "2024-05-01"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tkn", gotAuth)
	assert.Equal(t, "from=2024-05-01&limit=2&page=1&respondedOnly=true", gotQuery)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.IsType(t, &entity.UserReport{}, page.Items[0])
	assert.IsType(t, &entity.ProjectReport{}, page.Items[1])
}

func TestListReportsRejectsBadDateLocally(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}).ListReports(context.Background(), Query{To: "May 3"})
	assert.True(t, IsKind(err, KindValidation))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestRespondValidatesBeforeSending(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Respond(context.Background(), entity.ReportKey{Type: entity.ReportTypeUser, ReportID: "r1"}, "short")
	assert.True(t, IsKind(err, KindValidation))

	_, err = client.Respond(context.Background(), entity.ReportKey{Type: "listing", ReportID: "r1"}, "long enough reply")
	assert.True(t, IsKind(err, KindValidation))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestRespondSendsPayload(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/respond-report", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "project", body["reportType"])
		assert.Equal(t, "r1", body["reportId"])

		json.NewEncoder(w).Encode(RespondResult{
			Message: "Response sent successfully", ReportID: "r1", ReportType: entity.ReportTypeProject,
			ResponseMessage: body["responseMessage"], ResponseAt: at,
		})
	}))
	defer srv.Close()

	result, err := NewClient(Config{BaseURL: srv.URL}).Respond(context.Background(),
		entity.ReportKey{Type: entity.ReportTypeProject, ReportID: "r1"}, "Listing has been removed")
	require.NoError(t, err)
	assert.Equal(t, "Listing has been removed", result.ResponseMessage)
	assert.True(t, at.Equal(result.ResponseAt))
}

func TestErrorKinds(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusNotFound)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
		w.Write([]byte(`{"code":"NOT_FOUND","message":"Fraud report not found"}`))
	}))
	defer srv.Close()
	client := NewClient(Config{BaseURL: srv.URL})

	err := client.Delete(context.Background(), entity.ReportTypeUser, "u1", "r1")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Fraud report not found", e.Message)
	assert.Equal(t, "NOT_FOUND", e.Code)

	status.Store(http.StatusBadRequest)
	err = client.Delete(context.Background(), entity.ReportTypeUser, "u1", "r1")
	assert.True(t, IsKind(err, KindValidation))

	status.Store(http.StatusInternalServerError)
	err = client.Delete(context.Background(), entity.ReportTypeUser, "u1", "r1")
	assert.True(t, IsKind(err, KindTransport))
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(Config{BaseURL: url}).ListReports(context.Background(), Query{})
	assert.True(t, IsKind(err, KindTransport))
	assert.Equal(t, KindTransport, ErrorKind(err))
}
