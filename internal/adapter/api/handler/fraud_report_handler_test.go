package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancebid/internal/adapter/api"
	"freelancebid/internal/adapter/api/handler"
	"freelancebid/internal/adapter/api/middleware"
	"freelancebid/internal/adapter/api/router"
	"freelancebid/internal/adapter/repository"
	"freelancebid/internal/domain/entity"
	"freelancebid/internal/usecase"
	"freelancebid/pkg/response"
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

type staticVerifier map[string]string

func (v staticVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if uid, ok := v[token]; ok {
		return uid, nil
	}
	return "", errors.New("unknown token")
}

func newTestServer(t *testing.T) (*echo.Echo, *repository.MemoryStore) {
	t.Helper()

	store := repository.NewMemoryStore()
	require.NoError(t, repository.SeedDemoData(context.Background(), store, "admin"))

	directory := repository.NewUserDirectory(store.Users())
	fraudReportUseCase := usecase.NewFraudReportUseCase(store.Projects(), store.Users(), store.Notifications(), directory)
	complaintUseCase := usecase.NewComplaintUseCase(store.Projects(), store.Users(), store.Notifications())

	e := echo.New()
	e.Validator = api.NewValidator()

	verifier := staticVerifier{adminToken: "admin", userToken: "client-1"}
	router.Setup(e,
		handler.Handlers{
			FraudReport: handler.NewFraudReportHandler(fraudReportUseCase, 10),
			Complaint:   handler.NewComplaintHandler(complaintUseCase),
			Health:      handler.NewHealthHandler("memory", false),
		},
		middleware.NewAuthMiddleware(verifier),
		middleware.NewAdminMiddleware(store.Users()),
		nil,
	)
	return e, store
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type listBody struct {
	Items       []json.RawMessage `json:"items"`
	Total       int               `json:"total"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListFraudReports(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/admin/fraud-reports?limit=1", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body listBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 2, body.TotalPages)
	assert.Equal(t, 1, body.CurrentPage)
	require.Len(t, body.Items, 1)

	report, err := entity.DecodeFraudReport(body.Items[0])
	require.NoError(t, err)
	assert.Equal(t, "seed-project-report-1", report.Base().ReportID)
	assert.Equal(t, entity.ReportTypeProject, report.Type())
}

func TestListFraudReportsRejectsBadDate(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/admin/fraud-reports?from=yesterday", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/admin/fraud-reports", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/admin/fraud-reports", "bogus", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/admin/fraud-reports", userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRespondReport(t *testing.T) {
	e, store := newTestServer(t)

	rec := do(e, http.MethodPost, "/admin/respond-report", adminToken,
		`{"reportType":"user","reportId":"seed-user-report-1","responseMessage":"We warned the freelancer"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result usecase.RespondResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Response sent successfully", result.Message)
	assert.Equal(t, "seed-user-report-1", result.ReportID)
	assert.Equal(t, entity.ReportTypeUser, result.ReportType)
	assert.Equal(t, "We warned the freelancer", result.ResponseMessage)
	assert.False(t, result.ResponseAt.IsZero())

	user, err := store.Users().GetByID(context.Background(), "freelancer-1")
	require.NoError(t, err)
	require.NotNil(t, user.ReportedBy[0].ResponseMessage)

	rec = do(e, http.MethodGet, "/admin/fraud-reports?respondedOnly=true", adminToken, "")
	var body listBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
}

func TestRespondReportValidation(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/admin/respond-report", adminToken,
		`{"reportType":"project","reportId":"seed-project-report-1","responseMessage":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "responseMessage must be at least 10 characters", body.Message)

	rec = do(e, http.MethodPost, "/admin/respond-report", adminToken,
		`{"reportType":"listing","reportId":"seed-project-report-1","responseMessage":"long enough reply"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/admin/respond-report", adminToken, `{"reportType":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/admin/respond-report", adminToken,
		`{"reportType":"project","reportId":"missing","responseMessage":"long enough reply"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
}

func TestDeleteReport(t *testing.T) {
	e, _ := newTestServer(t)
	path := "/admin/fraud-reports/project/project-1/seed-project-report-1"

	rec := do(e, http.MethodDelete, path, adminToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodDelete, path, adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/admin/fraud-reports", adminToken, "")
	var body listBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storage":"memory"`)
}
