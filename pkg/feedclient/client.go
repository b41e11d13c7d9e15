package feedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"freelancebid/internal/domain/entity"
)

const defaultTimeout = 15 * time.Second

type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// Client talks to the admin fraud report endpoints.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    httpClient,
	}
}

// Query mirrors the list endpoint parameters. Zero values are omitted.
type Query struct {
	Page          int
	Limit         int
	RespondedOnly bool
	From          string
	To            string
}

func (q Query) validate() error {
	bounds := []struct{ field, value string }{{"from", q.From}, {"to", q.To}}
	for _, b := range bounds {
		if b.value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", b.value); err != nil {
			return validationError(b.field + " must be a date in YYYY-MM-DD format")
		}
	}
	return nil
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.RespondedOnly {
		v.Set("respondedOnly", "true")
	}
	if q.From != "" {
		v.Set("from", q.From)
	}
	if q.To != "" {
		v.Set("to", q.To)
	}
	return v
}

type PageResult struct {
	Items       []entity.FraudReport
	Total       int
	CurrentPage int
	TotalPages  int
}

type RespondResult struct {
	Message         string            `json:"message"`
	ReportID        string            `json:"reportId"`
	ReportType      entity.ReportType `json:"reportType"`
	ResponseMessage string            `json:"responseMessage"`
	ResponseAt      time.Time         `json:"responseAt"`
}

func (c *Client) ListReports(ctx context.Context, q Query) (*PageResult, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	var body struct {
		Items       []json.RawMessage `json:"items"`
		Total       int               `json:"total"`
		CurrentPage int               `json:"currentPage"`
		TotalPages  int               `json:"totalPages"`
	}
	path := "/admin/fraud-reports"
	if encoded := q.values().Encode(); encoded != "" {
		path += "?" + encoded
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}

	result := &PageResult{
		Items:       make([]entity.FraudReport, 0, len(body.Items)),
		Total:       body.Total,
		CurrentPage: body.CurrentPage,
		TotalPages:  body.TotalPages,
	}
	for _, raw := range body.Items {
		report, err := entity.DecodeFraudReport(raw)
		if err != nil {
			return nil, transportError("invalid report in response", err)
		}
		result.Items = append(result.Items, report)
	}
	return result, nil
}

// Respond is rejected locally when the report type or message is invalid.
func (c *Client) Respond(ctx context.Context, key entity.ReportKey, message string) (*RespondResult, error) {
	if !key.Type.Valid() {
		return nil, validationError("reportType must be one of: project user")
	}
	if key.ReportID == "" {
		return nil, validationError("reportId is required")
	}
	if !entity.ValidResponseMessage(message) {
		return nil, validationError("Response message must be at least 10 characters")
	}

	payload := map[string]string{
		"reportType":      string(key.Type),
		"reportId":        key.ReportID,
		"responseMessage": message,
	}
	var result RespondResult
	if err := c.do(ctx, http.MethodPost, "/admin/respond-report", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Delete(ctx context.Context, reportType entity.ReportType, subjectRef, reportID string) error {
	if !reportType.Valid() {
		return validationError("type must be one of: project user")
	}
	if subjectRef == "" || reportID == "" {
		return validationError("reportedOnId and reportId are required")
	}

	path := "/admin/fraud-reports/" + url.PathEscape(string(reportType)) + "/" +
		url.PathEscape(subjectRef) + "/" + url.PathEscape(reportID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return transportError("failed to encode request", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return transportError("failed to build request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	return nil
}

func decodeError(resp *http.Response) *Error {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}

	kind := KindTransport
	switch resp.StatusCode {
	case http.StatusBadRequest:
		kind = KindValidation
	case http.StatusNotFound:
		kind = KindNotFound
	}

	return &Error{
		Kind:    kind,
		Status:  resp.StatusCode,
		Code:    body.Code,
		Message: body.Message,
	}
}
