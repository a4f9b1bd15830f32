package stackexchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/glabrego/stackq-cli/internal/debug"
)

const (
	DefaultBaseURL   = "https://api.stackexchange.com/2.3"
	DefaultSite      = "stackoverflow"
	DefaultPageSize  = 20
	DefaultUserAgent = "stackq-cli/0.1"

	questionFilter = "!nNPvSNPI7A"
	answerFilter   = "!nNPvSNdWme"
)

// Owner is the subset of the shallow_user object the app displays.
type Owner struct {
	DisplayName string `json:"display_name"`
}

// Question is the subset of Stack Exchange question fields required by the app.
type Question struct {
	ID           int64    `json:"question_id"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	CreationDate int64    `json:"creation_date"`
	AnswerCount  int      `json:"answer_count"`
	Score        int      `json:"score"`
	IsAnswered   bool     `json:"is_answered"`
	Tags         []string `json:"tags"`
	Owner        Owner    `json:"owner"`
	Link         string   `json:"link"`
}

// Answer is the subset of Stack Exchange answer fields required by the app.
type Answer struct {
	Body         string `json:"body"`
	Owner        Owner  `json:"owner"`
	CreationDate int64  `json:"creation_date"`
	Score        int    `json:"score"`
	IsAccepted   bool   `json:"is_accepted"`
}

type wrapper[T any] struct {
	Items          []T    `json:"items"`
	HasMore        bool   `json:"has_more"`
	QuotaMax       int    `json:"quota_max"`
	QuotaRemaining int    `json:"quota_remaining"`
	Backoff        int    `json:"backoff"`
	ErrorID        int    `json:"error_id"`
	ErrorName      string `json:"error_name"`
	ErrorMessage   string `json:"error_message"`
}

// ServiceError reports a failed call to the Stack Exchange API: either a
// non-success HTTP status or a response body that could not be decoded.
type ServiceError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + " failed"
	}
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsServiceError reports whether err carries a *ServiceError.
func IsServiceError(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr)
}

type Options struct {
	Site      string
	PageSize  int
	APIKey    string
	UserAgent string
}

type Client struct {
	baseURL   string
	site      string
	pageSize  int
	apiKey    string
	userAgent string
	http      *http.Client
}

func NewClient(baseURL string, opts Options, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if opts.Site == "" {
		opts.Site = DefaultSite
	}
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		site:      opts.Site,
		pageSize:  opts.PageSize,
		apiKey:    opts.APIKey,
		userAgent: opts.UserAgent,
		http:      httpClient,
	}
}

// SearchQuestions runs an advanced search restricted to answered questions,
// newest activity first. Only the first page is requested.
func (c *Client) SearchQuestions(ctx context.Context, query string) ([]Question, error) {
	q := make(url.Values)
	q.Set("pagesize", strconv.Itoa(c.pageSize))
	q.Set("order", "desc")
	q.Set("sort", "activity")
	q.Set("answers", "1")
	q.Set("site", c.site)
	q.Set("q", query)
	q.Set("filter", questionFilter)

	var out wrapper[Question]
	if err := c.getJSON(ctx, "/search/advanced", q, "search questions", &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListAnswers(ctx context.Context, questionID int64) ([]Answer, error) {
	q := make(url.Values)
	q.Set("order", "desc")
	q.Set("sort", "activity")
	q.Set("site", c.site)
	q.Set("filter", answerFilter)

	var out wrapper[Answer]
	path := "/questions/" + strconv.FormatInt(questionID, 10) + "/answers"
	if err := c.getJSON(ctx, path, q, "list answers", &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, op string, out any) error {
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	req, err := c.newRequest(ctx, http.MethodGet, path+"?"+q.Encode())
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ServiceError{Op: op, StatusCode: resp.StatusCode, Message: apiErrorMessage(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServiceError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	logQuota(op, out)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// apiErrorMessage prefers the API's own error envelope over the raw body.
func apiErrorMessage(body []byte) string {
	var env wrapper[json.RawMessage]
	if err := json.Unmarshal(body, &env); err == nil && env.ErrorID != 0 {
		if env.ErrorMessage != "" {
			return fmt.Sprintf("%s (%d): %s", env.ErrorName, env.ErrorID, env.ErrorMessage)
		}
		return fmt.Sprintf("%s (%d)", env.ErrorName, env.ErrorID)
	}
	return strings.TrimSpace(string(body))
}

func logQuota(op string, out any) {
	switch w := out.(type) {
	case *wrapper[Question]:
		debug.LogKV("api", op, "items", len(w.Items), "quota_remaining", w.QuotaRemaining, "backoff", w.Backoff)
	case *wrapper[Answer]:
		debug.LogKV("api", op, "items", len(w.Items), "quota_remaining", w.QuotaRemaining, "backoff", w.Backoff)
	}
}
