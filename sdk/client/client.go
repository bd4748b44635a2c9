package client

import (
	"bytes"
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
)

// APIError is a non-2xx answer. Reason is the stable machine-readable cause,
// e.g. "invalid_transition" or "not_visible".
type APIError struct {
	StatusCode int    `json:"-"`
	Type       string `json:"type"`
	Reason     string `json:"reason,omitempty"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("api error: status=%d reason=%s: %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("api error: status=%d: %s", e.StatusCode, e.Message)
}

// IsReason reports whether err is an APIError carrying reason.
func IsReason(err error, reason string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Reason == reason
}

// Client is the CampusVoice API client. It acts for nobody until scoped with
// AsStudent or AsAuthority.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a client for baseURL, e.g. "https://voice.campus.edu".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StudentClient performs requests on behalf of one student.
type StudentClient struct {
	c      *Client
	rollNo string
}

// AuthorityClient performs requests on behalf of one authority.
type AuthorityClient struct {
	c  *Client
	id uint
}

func (c *Client) AsStudent(rollNo string) *StudentClient {
	return &StudentClient{c: c, rollNo: rollNo}
}

func (c *Client) AsAuthority(id uint) *AuthorityClient {
	return &AuthorityClient{c: c, id: id}
}

func (s *StudentClient) headers() http.Header {
	return http.Header{"X-Student-ID": []string{s.rollNo}}
}

func (a *AuthorityClient) headers() http.Header {
	return http.Header{"X-Authority-ID": []string{strconv.FormatUint(uint64(a.id), 10)}}
}

// Submit files a new complaint.
func (s *StudentClient) Submit(ctx context.Context, sub Submission) (*Complaint, error) {
	var out Complaint
	if err := s.c.doRequest(ctx, http.MethodPost, "/complaints", s.headers(), sub, &out); err != nil {
		return nil, fmt.Errorf("submit complaint: %w", err)
	}
	return &out, nil
}

// Feed lists the complaints visible to the student.
func (s *StudentClient) Feed(ctx context.Context, opts FeedOptions) (*Feed, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.IncludeClosed {
		q.Set("include_closed", "true")
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	path := "/complaints"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out Feed
	if err := s.c.doRequest(ctx, http.MethodGet, path, s.headers(), nil, &out); err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return &out, nil
}

func (s *StudentClient) Get(ctx context.Context, complaintID string) (*Complaint, error) {
	return s.c.getComplaint(ctx, s.headers(), complaintID)
}

// Vote casts or changes the student's vote. voteType is "Upvote" or "Downvote".
func (s *StudentClient) Vote(ctx context.Context, complaintID, voteType string) (*VoteResult, error) {
	var out VoteResult
	body := map[string]string{"vote_type": voteType}
	if err := s.c.doRequest(ctx, http.MethodPost, complaintPath(complaintID, "vote"), s.headers(), body, &out); err != nil {
		return nil, fmt.Errorf("vote: %w", err)
	}
	return &out, nil
}

func (s *StudentClient) RemoveVote(ctx context.Context, complaintID string) (*VoteResult, error) {
	var out VoteResult
	if err := s.c.doRequest(ctx, http.MethodDelete, complaintPath(complaintID, "vote"), s.headers(), nil, &out); err != nil {
		return nil, fmt.Errorf("remove vote: %w", err)
	}
	return &out, nil
}

// CanSee reports whether the complaint is visible to the student.
func (s *StudentClient) CanSee(ctx context.Context, complaintID string) (bool, error) {
	var out struct {
		Visible bool `json:"visible"`
	}
	if err := s.c.doRequest(ctx, http.MethodGet, complaintPath(complaintID, "visibility"), s.headers(), nil, &out); err != nil {
		return false, fmt.Errorf("check visibility: %w", err)
	}
	return out.Visible, nil
}

func (s *StudentClient) StatusHistory(ctx context.Context, complaintID string) ([]StatusUpdate, error) {
	return s.c.statusHistory(ctx, s.headers(), complaintID)
}

func (s *StudentClient) Notices(ctx context.Context) ([]Notice, error) {
	return s.c.notices(ctx, s.headers())
}

func (a *AuthorityClient) Get(ctx context.Context, complaintID string) (*Complaint, error) {
	return a.c.getComplaint(ctx, a.headers(), complaintID)
}

// UpdateStatus moves a complaint. Closed and Spam need a reason.
func (a *AuthorityClient) UpdateStatus(ctx context.Context, complaintID, status, reason string) (*Complaint, error) {
	var out Complaint
	body := map[string]string{"status": status, "reason": reason}
	if err := a.c.doRequest(ctx, http.MethodPatch, complaintPath(complaintID, "status"), a.headers(), body, &out); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return &out, nil
}

// Escalate hands the complaint to the next level of the chain.
func (a *AuthorityClient) Escalate(ctx context.Context, complaintID, reason string) (*Escalation, error) {
	var out Escalation
	body := map[string]string{"reason": reason}
	if err := a.c.doRequest(ctx, http.MethodPost, complaintPath(complaintID, "escalate"), a.headers(), body, &out); err != nil {
		return nil, fmt.Errorf("escalate: %w", err)
	}
	return &out, nil
}

func (a *AuthorityClient) StatusHistory(ctx context.Context, complaintID string) ([]StatusUpdate, error) {
	return a.c.statusHistory(ctx, a.headers(), complaintID)
}

func (a *AuthorityClient) EscalationHistory(ctx context.Context, complaintID string) ([]EscalationRecord, error) {
	var out []EscalationRecord
	if err := a.c.doRequest(ctx, http.MethodGet, complaintPath(complaintID, "escalations"), a.headers(), nil, &out); err != nil {
		return nil, fmt.Errorf("escalation history: %w", err)
	}
	return out, nil
}

func (a *AuthorityClient) PostNotice(ctx context.Context, n NewNotice) (*Notice, error) {
	var out Notice
	if err := a.c.doRequest(ctx, http.MethodPost, "/notices", a.headers(), n, &out); err != nil {
		return nil, fmt.Errorf("post notice: %w", err)
	}
	return &out, nil
}

func (a *AuthorityClient) DeactivateNotice(ctx context.Context, noticeID uint) (*Notice, error) {
	var out Notice
	path := "/notices/" + strconv.FormatUint(uint64(noticeID), 10)
	if err := a.c.doRequest(ctx, http.MethodDelete, path, a.headers(), nil, &out); err != nil {
		return nil, fmt.Errorf("deactivate notice: %w", err)
	}
	return &out, nil
}

func (a *AuthorityClient) Notices(ctx context.Context) ([]Notice, error) {
	return a.c.notices(ctx, a.headers())
}

func (c *Client) getComplaint(ctx context.Context, h http.Header, complaintID string) (*Complaint, error) {
	var out Complaint
	if err := c.doRequest(ctx, http.MethodGet, complaintPath(complaintID, ""), h, nil, &out); err != nil {
		return nil, fmt.Errorf("get complaint: %w", err)
	}
	return &out, nil
}

func (c *Client) statusHistory(ctx context.Context, h http.Header, complaintID string) ([]StatusUpdate, error) {
	var out []StatusUpdate
	if err := c.doRequest(ctx, http.MethodGet, complaintPath(complaintID, "history"), h, nil, &out); err != nil {
		return nil, fmt.Errorf("status history: %w", err)
	}
	return out, nil
}

func (c *Client) notices(ctx context.Context, h http.Header) ([]Notice, error) {
	var out []Notice
	if err := c.doRequest(ctx, http.MethodGet, "/notices", h, nil, &out); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return out, nil
}

func complaintPath(id, action string) string {
	p := "/complaints/" + url.PathEscape(id)
	if action != "" {
		p += "/" + action
	}
	return p
}

// doRequest performs an HTTP request and decodes the response data into result.
func (c *Client) doRequest(ctx context.Context, method, path string, headers http.Header, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &apiResp); err != nil {
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
			}
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !apiResp.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: apiResp.Message}
		if apiResp.Error != nil {
			apiErr = apiResp.Error
			apiErr.StatusCode = resp.StatusCode
		}
		return apiErr
	}

	if result == nil || apiResp.Data == nil {
		return nil
	}

	// Re-marshal and unmarshal to convert Data to the target type
	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return nil
}
