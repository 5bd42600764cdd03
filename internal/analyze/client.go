package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"joblens/internal/posting"
)

const (
	analyzeTimeout = 60 * time.Second
	healthTimeout  = 10 * time.Second

	maxResponseBytes = 4 << 20
)

// NormalizeBackendURL trims the input, strips trailing slashes and requires
// an absolute http(s) URL. The normalized form is the only form ever sent
// or cached against.
func NormalizeBackendURL(raw string) (string, error) {
	s := strings.TrimRight(strings.TrimSpace(raw), "/")
	if s == "" {
		return "", ErrInvalidBackendURL
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", ErrInvalidBackendURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: got scheme %q", ErrInvalidBackendURL, u.Scheme)
	}
	return s, nil
}

// Client talks to the analysis backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
}

func NewClient(rawURL string, logger *log.Logger) (*Client, error) {
	base, err := NormalizeBackendURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    base,
		logger:     logger,
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

type analyzeRequest struct {
	JobData    posting.Posting `json:"jobData"`
	ResumeText string          `json:"resumeText"`
}

// Result is the analysis payload returned by the backend.
type Result struct {
	MatchPercentage              int      `json:"match_percentage"`
	MissingSkills                []string `json:"missing_skills"`
	MatchedSkills                []string `json:"matched_skills"`
	ATSKeywordsMissing           []string `json:"ats_keywords_missing"`
	HiddenRequirements           []string `json:"hidden_requirements"`
	ResumeImprovementSuggestions []string `json:"resume_improvement_suggestions"`
	RecommendedProjects          []string `json:"recommended_projects"`
	ConfidenceScore              float64  `json:"confidence_score"`
	ExperienceRequired           string   `json:"experience_required"`
}

// Analyze sends the guarded external call. It owns the hard timeout; on
// timeout or transport failure the error wraps ErrBackendUnreachable so the
// caller can refund the quota token.
func (c *Client) Analyze(ctx context.Context, job posting.Posting, resumeText string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	body, status, err := c.postJSON(ctx, c.baseURL+"/analyze", analyzeRequest{JobData: job, ResumeText: resumeText})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	if status/100 != 2 {
		return nil, backendErrorFrom(status, body)
	}

	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &BackendError{StatusCode: status, Message: "analysis backend returned an unreadable response"}
	}
	return &res, nil
}

// Health is the lightweight reachability check.
type Health struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return Health{}, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Health{}, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return Health{}, &BackendError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("backend health check failed (status %d)", resp.StatusCode)}
	}

	h := Health{Service: "unknown", Status: "ok"}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	var got Health
	if err := json.Unmarshal(raw, &got); err == nil {
		if strings.TrimSpace(got.Service) != "" {
			h.Service = got.Service
		}
		if strings.TrimSpace(got.Status) != "" {
			h.Status = got.Status
		}
	}
	return h, nil
}

func (c *Client) postJSON(ctx context.Context, fullURL string, payload any) ([]byte, int, error) {
	bs, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(bs))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("backend request failed | url=%s elapsed_ms=%d err=%v", fullURL, time.Since(start).Milliseconds(), err)
		}
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if c.logger != nil {
		c.logger.Printf("backend response | url=%s status=%d bytes=%d elapsed_ms=%d", fullURL, resp.StatusCode, len(raw), time.Since(start).Milliseconds())
	}
	return raw, resp.StatusCode, nil
}

// errorBody is a lenient decode of backend error payloads. FastAPI-style
// validation errors arrive as a detail list of objects with msg fields;
// detail may also be a bare string.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

func backendErrorFrom(status int, body []byte) *BackendError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msgs := detailMessages(eb.Detail)

	if status == http.StatusUnprocessableEntity {
		for _, m := range msgs {
			lower := strings.ToLower(m)
			if strings.Contains(lower, "description") && strings.Contains(lower, "short") {
				return &BackendError{
					StatusCode:          status,
					Message:             "job description is still loading, scroll the job page and retry shortly",
					DescriptionTooShort: true,
				}
			}
		}
	}

	msg := strings.TrimSpace(eb.Message)
	if msg == "" && len(msgs) > 0 {
		msg = msgs[0]
	}
	if msg == "" {
		msg = fmt.Sprintf("analysis backend rejected the request (status %d)", status)
	}
	return &BackendError{StatusCode: status, Message: msg}
}

func detailMessages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return []string{asString}
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, it := range items {
			if strings.TrimSpace(it.Msg) != "" {
				out = append(out, it.Msg)
			}
		}
		return out
	}
	return nil
}
