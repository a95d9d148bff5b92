package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"gitlab.com/fcv-2025.net/submission-judge/internal/config"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

var _ secondary.BatchExecutor = (*Client)(nil)

const maxErrorBody = 512

// Client talks to a Judge0 compatible engine over its batch endpoints
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	authToken  string
	httpClient *http.Client
	inflight   *semaphore.Weighted
	logger     primary.Logger
}

func NewClient(cfg *config.JudgeConfig, httpClient *http.Client, logger primary.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	maxInflight := cfg.MaxInflight
	if maxInflight <= 0 {
		maxInflight = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiHost:    cfg.APIHost,
		authToken:  cfg.AuthToken,
		httpClient: httpClient,
		inflight:   semaphore.NewWeighted(int64(maxInflight)),
		logger:     logger,
	}
}

// SubmitBatch posts every job in a single request
func (c *Client) SubmitBatch(ctx context.Context, jobs []domain.EvaluationJob) ([]domain.JobHandle, error) {
	req := batchSubmitRequest{Submissions: make([]submissionRequest, 0, len(jobs))}
	for _, job := range jobs {
		req.Submissions = append(req.Submissions, submissionRequest{
			SourceCode:     job.SourceCode,
			LanguageID:     int(job.RuntimeID),
			Stdin:          job.Stdin,
			ExpectedOutput: job.ExpectedOutput,
		})
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch: %w", err)
	}

	query := url.Values{}
	query.Set("base64_encoded", "false")

	var tokens []tokenResponse
	if err := c.do(ctx, http.MethodPost, "/submissions/batch", query, body, &tokens); err != nil {
		return nil, err
	}

	handles := make([]domain.JobHandle, 0, len(tokens))
	for _, t := range tokens {
		handles = append(handles, domain.JobHandle(t.Token))
	}
	return handles, nil
}

// FetchBatch queries the status of every handle in a single request
func (c *Client) FetchBatch(ctx context.Context, handles []domain.JobHandle) ([]domain.JobResult, error) {
	tokens := make([]string, 0, len(handles))
	for _, h := range handles {
		tokens = append(tokens, string(h))
	}

	query := url.Values{}
	query.Set("tokens", strings.Join(tokens, ","))
	query.Set("base64_encoded", "false")
	query.Set("fields", "*")

	var resp batchStatusResponse
	if err := c.do(ctx, http.MethodGet, "/submissions/batch", query, nil, &resp); err != nil {
		return nil, err
	}

	results := make([]domain.JobResult, 0, len(resp.Submissions))
	for _, s := range resp.Submissions {
		results = append(results, domain.JobResult{
			Handle:        domain.JobHandle(s.Token),
			Status:        domain.JudgeStatus(s.statusID()),
			Stdout:        deref(s.Stdout),
			Stderr:        deref(s.Stderr),
			CompileOutput: deref(s.CompileOutput),
			Message:       deref(s.Message),
			Time:          float64(s.Time),
			Memory:        int64(s.Memory),
		})
	}
	return results, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out interface{}) error {
	if err := c.inflight.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrDispatchUnavailable, err)
	}
	defer c.inflight.Release(1)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrDispatchUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Judge request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s %s returned %d: %s",
			errs.ErrDispatchUnavailable, method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", errs.ErrDispatchInconsistent, err)
	}
	return nil
}
