// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package client is a typed HTTP client for the printvote API.
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
	"strings"
	"time"

	"github.com/danielhkuo/printvote/models"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Code       string // error kind, e.g. "already_voted"
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, HTTP %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// Rejected reports whether the server refused the operation (4xx) as
// opposed to failing (5xx)
func (e *APIError) Rejected() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsCode reports whether err is an APIError with the given kind code
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

type Client struct {
	baseURL  string
	http     *http.Client
	adminKey string
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAdminKey sets the key sent on admin routes
func WithAdminKey(key string) Option {
	return func(c *Client) { c.adminKey = key }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health returns nil when the server answers GET /health
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) Enroll(ctx context.Context, voterID, name string, age int) (models.EnrollVoterResponse, error) {
	var resp models.EnrollVoterResponse
	err := c.do(ctx, http.MethodPost, "/voters", models.EnrollVoterRequest{
		VoterID: voterID,
		Name:    name,
		Age:     age,
	}, nil, &resp)
	return resp, err
}

func (c *Client) ListVoters(ctx context.Context) ([]models.VoterSummary, error) {
	var voters []models.VoterSummary
	err := c.do(ctx, http.MethodGet, "/voters", nil, nil, &voters)
	return voters, err
}

func (c *Client) Scan(ctx context.Context, voterID string) (models.ScanResponse, error) {
	var resp models.ScanResponse
	err := c.do(ctx, http.MethodPost, voterPath(voterID, "scan"), nil, nil, &resp)
	return resp, err
}

func (c *Client) Verify(ctx context.Context, voterID, credential string) (models.VerifyVoterResponse, error) {
	var resp models.VerifyVoterResponse
	err := c.do(ctx, http.MethodPost, voterPath(voterID, "verify"), models.VerifyVoterRequest{
		Credential: credential,
	}, nil, &resp)
	return resp, err
}

func (c *Client) CastVote(ctx context.Context, voterID, authorization string, candidateID int) (models.VoteReceipt, error) {
	var receipt models.VoteReceipt
	headers := map[string]string{
		"X-Voter-ID":      voterID,
		"X-Authorization": authorization,
	}
	err := c.do(ctx, http.MethodPost, "/votes", models.CastVoteRequest{CandidateID: candidateID}, headers, &receipt)
	return receipt, err
}

func (c *Client) Candidates(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := c.do(ctx, http.MethodGet, "/candidates", nil, nil, &candidates)
	return candidates, err
}

func (c *Client) Results(ctx context.Context) (models.Tally, error) {
	var tally models.Tally
	err := c.do(ctx, http.MethodGet, "/results", nil, nil, &tally)
	return tally, err
}

func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := c.do(ctx, http.MethodGet, "/stats", nil, nil, &stats)
	return stats, err
}

func (c *Client) Reset(ctx context.Context) (models.ResetResponse, error) {
	var resp models.ResetResponse
	headers := map[string]string{"X-Admin-Key": c.adminKey}
	err := c.do(ctx, http.MethodPost, "/admin/reset", nil, headers, &resp)
	return resp, err
}

func voterPath(voterID, action string) string {
	return "/voters/" + url.PathEscape(voterID) + "/" + action
}

// do sends one request. A non-2xx status becomes an *APIError; out may be
// nil when the body is not needed.
func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body models.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil && (body.Message != "" || body.Code != "") {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
