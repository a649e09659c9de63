// Package client talks to the question-generation backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/pavelanni/qgen/internal/model"
)

// GeneratePath is the backend endpoint for question generation.
const GeneratePath = "/api/generate"

// StatusError is returned for a non-success HTTP response. Its message is the
// response body, or the numeric status code when the body is empty.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return strconv.Itoa(e.Code)
}

// Result is a successful backend answer. Exactly one of Text and Response is
// meaningful, depending on the requested output format.
type Result struct {
	Format   model.OutputFormat
	Text     string
	Response *model.GenerationResponse
}

// Client wraps the HTTP client used to reach the backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the backend at baseURL. A nil httpClient means
// http.DefaultClient. No timeout is applied beyond the caller's context.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Generate sends req and decodes the answer according to req.OutputFormat.
func (c *Client) Generate(ctx context.Context, req model.GenerationRequest) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	slog.Debug("sending generate request",
		"url", httpReq.URL.String(),
		"targets", req.Targets,
		"num_questions", req.NumQuestions,
		"output_format", req.OutputFormat,
	)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("backend returned error", "status", resp.StatusCode, "body_len", len(data))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	if req.OutputFormat == model.FormatText {
		return &Result{Format: model.FormatText, Text: string(data)}, nil
	}

	var gr model.GenerationResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &Result{Format: model.FormatJSON, Response: &gr}, nil
}
