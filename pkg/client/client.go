// Package client provides a Go client for the catalog HTTP API along
// with view controllers for list browsing and entry editing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Entry mirrors the catalog entry wire format.
type Entry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Kind       string    `json:"type"`
	Director   string    `json:"director,omitempty"`
	Budget     *float64  `json:"budget,omitempty"`
	Location   string    `json:"location,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	YearOrTime string    `json:"yearOrTime,omitempty"`
	Details    string    `json:"details,omitempty"`
	ImagePath  string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListResponse is one page of entries plus pagination metadata.
type ListResponse struct {
	Data    []Entry `json:"data"`
	Page    int     `json:"page"`
	Limit   int     `json:"limit"`
	Total   int     `json:"total"`
	HasMore bool    `json:"hasMore"`
}

// EntryFields holds the form-bound entry values submitted on create and
// update. Budget is kept as entered; non-numeric values are ignored by
// the server.
type EntryFields struct {
	Title      string
	Kind       string
	Director   string
	Budget     string
	Location   string
	Duration   string
	YearOrTime string
	Details    string
}

// Upload is a pending image file selection.
type Upload struct {
	Filename string
	Data     []byte
}

// APIError is a non-2xx response from the catalog API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Client calls the catalog HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a catalog API client for the given base URL.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger.With("component", "client"),
	}
}

// List fetches one page of entries.
func (c *Client) List(ctx context.Context, page, limit int) (*ListResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	endpoint := c.baseURL + "/api/movies"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var result ListResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create submits a new entry as a multipart form, with an optional image.
func (c *Client) Create(ctx context.Context, fields EntryFields, upload *Upload) (*Entry, error) {
	return c.submit(ctx, http.MethodPost, c.baseURL+"/api/movies", fields, upload, http.StatusCreated)
}

// Update modifies an existing entry as a multipart form, with an
// optional replacement image.
func (c *Client) Update(ctx context.Context, id string, fields EntryFields, upload *Upload) (*Entry, error) {
	return c.submit(ctx, http.MethodPut, c.baseURL+"/api/movies/"+id, fields, upload, http.StatusOK)
}

// Delete removes an entry by identifier.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/movies/"+id, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, nil)
}

func (c *Client) submit(ctx context.Context, method, endpoint string, fields EntryFields, upload *Upload, want int) (*Entry, error) {
	body, contentType, err := encodeForm(fields, upload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	var entry Entry
	if err := c.doExpect(req, &entry, want); err != nil {
		return nil, err
	}
	return &entry, nil
}

// encodeForm builds the multipart body. All bound fields are written,
// so an empty field explicitly clears its server-side counterpart on
// update; the image part is written only when a file is pending.
func encodeForm(fields EntryFields, upload *Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	formFields := map[string]string{
		"title":      fields.Title,
		"type":       fields.Kind,
		"director":   fields.Director,
		"budget":     fields.Budget,
		"location":   fields.Location,
		"duration":   fields.Duration,
		"yearOrTime": fields.YearOrTime,
		"details":    fields.Details,
	}
	for name, value := range formFields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if upload != nil {
		part, err := w.CreateFormFile("image", upload.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(upload.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

func (c *Client) do(req *http.Request, out any) error {
	return c.doExpect(req, out, http.StatusOK)
}

func (c *Client) doExpect(req *http.Request, out any, want int) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
