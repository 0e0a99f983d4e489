package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dfryer1193/gallery/api"
)

// Client is a thin HTTP client for the gallery API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// NewClientWithHTTPClient creates a client using a caller-supplied http.Client.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := NewClient(baseURL)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// ListImages fetches every image record, most recent first.
func (c *Client) ListImages(ctx context.Context) ([]api.ImageRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/images", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("list images", resp)
	}

	var records []api.ImageRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode image list: %w", err)
	}

	return records, nil
}

// Upload sends one image as a multipart form and returns the created record.
func (c *Client) Upload(ctx context.Context, fileName string, r io.Reader) (api.ImageRecord, error) {
	var zero api.ImageRecord

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("image", fileName)
	if err != nil {
		return zero, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return zero, err
	}
	if err := w.Close(); err != nil {
		return zero, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return zero, apiError("upload image", resp)
	}

	var record api.ImageRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return zero, fmt.Errorf("failed to decode created record: %w", err)
	}

	return record, nil
}

// Delete removes one image by record identifier.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/images/"+id, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError("delete image", resp)
	}

	return nil
}

// apiError builds an error from a failed API response, preferring the
// server's own error field when the body carries one.
func apiError(op string, resp *http.Response) error {
	var body api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		if body.Details != "" {
			return fmt.Errorf("%s failed with status %d: %s: %s", op, resp.StatusCode, body.Error, body.Details)
		}
		return fmt.Errorf("%s failed with status %d: %s", op, resp.StatusCode, body.Error)
	}

	return fmt.Errorf("%s failed with status %d", op, resp.StatusCode)
}
