package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dfryer1193/gallery/gallery/domain"
)

// DefaultModelURL is the hosted object-detection endpoint used when no
// model URL is configured.
const DefaultModelURL = "https://router.huggingface.co/hf-inference/models/facebook/detr-resnet-50"

const defaultTimeout = 2 * time.Minute

var _ domain.Tagger = (*Client)(nil)

// Client calls a Hugging Face hosted inference endpoint for object detection.
type Client struct {
	httpClient *http.Client
	modelURL   string
	token      string
}

// NewClient creates a new inference client for the given model endpoint.
// The bearer token authenticates every request.
func NewClient(modelURL string, token string) *Client {
	if modelURL == "" {
		modelURL = DefaultModelURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		modelURL:   modelURL,
		token:      token,
	}
}

// NewClientWithHTTPClient creates a client using a caller-supplied http.Client.
func NewClientWithHTTPClient(modelURL string, token string, httpClient *http.Client) *Client {
	c := NewClient(modelURL, token)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// detectionResult is the wire shape of one detection returned by the API.
type detectionResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// errorBody is the wire shape of an inference API error response.
type errorBody struct {
	Error string `json:"error"`
}

// Detect sends the image bytes to the inference endpoint and returns the
// detections found. The request always asks the service to wait for a cold
// model rather than fail immediately. A 2xx response that is not a JSON
// array decodes to an empty detection set, never an error.
func (c *Client) Detect(ctx context.Context, image []byte, contentType string) ([]domain.Detection, error) {
	op := "object detection"

	endpoint, err := url.Parse(c.modelURL)
	if err != nil {
		return nil, fmt.Errorf("huggingface: %s has invalid model URL: %w", op, err)
	}
	q := endpoint.Query()
	q.Set("wait_for_model", "true")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("huggingface: %s failed to build request: %w", op, err)
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface: %s failed: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface: %s failed to read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(op, resp.StatusCode, body)
	}

	var results []detectionResult
	if err := json.Unmarshal(body, &results); err != nil {
		// The service occasionally answers with an object payload on
		// success. Treat anything that is not an array as zero detections.
		return []domain.Detection{}, nil
	}

	detections := make([]domain.Detection, 0, len(results))
	for _, r := range results {
		detections = append(detections, domain.Detection{
			Label: r.Label,
			Score: r.Score,
		})
	}

	return detections, nil
}
