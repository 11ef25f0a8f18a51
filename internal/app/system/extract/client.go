// internal/app/system/extract/client.go
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client calls the extraction service over HTTP. The service accepts a
// multipart upload with the PDF under "file" and responds with the
// Schedule JSON. One request per file, no retries: a failed extraction
// aborts the batch and recovery is the caller's decision.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Log     *zap.Logger
}

// NewClient constructs a Client with the given service URL and timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     logger,
	}
}

// ParseSchedule sends one PDF to the extraction service and decodes the
// structured schedule. All failures come back as *Error carrying the
// filename so the caller can report which file broke the batch.
func (c *Client) ParseSchedule(ctx context.Context, filename string, pdf []byte) (Schedule, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Schedule{}, &Error{File: filename, Err: err}
	}
	if _, err := part.Write(pdf); err != nil {
		return Schedule{}, &Error{File: filename, Err: err}
	}
	if err := mw.Close(); err != nil {
		return Schedule{}, &Error{File: filename, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/parse", &body)
	if err != nil {
		return Schedule{}, &Error{File: filename, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Schedule{}, &Error{File: filename, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.Log.Error("extraction service rejected file",
			zap.String("file", filename),
			zap.Int("status", resp.StatusCode))
		return Schedule{}, &Error{
			File: filename,
			Err:  fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, snippet),
		}
	}

	var s Schedule
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return Schedule{}, &Error{File: filename, Err: fmt.Errorf("decoding extraction response: %w", err)}
	}
	return s, nil
}
