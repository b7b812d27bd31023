package figma

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.figma.com/v1"

// Client represents a Figma API client with configured HTTP settings for reliable
// communication with the Figma API. It includes retry logic and transport settings
// tuned for large files.
type Client struct {
	accessToken string
	httpClient  *http.Client

	// BaseURL is the API endpoint prefix. It defaults to the public Figma API
	// and is overridable so tests can point the client at a local server.
	BaseURL string
}

// NewClient creates a new Figma API client with the provided personal access token.
// The client is configured with connection pooling, disabled HTTP/2 (for large file
// stability), and a 10-minute timeout for very large files.
func NewClient(accessToken string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	return &Client{
		accessToken: accessToken,
		BaseURL:     defaultAPIBase,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
	}
}

// GetFile retrieves the complete file data from the Figma API, including the
// document tree and metadata. Implements automatic retry logic (up to 3 attempts)
// with backoff for rate limits (429) and server errors (5xx).
func (c *Client) GetFile(fileID string) (*FileResponse, error) {
	body, err := c.getJSON(fmt.Sprintf("%s/files/%s", c.BaseURL, url.PathEscape(fileID)))
	if err != nil {
		return nil, err
	}

	var fileResp FileResponse
	if err := json.Unmarshal(body, &fileResp); err != nil {
		return nil, fmt.Errorf("failed to parse file response: %w", err)
	}

	return &fileResp, nil
}

// GetImages requests rendered-image URLs for a batch of node IDs at the given
// format ("svg", "png", ...) and scale factor. The returned map associates each
// node ID with a transient download URL; an absent or empty URL means Figma
// could not render that node.
func (c *Client) GetImages(fileID string, nodeIDs []string, format string, scale float64) (map[string]string, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(nodeIDs, ","))
	q.Set("format", format)
	q.Set("scale", strconv.FormatFloat(scale, 'g', -1, 64))

	body, err := c.getJSON(fmt.Sprintf("%s/images/%s?%s", c.BaseURL, url.PathEscape(fileID), q.Encode()))
	if err != nil {
		return nil, err
	}

	var imagesResp ImagesResponse
	if err := json.Unmarshal(body, &imagesResp); err != nil {
		return nil, fmt.Errorf("failed to parse images response: %w", err)
	}
	if imagesResp.Err != "" {
		return nil, fmt.Errorf("images API returned error: %s", imagesResp.Err)
	}

	return imagesResp.Images, nil
}

// DownloadImage fetches the content behind a transient render URL returned by GetImages.
func (c *Client) DownloadImage(imageURL string) ([]byte, error) {
	resp, err := c.httpClient.Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}

	return data, nil
}

// getJSON performs an authenticated GET with retry on 429/5xx and returns the raw body.
func (c *Client) getJSON(requestURL string) ([]byte, error) {
	var lastErr error
	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequest(http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("X-Figma-Token", c.accessToken)
		// Disable HTTP/2 stream reuse to avoid errors with large files
		req.Header.Set("Connection", "close")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d failed to execute request: %w", attempt, err)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return nil, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = apiError(resp.StatusCode, body)
			if attempt < maxRetries && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return nil, lastErr
		}

		if readErr != nil {
			lastErr = fmt.Errorf("attempt %d failed to read response body: %w", attempt, readErr)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return nil, lastErr
		}

		return body, nil
	}

	return nil, lastErr
}

// apiError turns a non-2xx Figma API response into an error carrying the status
// and body, with contextual hints for the two most common user mistakes.
func apiError(status int, body []byte) error {
	switch status {
	case http.StatusForbidden:
		return fmt.Errorf("API request failed with status 403: %s (check that the access token is valid and can read the file)", body)
	case http.StatusNotFound:
		return fmt.Errorf("API request failed with status 404: %s (check the fileId in the configuration)", body)
	default:
		return fmt.Errorf("API request failed with status %d: %s", status, body)
	}
}

// DeepLink builds a figma.com URL pointing at a node inside a file, used in
// diagnostics so the user can open conflicting components directly.
func DeepLink(fileID, nodeID string) string {
	return fmt.Sprintf("https://www.figma.com/file/%s?node-id=%s", fileID, url.QueryEscape(nodeID))
}
