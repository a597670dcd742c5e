// Package osdu drives CSV files through the external ingestion API: token
// acquisition, signed upload, metadata creation, parser triggering and a
// single workflow-status check.
package osdu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osdupipe/prodingest/pkg/prodingest/models"
)

// API paths relative to the connection base URL.
const (
	tokenValidatePath = "/api/token/v1/validate"
	uploadURLPath     = "/api/file/v2/files/uploadURL"
	metadataPath      = "/api/file/v2/files/metadata"
	workflowPath      = "/api/workflow/v1/workflow"
)

// Client is a synchronous HTTP client for the ingestion API. It holds no
// state beyond the connection settings; every call is one blocking request.
type Client struct {
	conn   models.OSDUConnection
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a client for one connection descriptor.
func NewClient(conn models.OSDUConnection, logger *slog.Logger) *Client {
	return &Client{
		conn:   conn,
		http:   &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// SignedURL is the response of the upload-URL endpoint.
type SignedURL struct {
	// URL is the pre-signed location content is uploaded to.
	URL string
	// FileSource identifies the uploaded content in later metadata calls.
	FileSource string
}

// RunInfo identifies one triggered workflow run.
type RunInfo struct {
	RunID string
}

// AcquireToken obtains a bearer token via the client-credentials grant.
func (c *Client) AcquireToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.conn.ClientID},
		"client_secret": {c.conn.ClientSecret},
		"scope":         {c.conn.Scope},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.conn.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(req, &body); err != nil {
		return "", fmt.Errorf("acquire token: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("acquire token: empty access_token in response")
	}
	return body.AccessToken, nil
}

// ValidateToken checks the token against the API and returns its expiry.
func (c *Client) ValidateToken(ctx context.Context, token string) (time.Time, error) {
	req, err := c.newAPIRequest(ctx, http.MethodGet, tokenValidatePath, token, "", nil)
	if err != nil {
		return time.Time{}, err
	}

	var body struct {
		ExpiresAt int64 `json:"expires_at"`
	}
	if err := c.do(req, &body); err != nil {
		return time.Time{}, fmt.Errorf("validate token: %w", err)
	}
	return time.Unix(body.ExpiresAt, 0), nil
}

// SignedUploadURL requests a pre-signed upload location from the file
// service.
func (c *Client) SignedUploadURL(ctx context.Context, token, correlationID string) (SignedURL, error) {
	req, err := c.newAPIRequest(ctx, http.MethodGet, uploadURLPath, token, correlationID, nil)
	if err != nil {
		return SignedURL{}, err
	}

	var body struct {
		Location struct {
			SignedURL  string `json:"SignedURL"`
			FileSource string `json:"FileSource"`
		} `json:"Location"`
	}
	if err := c.do(req, &body); err != nil {
		return SignedURL{}, fmt.Errorf("signed upload url: %w", err)
	}
	if body.Location.SignedURL == "" {
		return SignedURL{}, fmt.Errorf("signed upload url: empty SignedURL in response")
	}
	return SignedURL{URL: body.Location.SignedURL, FileSource: body.Location.FileSource}, nil
}

// UploadContent PUTs the CSV bytes to a pre-signed URL.
func (c *Client) UploadContent(ctx context.Context, signedURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/csv")
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("upload content: %w", err)
	}
	return nil
}

// FileMetadata is the metadata record created for one uploaded CSV.
type FileMetadata struct {
	Name       string
	FileSource string
	Legal      LegalInfo
}

// CreateMetadata registers file metadata and returns the assigned file id.
func (c *Client) CreateMetadata(ctx context.Context, token, correlationID string, meta FileMetadata) (string, error) {
	payload := map[string]any{
		"kind": fmt.Sprintf("%s:wks:dataset--File.Generic:1.0.0", c.conn.DataPartition),
		"acl": map[string]any{
			"viewers": meta.Legal.ViewerACL,
			"owners":  meta.Legal.OwnerACL,
		},
		"legal": map[string]any{
			"legaltags":                  meta.Legal.LegalTags,
			"otherRelevantDataCountries": meta.Legal.Countries,
			"status":                     "compliant",
		},
		"data": map[string]any{
			"Name": meta.Name,
			"DatasetProperties": map[string]any{
				"FileSourceInfo": map[string]any{
					"FileSource": meta.FileSource,
					"Name":       meta.Name,
				},
			},
		},
	}
	req, err := c.newAPIRequest(ctx, http.MethodPost, metadataPath, token, correlationID, payload)
	if err != nil {
		return "", err
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &body); err != nil {
		return "", fmt.Errorf("create metadata: %w", err)
	}
	if body.ID == "" {
		return "", fmt.Errorf("create metadata: empty id in response")
	}
	return body.ID, nil
}

// TriggerParse starts the parser workflow for one registered file and
// returns the run id.
func (c *Client) TriggerParse(ctx context.Context, token, correlationID, fileID string) (RunInfo, error) {
	payload := map[string]any{
		"executionContext": map[string]any{
			"id":            fileID,
			"dataPartition": c.conn.DataPartition,
		},
	}
	path := fmt.Sprintf("%s/%s/workflowRun", workflowPath, c.conn.WorkflowName)
	req, err := c.newAPIRequest(ctx, http.MethodPost, path, token, correlationID, payload)
	if err != nil {
		return RunInfo{}, err
	}

	var body struct {
		RunID string `json:"runId"`
	}
	if err := c.do(req, &body); err != nil {
		return RunInfo{}, fmt.Errorf("trigger parse: %w", err)
	}
	if body.RunID == "" {
		return RunInfo{}, fmt.Errorf("trigger parse: empty runId in response")
	}
	return RunInfo{RunID: body.RunID}, nil
}

// RunStatus fetches a point-in-time status snapshot of one workflow run.
// There is no polling; the status observed is not a completion guarantee.
func (c *Client) RunStatus(ctx context.Context, token, correlationID, runID string) (string, error) {
	path := fmt.Sprintf("%s/%s/workflowRun/%s", workflowPath, c.conn.WorkflowName, runID)
	req, err := c.newAPIRequest(ctx, http.MethodGet, path, token, correlationID, nil)
	if err != nil {
		return "", err
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.do(req, &body); err != nil {
		return "", fmt.Errorf("run status: %w", err)
	}
	return body.Status, nil
}

// newAPIRequest builds a request against the API base URL with the standard
// headers set.
func (c *Client) newAPIRequest(ctx context.Context, method, path, token, correlationID string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.conn.BaseURL, "/")+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("data-partition-id", c.conn.DataPartition)
	if correlationID != "" {
		req.Header.Set("correlation-id", correlationID)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes a request and decodes a JSON response into out when non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, truncate(string(data), 200))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
