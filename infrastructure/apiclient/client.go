// Package apiclient is the data access layer over the upstream REST
// API: five generic CRUD operations against {endpoint} and
// {endpoint}/{id} resources. No retries, no backoff, no status-code
// interpretation beyond success/failure.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"aulaadmin/domain/record"
	apperrors "aulaadmin/pkg/errors"

	"go.uber.org/zap"
)

// Client performs CRUD calls against the upstream backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the given backend base URL. The
// httpClient may be instrumented (X-Ray) by the caller; nil falls back
// to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the configured upstream base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches all records of an entity
func (c *Client) List(ctx context.Context, endpoint string) ([]record.Record, error) {
	body, err := c.call(ctx, http.MethodGet, c.resourceURL(endpoint, ""), nil)
	if err != nil {
		return nil, err
	}
	records, err := record.DecodeList(body)
	if err != nil {
		return nil, apperrors.NewInternalError(
			fmt.Sprintf("upstream returned a malformed list for %s", endpoint)).WithCause(err)
	}
	return records, nil
}

// Get fetches one record by id
func (c *Client) Get(ctx context.Context, endpoint, id string) (record.Record, error) {
	if id == "" {
		return record.New(), apperrors.NewInvalidArgumentError(
			fmt.Sprintf("missing id for get on %s", endpoint))
	}
	body, err := c.call(ctx, http.MethodGet, c.resourceURL(endpoint, id), nil)
	if err != nil {
		return record.New(), err
	}
	return decodeRecord(endpoint, body)
}

// Create posts a new record
func (c *Client) Create(ctx context.Context, endpoint string, payload record.Record) (record.Record, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return record.New(), apperrors.NewInternalError("payload could not be encoded").WithCause(err)
	}
	c.logger.Info("creating record",
		zap.String("endpoint", endpoint),
		zap.Int("fields", payload.Len()),
	)
	body, err := c.call(ctx, http.MethodPost, c.resourceURL(endpoint, ""), data)
	if err != nil {
		return record.New(), err
	}
	return decodeRecord(endpoint, body)
}

// Update puts a record by id
func (c *Client) Update(ctx context.Context, endpoint, id string, payload record.Record) (record.Record, error) {
	if id == "" {
		return record.New(), apperrors.NewInvalidArgumentError(
			fmt.Sprintf("missing id for update on %s", endpoint))
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return record.New(), apperrors.NewInternalError("payload could not be encoded").WithCause(err)
	}
	c.logger.Info("updating record",
		zap.String("endpoint", endpoint),
		zap.String("id", id),
	)
	body, err := c.call(ctx, http.MethodPut, c.resourceURL(endpoint, id), data)
	if err != nil {
		return record.New(), err
	}
	return decodeRecord(endpoint, body)
}

// Delete removes a record by id. A blank id fails fast without a
// network call.
func (c *Client) Delete(ctx context.Context, endpoint, id string) error {
	if id == "" {
		return apperrors.NewInvalidArgumentError(
			fmt.Sprintf("missing id for delete on %s", endpoint))
	}
	c.logger.Info("deleting record",
		zap.String("endpoint", endpoint),
		zap.String("id", id),
	)
	_, err := c.call(ctx, http.MethodDelete, c.resourceURL(endpoint, id), nil)
	return err
}

// Do performs a raw call and relays status, headers and body verbatim.
// Used by the proxy, which must not interpret upstream responses.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (int, http.Header, []byte, error) {
	target := c.baseURL + "/" + path
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, nil, apperrors.NewInternalError("request could not be built").WithCause(err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, apperrors.NewNetworkError(
			fmt.Sprintf("upstream call %s %s failed", method, target), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, apperrors.NewNetworkError("upstream response could not be read", err)
	}
	return resp.StatusCode, resp.Header, respBody, nil
}

// call performs a request and enforces the success/failure contract
func (c *Client) call(ctx context.Context, method, target string, body []byte) ([]byte, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, apperrors.NewInternalError("request could not be built").WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError(
			fmt.Sprintf("upstream call %s %s failed", method, target), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError("upstream response could not be read", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return nil, apperrors.NewRequestFailedError(
			fmt.Sprintf("%s %s", method, target), resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// resourceURL builds {base}/{endpoint}[/{id}]
func (c *Client) resourceURL(endpoint, id string) string {
	u := c.baseURL + "/" + url.PathEscape(endpoint)
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

func decodeRecord(endpoint string, body []byte) (record.Record, error) {
	var rec record.Record
	if len(bytes.TrimSpace(body)) == 0 {
		return record.New(), nil
	}
	if err := json.Unmarshal(body, &rec); err != nil {
		return record.New(), apperrors.NewInternalError(
			fmt.Sprintf("upstream returned a malformed record for %s", endpoint)).WithCause(err)
	}
	return rec, nil
}
