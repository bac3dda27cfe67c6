package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/timemachine/internal/client/models"
	"github.com/dmitrijs2005/timemachine/internal/logging"
)

const (
	EndpointLogin  = "/api/login"
	EndpointList   = "/api/list"
	EndpointSearch = "/api/search"
	EndpointAdd    = "/api/add"
	EndpointUpdate = "/api/update"
	EndpointRemove = "/api/remove"
)

const requestIDHeader = "X-Request-Id"

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 8 << 20

// Transport performs one exchange with the API.
type Transport interface {
	Send(ctx context.Context, endpoint, token string, params map[string]any) (*Response, error)
}

// Response is the decoded body of a successful (code 0) exchange. Fields
// that an endpoint does not return are left zero.
type Response struct {
	Code   int
	Token  string
	Slices []models.Slice
}

type wireResponse struct {
	Code   *int              `json:"code"`
	Token  string            `json:"token"`
	Slices []json.RawMessage `json:"slices"`
}

// looseSlice is used when a slice does not decode as a whole.
type looseSlice struct {
	ID      json.RawMessage `json:"id"`
	Content string          `json:"content"`
	Time    json.RawMessage `json:"time"`
}

// decodeSlices decodes each element on its own. An element with a bad id or
// time keeps its content with that field left zero; an element that is not
// an object with string content is dropped.
func decodeSlices(raws []json.RawMessage) (slices []models.Slice, repaired, dropped int) {
	if raws == nil {
		return nil, 0, 0
	}
	slices = make([]models.Slice, 0, len(raws))
	for _, raw := range raws {
		var s models.Slice
		if err := json.Unmarshal(raw, &s); err == nil {
			slices = append(slices, s)
			continue
		}

		var loose looseSlice
		if err := json.Unmarshal(raw, &loose); err != nil {
			dropped++
			continue
		}
		s = models.Slice{Content: loose.Content}
		if len(loose.ID) > 0 {
			_ = s.ID.UnmarshalJSON(loose.ID)
		}
		if len(loose.Time) > 0 {
			_ = s.Time.UnmarshalJSON(loose.Time)
		}
		slices = append(slices, s)
		repaired++
	}
	return slices, repaired, dropped
}

// HTTPTransportConfig configures an HTTPTransport.
type HTTPTransportConfig struct {
	// ServerURL is the API base, e.g. "http://127.0.0.1:8080".
	ServerURL string
	// Timeout bounds each exchange. Ignored when HTTPClient is set.
	Timeout time.Duration
	// HTTPClient is used for all requests when non-nil.
	HTTPClient *http.Client
	Logger     logging.Logger
}

// HTTPTransport sends JSON POST requests to the API server.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

func NewHTTPTransport(cfg HTTPTransportConfig) (*HTTPTransport, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("client: server URL is required")
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://") && !strings.HasPrefix(cfg.ServerURL, "https://") {
		return nil, fmt.Errorf("client: server URL %q must start with http:// or https://", cfg.ServerURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &HTTPTransport{
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		httpClient: httpClient,
		log:        log.With("component", "transport"),
	}, nil
}

// Send posts params (plus token when non-empty) to endpoint. params is not
// modified. The HTTP status is not inspected: whatever body comes back is
// judged by its code.
func (t *HTTPTransport) Send(ctx context.Context, endpoint, token string, params map[string]any) (*Response, error) {
	requestID := uuid.NewString()
	fail := func(err error) error {
		t.log.Warn(ctx, "request failed", "endpoint", endpoint, "request_id", requestID, "err", err)
		return &TransportError{Endpoint: endpoint, RequestID: requestID, Err: err}
	}

	body := make(map[string]any, len(params)+1)
	for k, v := range params {
		body[k] = v
	}
	if token != "" {
		body["token"] = token
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fail(fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fail(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	started := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fail(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fail(fmt.Errorf("read response: %w", err))
	}

	var wire wireResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fail(fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err))
	}

	t.log.Debug(ctx, "request done",
		"endpoint", endpoint,
		"request_id", requestID,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)

	if wire.Code == nil {
		return nil, &BusinessError{Endpoint: endpoint, Code: CodeMissing}
	}
	if *wire.Code != 0 {
		return nil, &BusinessError{Endpoint: endpoint, Code: *wire.Code}
	}

	slices, repaired, dropped := decodeSlices(wire.Slices)
	if repaired > 0 || dropped > 0 {
		t.log.Warn(ctx, "malformed slices in response",
			"endpoint", endpoint,
			"request_id", requestID,
			"repaired", repaired,
			"dropped", dropped,
		)
	}

	return &Response{Code: 0, Token: wire.Token, Slices: slices}, nil
}
