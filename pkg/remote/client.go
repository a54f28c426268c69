// Package remote is the outbound HTTP client the services use to call each other.
// A call yields exactly one of three outcomes and is never retried here.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTimeout = 10 * time.Second

	// ServiceTokenHeader carries the shared service token on inter-service calls.
	ServiceTokenHeader = "X-Service-Token"

	maxBodyBytes = 1 << 20
)

type Kind int

const (
	Success Kind = iota
	HTTPError
	Unreachable
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case HTTPError:
		return "http_error"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Outcome is the result of one remote call. StatusCode and Body are set for
// Success and HTTPError, Err for Unreachable.
type Outcome struct {
	Kind       Kind
	StatusCode int
	Body       []byte
	Err        error
}

func (o Outcome) OK() bool {
	return o.Kind == Success
}

// Decode unmarshals a successful response body into v.
func (o Outcome) Decode(v any) error {
	if o.Kind != Success {
		return fmt.Errorf("decode %s outcome", o.Kind)
	}
	return json.Unmarshal(o.Body, v)
}

// AsError describes a failed outcome as an error. It returns nil on success.
func (o Outcome) AsError() error {
	switch o.Kind {
	case Success:
		return nil
	case HTTPError:
		return fmt.Errorf("remote returned %d: %s", o.StatusCode, strings.TrimSpace(string(o.Body)))
	default:
		return fmt.Errorf("remote unreachable: %w", o.Err)
	}
}

type Options struct {
	// Name identifies the target service in logs.
	Name    string
	BaseURL string
	Token   string
	Timeout time.Duration
}

type Client struct {
	name    string
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(opts Options, log *zap.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		name:    opts.Name,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("remote", opts.Name)),
	}
}

// PostJSON sends body as JSON to path on the target service. A nil body sends an
// empty request body. Any 2xx status is Success.
func (c *Client) PostJSON(ctx context.Context, path string, body any) Outcome {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.log.Error("Failed to encode request body", zap.String("url", url), zap.Error(err))
			return Outcome{Kind: Unreachable, Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		c.log.Error("Failed to build request", zap.String("url", url), zap.Error(err))
		return Outcome{Kind: Unreachable, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(ServiceTokenHeader, c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Remote service unreachable",
			zap.String("url", url),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return Outcome{Kind: Unreachable, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.log.Error("Failed to read remote response",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return Outcome{Kind: Unreachable, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("Remote service returned error status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
			zap.Duration("duration", time.Since(start)),
		)
		return Outcome{Kind: HTTPError, StatusCode: resp.StatusCode, Body: respBody}
	}

	c.log.Debug("Remote call succeeded",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return Outcome{Kind: Success, StatusCode: resp.StatusCode, Body: respBody}
}
