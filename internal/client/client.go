package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/condohub/condoctl/internal/session"
	"github.com/condohub/condoctl/pkg/circuitbreaker"
	"github.com/condohub/condoctl/pkg/errors"
	"github.com/condohub/condoctl/pkg/logger"
	"github.com/condohub/condoctl/pkg/metrics"
)

const headerRequestID = "X-Request-ID"

// Options configures a Client.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Metrics           *metrics.Metrics
	Logger            *logger.Logger
	HTTPClient        *http.Client
}

// Client is the HTTP core shared by every resource client. It attaches the
// bearer credential when one is stored, throttles outgoing calls and
// normalizes every failure into a pkg/errors.AppError.
type Client struct {
	baseURL string
	http    *http.Client
	creds   session.CredentialStore
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func New(creds session.CredentialStore, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:3000/uni7"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewLogger(nil)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL: opts.BaseURL,
		http:    httpClient,
		creds:   creds,
		limiter: limiter,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "backend",
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		}),
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
}

// errorEnvelope is the backend's error body. Older endpoints answer in
// Portuguese, newer ones in English; both are consumed.
type errorEnvelope struct {
	Erro     string `json:"erro,omitempty"`
	Error    string `json:"error,omitempty"`
	Mensagem string `json:"mensagem,omitempty"`
	Message  string `json:"message,omitempty"`
	Detalhes string `json:"detalhes,omitempty"`
	Details  string `json:"details,omitempty"`
}

func (e errorEnvelope) message() string {
	for _, s := range []string{e.Erro, e.Error, e.Mensagem, e.Message} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (e errorEnvelope) detail() string {
	if e.Detalhes != "" {
		return e.Detalhes
	}
	return e.Details
}

// do issues one request and decodes the response into out when non-nil.
// resource and operation only label logs and metrics.
func (c *Client) do(ctx context.Context, resource, operation, method, path string, body, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.NewNetwork("cannot reach backend", err)
		}
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.NewServer("failed to encode request", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.NewServer("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, uuid.New().String())
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	var resp *http.Response
	err = c.breaker.Execute(func() error {
		var execErr error
		resp, execErr = c.http.Do(req)
		return execErr
	})
	c.observe(resource, operation, resp, err, time.Since(start))

	if err == circuitbreaker.ErrOpen {
		if c.metrics != nil {
			c.metrics.BreakerRejections.Inc()
		}
		return errors.NewNetwork("cannot reach backend", err)
	}
	if err != nil {
		c.logger.Debug("request failed", "resource", resource, "operation", operation, "error", err.Error())
		return errors.NewNetwork("cannot reach backend", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetwork("cannot reach backend", err)
	}

	if resp.StatusCode >= 400 {
		return c.mapStatus(resource, resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := decodeBody(raw, out); err != nil {
		return errors.NewServer("failed to decode response", err)
	}
	return nil
}

// mapStatus converts an HTTP failure into the client error taxonomy.
func (c *Client) mapStatus(resource string, status int, raw []byte) error {
	var env errorEnvelope
	_ = json.Unmarshal(raw, &env)

	switch {
	case status == http.StatusServiceUnavailable:
		return errors.NewServer("datastore unreachable", nil)
	case status >= 500:
		msg := env.detail()
		if msg == "" {
			msg = env.message()
		}
		if msg == "" {
			msg = "server error"
		}
		return errors.NewServer(msg, nil)
	case status == http.StatusNotFound:
		return errors.NewNotFound(resource, nil)
	case status == http.StatusUnauthorized:
		return errors.Unauthorized(fmt.Errorf("status %d", status))
	default:
		msg := env.message()
		if msg == "" {
			msg = "invalid request"
		}
		return errors.NewValidation(msg, nil)
	}
}

func (c *Client) observe(resource, operation string, resp *http.Response, err error, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	c.metrics.APIRequests.WithLabelValues(resource, operation, status).Inc()
	c.metrics.APILatency.WithLabelValues(resource, operation).Observe(elapsed.Seconds())
	if err != nil {
		c.metrics.APIFailures.WithLabelValues(resource, operation, "transport").Inc()
	} else if resp != nil && resp.StatusCode >= 400 {
		c.metrics.APIFailures.WithLabelValues(resource, operation, "http").Inc()
	}
}

// decodeBody unwraps the success envelopes the backend uses before
// unmarshalling into out. Two shapes occur: {"data": ...} and the
// mutation answer {"mensagem": ..., "aviso"|"denuncia"|...: {...}} that
// nests the record under its singular resource name.
func decodeBody(raw []byte, out interface{}) error {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err == nil {
		if data, ok := env["data"]; ok && len(data) > 0 {
			return json.Unmarshal(data, out)
		}
		if payload, ok := nestedRecord(env); ok {
			return json.Unmarshal(payload, out)
		}
	}
	return json.Unmarshal(raw, out)
}

// nestedRecord finds the one record nested next to the backend's status
// message. A body whose non-message keys are anything but a single JSON
// object or array is treated as the record itself.
func nestedRecord(env map[string]json.RawMessage) (json.RawMessage, bool) {
	var record json.RawMessage
	count := 0
	for key, val := range env {
		switch key {
		case "mensagem", "message", "erro", "error", "detalhes", "details":
			continue
		}
		val = bytes.TrimSpace(val)
		if len(val) == 0 || (val[0] != '{' && val[0] != '[') {
			return nil, false
		}
		record = val
		count++
	}
	return record, count == 1
}
