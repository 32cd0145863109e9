package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client is the boundary to the deployment backend. Both calls are single
// best-effort round trips: no retries, no caching.
type Client interface {
	// SubmitBuild never returns an error; failures are reported in the result.
	SubmitBuild(ctx context.Context, req BuildRequest) SubmitResult
	// ListApps returns an empty slice when the backend cannot be reached or
	// answers with something unparseable.
	ListApps(ctx context.Context) []DeployedApp
}

// Config configures an HTTPClient.
type Config struct {
	BaseURL    string       // e.g. http://localhost:5500, no trailing slash needed
	HTTPClient *http.Client // nil uses a client with no timeout
	Tracer     trace.Tracer // nil disables tracing
	Logger     logrus.FieldLogger
}

// HTTPClient implements Client over the backend's JSON HTTP API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
	log     logrus.FieldLogger
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the backend at cfg.BaseURL.
func NewHTTPClient(cfg Config) *HTTPClient {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("lambdagw/deploy")
	}
	var log logrus.FieldLogger = cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		tracer:  tracer,
		log:     log.WithField("component", "deploy"),
	}
}

// BaseURL returns the backend address the client targets.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// SubmitBuild posts req to /build/lambda.
func (c *HTTPClient) SubmitBuild(ctx context.Context, req BuildRequest) SubmitResult {
	ctx, span := c.tracer.Start(ctx, "deploy.SubmitBuild", trace.WithAttributes(
		attribute.String("lambdagw.app.name", req.AppName),
		attribute.String("lambdagw.framework", string(req.Framework)),
	))
	defer span.End()

	log := c.log.WithFields(logrus.Fields{"app_name": req.AppName, "framework": req.Framework})

	if req.EnvVars == nil {
		req.EnvVars = map[string]string{}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		log.WithError(err).Error("submit build: marshal request")
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal")
		return SubmitResult{Message: MsgSubmitFailed}
	}

	status, body, err := c.do(ctx, http.MethodPost, "/build/lambda", payload)
	if err != nil {
		log.WithError(err).Warn("submit build: request failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return SubmitResult{Message: MsgSubmitFailed}
	}
	span.SetAttributes(attribute.Int("http.status_code", status))

	res := normalizeSubmitResponse(body)
	span.SetAttributes(attribute.Bool("lambdagw.outcome.success", res.OK))
	if !res.OK {
		span.SetStatus(codes.Error, res.Message)
		log.WithFields(logrus.Fields{"status": status, "error": res.Message}).Warn("submit build: rejected")
		return res
	}
	log.WithField("status", status).Info("submit build: accepted")
	return res
}

// ListApps fetches /apps, downgrading any failure to an empty list.
func (c *HTTPClient) ListApps(ctx context.Context) []DeployedApp {
	apps, err := c.FetchApps(ctx)
	if err != nil {
		c.log.WithError(err).Warn("list apps: failed, showing empty registry")
		return []DeployedApp{}
	}
	return apps
}

// FetchApps fetches /apps and reports failures as errors.
func (c *HTTPClient) FetchApps(ctx context.Context) ([]DeployedApp, error) {
	ctx, span := c.tracer.Start(ctx, "deploy.ListApps")
	defer span.End()

	status, body, err := c.do(ctx, http.MethodGet, "/apps", nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, fmt.Errorf("list apps: %w", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", status))

	apps, err := parseApps(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")
		return nil, fmt.Errorf("list apps: decode (status %d): %w", status, err)
	}
	span.SetAttributes(attribute.Int("lambdagw.apps.count", len(apps)))
	c.log.WithFields(logrus.Fields{"status": status, "count": len(apps)}).Debug("list apps")
	return apps, nil
}

// do performs one request and returns the status code and body. The status
// code is informational; callers decide from the body.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}
