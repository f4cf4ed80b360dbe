// the client package is used by the CLI and the ui-api handlers to call the petly API.
// Every call goes through Request, which adds the auth and cache headers, encodes the body and normalizes the response:
// a decoded value on success, an *APIError for non-2xx responses, a *ConnectionError when no response was received
// and a *DecodeError when a successful response can't be used (see client/errors.go)
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/schemas"
	"github.com/petly-community/petly/internal/version"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultBaseURL = "http://localhost:4000/api"

const tracerName = "github.com/petly-community/petly/internal/ui/client"

// Client handles communication with the petly API
type Client struct {
	baseURL    string
	httpClient *http.Client
	messages   *i18n.Messages
	logger     *slog.Logger
	tracer     trace.Tracer

	timeout    time.Duration
	hasTimeout bool
}

type Option func(*Client)

// WithHTTPClient replaces the default http client (no timeout). The client is not modified, a nil client keeps the default
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets an overall timeout on each request. Zero means no timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
		c.hasTimeout = true
	}
}

// WithMessages sets the locale used for user-facing error messages
func WithMessages(messages *i18n.Messages) Option {
	return func(c *Client) {
		c.messages = messages
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		messages:   i18n.New(i18n.DefaultLocale),
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.hasTimeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL returns the API base url, without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CacheMode controls the Cache-Control directive sent with a request
type CacheMode int

const (
	// CacheNoStore sends "Cache-Control: no-store" and is the default
	CacheNoStore CacheMode = iota
	CacheNoCache
	// CacheDefault sends no Cache-Control header
	CacheDefault
)

// RequestOptions describes a single API call.
type RequestOptions struct {
	// Method defaults to GET
	Method string

	// Body is JSON encoded when non-nil
	Body any

	// Token is sent as a bearer token when non-empty
	Token string

	// Headers are applied before Content-Type and Authorization, which always take precedence
	Headers http.Header

	Cache CacheMode

	// Schema, when set, is used to validate successful JSON responses before decoding
	Schema *jsonschema.Schema
}

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// max size of response bodies read by the client
const maxResponseBytes = 10 << 20

// Request performs a call to path (relative to the base url) and decodes a successful JSON response into T.
//
// An empty 2xx body returns the zero value of T.
func Request[T any](ctx context.Context, c *Client, path string, opts RequestOptions) (T, error) {
	var result T

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}
	if !allowedMethods[method] {
		return result, c.internalError(fmt.Errorf("%w: %s", ErrUnsupportedMethod, opts.Method), "building request")
	}

	ctx, span := c.tracer.Start(ctx, "petly.api "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	start := time.Now()
	status, err := c.do(ctx, method, path, opts, &result)

	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	c.logger.DebugContext(ctx, "petly api request",
		slog.String("component", "client"),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
	)

	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// do sends the request and decodes the response into out. It returns the response status (0 when no response was received)
func (c *Client) do(ctx context.Context, method, path string, opts RequestOptions, out any) (int, error) {
	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return 0, c.internalError(err, "encoding request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, c.internalError(err, "creating request")
	}

	for name, values := range opts.Headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", uuid.NewString())

	if opts.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", opts.Token))
	} else {
		req.Header.Del("Authorization")
	}

	switch opts.Cache {
	case CacheNoStore:
		req.Header.Set("Cache-Control", "no-store")
	case CacheNoCache:
		req.Header.Set("Cache-Control", "no-cache")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &ConnectionError{
			Method:  method,
			Path:    path,
			Err:     err,
			message: c.messages.Get(i18n.MsgConnectionFailed),
		}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes+1))
	if err != nil {
		return res.StatusCode, &ConnectionError{
			Method:  method,
			Path:    path,
			Err:     fmt.Errorf("reading response body: %w", err),
			message: c.messages.Get(i18n.MsgConnectionFailed),
		}
	}

	if len(raw) > maxResponseBytes {
		return res.StatusCode, c.decodeError(res.StatusCode, res.Header.Get("Content-Type"), ErrResponseTooLarge, i18n.MsgResponseTooLarge)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return res.StatusCode, c.apiError(res.StatusCode, raw)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return res.StatusCode, nil
	}

	contentType := res.Header.Get("Content-Type")
	if !isJSON(contentType) {
		return res.StatusCode, c.decodeError(res.StatusCode, contentType, ErrUnexpectedContentType, i18n.MsgUnexpectedContentType)
	}

	if opts.Schema != nil {
		if err := schemas.Validate(opts.Schema, raw); err != nil {
			return res.StatusCode, c.decodeError(res.StatusCode, contentType, err, i18n.MsgInvalidResponse)
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return res.StatusCode, c.decodeError(res.StatusCode, contentType, err, i18n.MsgInvalidResponse)
	}

	return res.StatusCode, nil
}

// apiError builds the error for a non-2xx response. The body is parsed best effort
func (c *Client) apiError(status int, raw []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		Message: c.messages.Get(i18n.MsgServerError),
	}

	if !json.Valid(raw) {
		return apiErr
	}
	apiErr.Details = json.RawMessage(raw)

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg, ok := body["message"].(string); ok {
			apiErr.Message = msg
		}
	}
	return apiErr
}

func (c *Client) decodeError(status int, contentType string, err error, userMsg string) *DecodeError {
	return &DecodeError{
		Status:      status,
		ContentType: contentType,
		Err:         err,
		message:     c.messages.Get(userMsg),
	}
}

func (c *Client) internalError(err error, while string) *InternalError {
	return &InternalError{
		Err:     err,
		While:   while,
		message: c.messages.Get(i18n.MsgInternalError),
	}
}

// isJSON reports whether contentType is application/json or a +json media type
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func Get[T any](ctx context.Context, c *Client, path, token string, schema *jsonschema.Schema) (T, error) {
	return Request[T](ctx, c, path, RequestOptions{Method: http.MethodGet, Token: token, Schema: schema})
}

func Post[T any](ctx context.Context, c *Client, path string, body any, token string, schema *jsonschema.Schema) (T, error) {
	return Request[T](ctx, c, path, RequestOptions{Method: http.MethodPost, Body: body, Token: token, Schema: schema})
}

func Put[T any](ctx context.Context, c *Client, path string, body any, token string, schema *jsonschema.Schema) (T, error) {
	return Request[T](ctx, c, path, RequestOptions{Method: http.MethodPut, Body: body, Token: token, Schema: schema})
}

func Patch[T any](ctx context.Context, c *Client, path string, body any, token string, schema *jsonschema.Schema) (T, error) {
	return Request[T](ctx, c, path, RequestOptions{Method: http.MethodPatch, Body: body, Token: token, Schema: schema})
}

func Delete[T any](ctx context.Context, c *Client, path, token string, schema *jsonschema.Schema) (T, error) {
	return Request[T](ctx, c, path, RequestOptions{Method: http.MethodDelete, Token: token, Schema: schema})
}
