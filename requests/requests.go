// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"codeberg.org/pixivfe/pixivapi/audit"
	"codeberg.org/pixivfe/pixivapi/idgen"
)

const (
	// clientSessionCacheSize bounds the TLS session ticket cache; all
	// traffic goes to a handful of pixiv hosts.
	clientSessionCacheSize = 20

	maxIdleConnsPerHost = 20

	// transferBufferSize is used for both read and write buffers.
	transferBufferSize = 32 * 1024
)

// ErrNotInitialized reports a request attempted on a shut-down transport.
var ErrNotInitialized = errors.New("transport is not initialized")

// HTTPTransport implements Transport on net/http, with connection reuse
// tuned for repeated requests against the same hosts.
//
// It is not safe to call Initialize or Shutdown concurrently with
// in-flight requests.
type HTTPTransport struct {
	defaultHeaders map[string]string
	client         *http.Client
	timeout        time.Duration
	closed         bool
}

// NewHTTPTransport builds a live transport that sends defaultHeaders on
// every request. Several endpoints reject requests without a Referer, so
// the headers should at least carry one.
func NewHTTPTransport(defaultHeaders map[string]string) *HTTPTransport {
	return &HTTPTransport{
		defaultHeaders: defaultHeaders,
		client:         newHTTPClient(),
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				ClientSessionCache: tls.NewLRUClientSessionCache(clientSessionCacheSize),
				MinVersion:         tls.VersionTLS12,
			},
			Proxy: http.ProxyFromEnvironment,

			// No limit on total idle connections, only per-host.
			MaxIdleConns:        0,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,

			WriteBufferSize: transferBufferSize,
			ReadBufferSize:  transferBufferSize,
		},
	}
}

// SetTimeout bounds every exchange made through the transport, including
// reading the body. Zero restores the no-limit default. The timeout
// survives Shutdown and Initialize cycles.
func (t *HTTPTransport) SetTimeout(timeout time.Duration) {
	t.timeout = timeout
	t.client.Timeout = timeout
}

// Initialize rebuilds the underlying client after a Shutdown. On a live
// transport it is a no-op.
func (t *HTTPTransport) Initialize() {
	if !t.closed {
		return
	}

	t.client = newHTTPClient()
	t.client.Timeout = t.timeout
	t.closed = false
}

// Shutdown drops idle connections and marks the transport closed.
func (t *HTTPTransport) Shutdown() {
	if t.closed {
		return
	}

	t.client.CloseIdleConnections()
	t.closed = true
}

// Do sends an HTTP request and returns the status, headers and fully read
// body.
//
// It does not check for non-OK status codes, leaving that task to the
// caller.
func (t *HTTPTransport) Do(ctx context.Context, opts RequestOptions) (_ *Response, err error) {
	if t.closed {
		return nil, ErrNotInitialized
	}

	req, err := t.newRequest(ctx, opts)
	if err != nil {
		return nil, err
	}

	span := audit.Span{
		Destination: audit.DestinationOf(opts.URL),
		RequestID:   idgen.Make(),
		Method:      req.Method,
		URL:         req.URL.String(),
	}

	defer func() { span.Error = err }()

	_ = span.Begin(ctx)
	defer span.End() // in case of error

	resp, err := t.client.Do(req)
	if err != nil {
		if isContextCanceled(err) {
			return nil, err
		}

		return nil, &PixivError{
			Message: fmt.Sprintf("failed to make HTTP request: %v", err),
			Kind:    ErrNetwork,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	span.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isContextCanceled(err) {
			return nil, err
		}

		return nil, &PixivError{
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Kind:    ErrNetwork,
			Err:     err,
		}
	}

	span.Body = body

	span.End()
	span.Log()

	return &Response{
		Header:     resp.Header,
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// Stream sends an HTTP request and hands the body back unconsumed. The
// caller owns the body and must close it.
func (t *HTTPTransport) Stream(ctx context.Context, opts RequestOptions) (*StreamResponse, error) {
	if t.closed {
		return nil, ErrNotInitialized
	}

	req, err := t.newRequest(ctx, opts)
	if err != nil {
		return nil, err
	}

	span := audit.Span{
		Destination: audit.DestinationOf(opts.URL),
		RequestID:   idgen.Make(),
		Method:      req.Method,
		URL:         req.URL.String(),
	}

	_ = span.Begin(ctx)

	resp, err := t.client.Do(req)
	if err != nil {
		span.Error = err
		span.End()

		if isContextCanceled(err) {
			return nil, err
		}

		return nil, &PixivError{
			Message: fmt.Sprintf("failed to make HTTP request: %v", err),
			Kind:    ErrNetwork,
			Err:     err,
		}
	}

	span.StatusCode = resp.StatusCode

	span.End()
	span.Log()

	return &StreamResponse{
		Header:     resp.Header,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}, nil
}

// newRequest constructs an *http.Request from RequestOptions: query
// parameters on the URL, body parameters form-encoded, or multipart when
// they carry files.
func (t *HTTPTransport) newRequest(ctx context.Context, opts RequestOptions) (*http.Request, error) {
	targetURL := opts.URL

	if !opts.Params.Empty() {
		parametrized, err := opts.Params.ParametrizedURL(opts.URL)
		if err != nil {
			return nil, err
		}

		targetURL = parametrized
	}

	var (
		reqBody           io.Reader
		contentTypeHeader string
	)

	switch {
	case opts.Data.ContainsFiles():
		body, formContentType, err := createMultipartFormData(opts.Data)
		if err != nil {
			return nil, err
		}

		reqBody = body
		contentTypeHeader = formContentType

	case !opts.Data.Empty():
		encoded, err := opts.Data.URLEncodedParameters()
		if err != nil {
			return nil, err
		}

		reqBody = strings.NewReader(encoded)
		contentTypeHeader = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, targetURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for name, value := range t.defaultHeaders {
		req.Header.Set(name, value)
	}

	// Per-request headers take precedence over the transport defaults.
	for name, value := range opts.Headers {
		req.Header.Set(name, value)
	}

	if contentTypeHeader != "" {
		req.Header.Set("Content-Type", contentTypeHeader)
	}

	return req, nil
}

// createMultipartFormData constructs a multipart body carrying the
// envelope's JSON parameters as form fields and its files as file parts,
// one part per file element in parameter order.
func createMultipartFormData(data *Data) (*bytes.Buffer, string, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	params, err := data.JSONParameters()
	if err != nil {
		_ = writer.Close()

		return nil, "", err
	}

	for k, v := range params {
		if err := writer.WriteField(k, v); err != nil {
			_ = writer.Close()

			return nil, "", fmt.Errorf("failed to write multipart form field %q: %w", k, err)
		}
	}

	parts, err := data.MultipartFiles()
	if err != nil {
		_ = writer.Close()

		return nil, "", err
	}

	for _, part := range parts {
		header := make(textproto.MIMEHeader, 2)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, part.FieldName, part.Filename))
		header.Set("Content-Type", part.MIMEType)

		partWriter, err := writer.CreatePart(header)
		if err != nil {
			_ = writer.Close()

			return nil, "", fmt.Errorf("failed to create multipart file part %q: %w", part.FieldName, err)
		}

		if _, err := partWriter.Write(part.Content); err != nil {
			_ = writer.Close()

			return nil, "", fmt.Errorf("failed to write multipart file part %q: %w", part.FieldName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

// Request performs a buffered exchange over transport and classifies the
// response status, returning the raw body on success.
//
// Transport failures that are not already classified are wrapped into a
// plain PixivError; context cancellation passes through untouched.
func Request(ctx context.Context, transport Transport, opts RequestOptions) ([]byte, error) {
	resp, err := transport.Do(ctx, opts)
	if err != nil {
		return nil, wrapUnknown(err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return resp.Body, nil
	}

	return nil, parseError(resp.StatusCode, resp.Body)
}

// ParsedRequest performs Request and validates the payload as JSON.
func ParsedRequest(ctx context.Context, transport Transport, opts RequestOptions) ([]byte, error) {
	body, err := Request(ctx, transport, opts)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		log.Ctx(ctx).Error().Str("payload", string(body)).Msg("Cannot parse invalid JSON data")

		return nil, &PixivError{Message: "Invalid server response", Kind: ErrInvalidResponse}
	}

	return body, nil
}

// Retrieve performs a streamed exchange, defaulting to GET. On a success
// status the caller owns the returned body; on an error status the body
// is drained and classified like a buffered call.
func Retrieve(ctx context.Context, transport Transport, opts RequestOptions) (io.ReadCloser, error) {
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}

	resp, err := transport.Stream(ctx, opts)
	if err != nil {
		return nil, wrapUnknown(err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return resp.Body, nil
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isContextCanceled(err) {
			return nil, err
		}

		return nil, wrapUnknown(err)
	}

	return nil, parseError(resp.StatusCode, body)
}

// wrapUnknown keeps already-classified errors and context cancellation
// untouched and wraps everything else.
func wrapUnknown(err error) error {
	var pixivErr *PixivError
	if errors.As(err, &pixivErr) || isContextCanceled(err) {
		return err
	}

	return &PixivError{
		Message: fmt.Sprintf("Unknown error in HTTP request: %v", err),
		Err:     err,
	}
}

// isContextCanceled returns true if the error is due to context cancellation or deadline exceeded.
// In these cases, we should simply stop processing and return, as the caller has moved on.
func isContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
