// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"context"
	"io"
	"net/http"
)

// RequestOptions are the parameters for a single HTTP request.
type RequestOptions struct {
	Method string
	URL    string

	// Params are encoded into the query string.
	Params *Data

	// Data is encoded into the request body, form-encoded without files
	// and multipart with them.
	Data *Data

	// Headers are sent in addition to the transport's default headers and
	// win on conflict.
	Headers map[string]string
}

// Transport is the HTTP backend contract of the client.
//
// Implementations classify nothing; they move bytes and report transport
// failures. Status handling lives in Request, ParsedRequest and Retrieve.
type Transport interface {
	// Do performs a fully buffered exchange.
	Do(ctx context.Context, opts RequestOptions) (*Response, error)

	// Stream performs an exchange whose body is consumed incrementally.
	// The caller owns the returned body and must close it.
	Stream(ctx context.Context, opts RequestOptions) (*StreamResponse, error)

	// Initialize prepares connection resources. Calling it on a live
	// transport is a no-op.
	Initialize()

	// Shutdown releases connection resources. A shut-down transport fails
	// all requests until the next Initialize.
	Shutdown()
}

// Response is a fully buffered HTTP response.
type Response struct {
	Header     http.Header
	StatusCode int
	Body       []byte
}

// StreamResponse is an HTTP response whose body is still on the wire.
type StreamResponse struct {
	Header     http.Header
	StatusCode int
	Body       io.ReadCloser
}
