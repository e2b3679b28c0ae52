// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client talks to the JoycDecor REST API on behalf of the admin console.

A [Client] satisfies the repository, asset and verifier collaborators of the
lifecycle controller, so the console drives the same HTTP surface as the
public site. Successful bodies are unwrapped from the {"data": ...} envelope;
error bodies are rebuilt into [*apperr.AppError] with the response status.

Reads are retried on transport errors and 5xx answers. Writes are sent once.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/respond"
)

const (
	defaultTimeout    = 60 * time.Second
	maxResponseBytes  = 4 << 20
	readRetryAttempts = 3
	readRetryDelay    = 300 * time.Millisecond
)

// Client is a thin REST client bound to one API base URL and session token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// New returns a Client for baseURL, e.g. "http://localhost:8080/api/v1".
// A nil httpClient gets a default with a 60s timeout.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// WithToken returns a copy of the client that sends token as a bearer credential.
func (client *Client) WithToken(token string) *Client {
	copied := *client
	copied.token = token
	return &copied
}

// Token returns the bearer token, if any.
func (client *Client) Token() string {
	return client.token
}

// # Transport

// call describes one API request.
type call struct {
	method      string
	path        string
	body        []byte
	contentType string

	// whole decodes the entire body into out instead of its "data" member.
	whole bool
}

func jsonCall(method, path string, payload any) (call, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return call{}, fmt.Errorf("client: encode %s %s: %w", method, path, err)
	}
	return call{method: method, path: path, body: encoded, contentType: "application/json"}, nil
}

// do sends the call and decodes the "data" member of the answer into out.
// out may be nil when the body is not needed.
func (client *Client) do(context context.Context, request call, out any) error {
	if request.method != http.MethodGet {
		return client.once(context, request, out)
	}

	return retry.Do(
		func() error { return client.once(context, request, out) },
		retry.Context(context),
		retry.Attempts(readRetryAttempts),
		retry.Delay(readRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(attempt uint, err error) {
			client.logger.Warn("api_request_retry",
				slog.String("path", request.path),
				slog.Uint64("attempt", uint64(attempt+1)),
				slog.Any("error", err),
			)
		}),
	)
}

func (client *Client) once(context context.Context, request call, out any) error {
	var body io.Reader
	if request.body != nil {
		body = bytes.NewReader(request.body)
	}

	httpRequest, err := http.NewRequestWithContext(context, request.method, client.baseURL+request.path, body)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", request.method, request.path, err)
	}
	httpRequest.Header.Set("Accept", "application/json")
	if request.contentType != "" {
		httpRequest.Header.Set("Content-Type", request.contentType)
	}
	if client.token != "" {
		httpRequest.Header.Set("Authorization", "Bearer "+client.token)
	}

	response, err := client.http.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", request.method, request.path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("client: read %s %s: %w", request.method, request.path, err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return decodeError(response.StatusCode, raw)
	}
	if out == nil || response.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}

	var target any = &respond.SuccessEnvelope{Data: out}
	if request.whole {
		target = out
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", request.method, request.path, err)
	}
	return nil
}

// decodeError rebuilds the API error envelope. Bodies that are not an
// envelope (proxies, crashes) become a generic error for the status.
func decodeError(status int, raw []byte) error {
	var envelope respond.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Code == "" {
		return &apperr.AppError{
			Code:       fmt.Sprintf("HTTP_%d", status),
			Message:    fmt.Sprintf("API answered %d %s", status, http.StatusText(status)),
			HTTPStatus: status,
		}
	}
	return &apperr.AppError{
		Code:       envelope.Code,
		Message:    envelope.Error,
		HTTPStatus: status,
		Details:    envelope.Details,
	}
}

// retryable reports whether a failed read is worth another attempt.
func retryable(err error) bool {
	appError := apperr.As(err)
	if appError == nil {
		return true
	}
	return appError.HTTPStatus >= http.StatusInternalServerError || appError.HTTPStatus == http.StatusTooManyRequests
}
