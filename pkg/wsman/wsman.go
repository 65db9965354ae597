/*
 * Copyright 2026 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package wsman speaks just enough WS-Management to drive an iDRAC-style
// controller: Enumerate (with transparent Pull continuation) for reading
// object state, and Invoke for calling remote CIM methods.
package wsman

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/carverauto/godrac/pkg/logger"
)

//go:generate mockgen -destination=mock_wsman.go -package=wsman github.com/carverauto/godrac/pkg/wsman Transport

const (
	defaultTimeout     = 60 * time.Second
	defaultMaxElements = 100
)

// Transport is the narrow surface consumed by everything above the wire:
// read object state and invoke remote methods.
type Transport interface {
	Enumerate(ctx context.Context, resourceURI string, opts ...EnumOption) (*Response, error)
	Invoke(ctx context.Context, resourceURI, method string, selectors map[string]string, properties map[string][]string) (*Response, error)
}

// Options configures a Client. Endpoint is the full URL of the WS-Man
// listener, e.g. https://192.0.2.10:443/wsman.
type Options struct {
	Endpoint           string
	Username           string
	Password           string
	InsecureSkipVerify bool
	CAFile             string
	Timeout            time.Duration
}

// Client is the production Transport over HTTP(S).
type Client struct {
	endpoint string
	username string
	password string
	http     *http.Client
	logger   logger.Logger
}

// New builds a Client. iDRACs commonly ship self-signed certificates, so
// callers either provide the controller CA via CAFile or opt in to
// InsecureSkipVerify.
func New(opts Options, log logger.Logger) (*Client, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec // explicit opt-in for self-signed controllers
	}

	if opts.CAFile != "" {
		caCert, err := os.ReadFile(opts.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("%w: %s", ErrRequestFailed, "failed to parse CA certificate")
		}

		tlsConfig.RootCAs = pool
	}

	return &Client{
		endpoint: opts.Endpoint,
		username: opts.Username,
		password: opts.Password,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: tlsConfig,
			},
		},
		logger: log,
	}, nil
}

type enumSettings struct {
	filterDialect string
	filterQuery   string
	maxElements   int
}

// EnumOption adjusts a single Enumerate call.
type EnumOption func(*enumSettings) error

// WithFilter restricts the enumeration with a query in the given dialect
// ("cql" or "wql").
func WithFilter(dialect, query string) EnumOption {
	return func(s *enumSettings) error {
		uri, ok := filterDialects[dialect]
		if !ok {
			return fmt.Errorf("%w: %s (supported: cql, wql)", ErrInvalidFilterDialect, dialect)
		}

		s.filterDialect = uri
		s.filterQuery = query

		return nil
	}
}

// WithMaxElements caps the number of items returned per page.
func WithMaxElements(n int) EnumOption {
	return func(s *enumSettings) error {
		s.maxElements = n
		return nil
	}
}

// Enumerate reads all instances of a resource class. When the controller
// pages the result, the remaining pages are pulled automatically and their
// items merged, so callers always see the complete set.
func (c *Client) Enumerate(ctx context.Context, resourceURI string, opts ...EnumOption) (*Response, error) {
	settings := enumSettings{maxElements: defaultMaxElements}

	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return nil, err
		}
	}

	resp, err := c.do(ctx, actionEnumerate, buildEnumerate(c.endpoint, resourceURI, settings))
	if err != nil {
		return nil, err
	}

	base := resp
	items := base.First("Items")
	enumContext := resp.Text("EnumerationContext")

	for enumContext != "" {
		pulled, err := c.pull(ctx, resourceURI, enumContext, settings.maxElements)
		if err != nil {
			return nil, err
		}

		enumContext = pulled.Text("EnumerationContext")

		pulledItems := pulled.First("Items")
		if pulledItems == nil {
			continue
		}

		if items == nil {
			base, items = pulled, pulledItems
			continue
		}

		items.Children = append(items.Children, pulledItems.Children...)
	}

	return base, nil
}

func (c *Client) pull(ctx context.Context, resourceURI, enumContext string, maxElements int) (*Response, error) {
	return c.do(ctx, actionPull, buildPull(c.endpoint, resourceURI, enumContext, maxElements))
}

// Invoke calls method on the instance picked out by selectors, passing
// properties as the method input. Multi-valued properties repeat.
func (c *Client) Invoke(ctx context.Context, resourceURI, method string, selectors map[string]string, properties map[string][]string) (*Response, error) {
	return c.do(ctx, method, buildInvoke(c.endpoint, resourceURI, method, selectors, properties))
}

func (c *Client) do(ctx context.Context, action, payload string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml;charset=UTF-8")
	req.SetBasicAuth(c.username, c.password)

	c.logger.Debug().
		Str("endpoint", c.endpoint).
		Str("action", action).
		Int("request_bytes", len(payload)).
		Msg("Sending WS-Man request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrRequestFailed, err)
	}

	c.logger.Debug().
		Str("endpoint", c.endpoint).
		Str("action", action).
		Int("status", resp.StatusCode).
		Int("response_bytes", len(body)).
		Msg("Received WS-Man response")

	// Controllers report SOAP faults on error status codes; prefer the
	// fault detail over the bare status line when both are present.
	if resp.StatusCode >= http.StatusBadRequest {
		if parsed, perr := ParseResponse(body); perr == nil {
			if fault := parsed.Fault(); fault != nil {
				return nil, fault
			}
		}

		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	parsed, err := ParseResponse(body)
	if err != nil {
		return nil, err
	}

	if fault := parsed.Fault(); fault != nil {
		return nil, fault
	}

	return parsed, nil
}
