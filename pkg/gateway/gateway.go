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

// Package gateway classifies WS-Management exchanges into success, permanent
// fault, and transient failure, and retries the transient ones with bounded
// exponential backoff. Everything above the transport invokes through it.
package gateway

//go:generate mockgen -destination=mock_gateway.go -package=gateway github.com/carverauto/godrac/pkg/gateway Invoker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/metrics"
	"github.com/carverauto/godrac/pkg/wsman"
)

// Return codes reported by DCIM service methods.
const (
	RetSuccess = "0"
	RetError   = "2"
	RetCreated = "4096"
)

const (
	defaultInitialInterval = 1 * time.Second
	defaultMaxInterval     = 30 * time.Second
	defaultMaxTries        = 4
)

const (
	outcomeSuccess   = "success"
	outcomeFault     = "fault"
	outcomeTransient = "transient"
)

// Invoker issues classified exchanges against a remote WS-Management
// endpoint: transient failures are retried, permanent faults surface
// immediately.
type Invoker interface {
	Invoke(ctx context.Context, ref cim.ObjectRef, method string, params map[string][]string, expect ...string) (*Result, error)
	Enumerate(ctx context.Context, resourceURI string, opts ...wsman.EnumOption) (*wsman.Response, error)
}

// Result is the outcome of a successful invocation.
type Result struct {
	// Response is the parsed response document.
	Response *wsman.Response
	// ReturnValue is the method return code.
	ReturnValue string
	// JobID identifies the job created by the method, set only when the
	// return code is 4096.
	JobID string
}

// Gateway invokes remote methods through a wsman.Transport. It holds no
// mutable state and is safe for concurrent use.
type Gateway struct {
	transport       wsman.Transport
	logger          logger.Logger
	initialInterval time.Duration
	maxInterval     time.Duration
	maxTries        uint
}

var _ Invoker = (*Gateway)(nil)

// Option adjusts gateway retry behavior.
type Option func(*Gateway)

// WithMaxTries bounds the total number of attempts per exchange.
func WithMaxTries(n uint) Option {
	return func(g *Gateway) {
		g.maxTries = n
	}
}

// WithRetryIntervals overrides the initial and maximum backoff intervals.
func WithRetryIntervals(initial, maxInterval time.Duration) Option {
	return func(g *Gateway) {
		g.initialInterval = initial
		g.maxInterval = maxInterval
	}
}

// New returns a Gateway invoking through the given transport.
func New(transport wsman.Transport, log logger.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		transport:       transport,
		logger:          log,
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
		maxTries:        defaultMaxTries,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Invoke calls method on the instance addressed by ref. When expect codes
// are given, a return code outside that set is a permanent fault. Return
// code 2 is always a fault carrying the remote message. Return code 4096
// reports the created job id on the Result.
func (g *Gateway) Invoke(ctx context.Context, ref cim.ObjectRef, method string, params map[string][]string, expect ...string) (*Result, error) {
	start := time.Now()
	selectors := ref.Selectors()

	var attempts int

	operation := func() (*Result, error) {
		attempts++

		resp, err := g.transport.Invoke(ctx, ref.ResourceURI, method, selectors, params)
		if err != nil {
			return nil, g.classify(err, method)
		}

		return checkReturn(resp, method, expect)
	}

	result, err := backoff.Retry(ctx, operation, g.retryOpts()...)
	if err != nil {
		return nil, g.finish(err, method, attempts, time.Since(start))
	}

	metrics.RecordOperation(method, outcomeSuccess, time.Since(start))
	g.logger.Debug().
		Str("method", method).
		Str("return_value", result.ReturnValue).
		Msg("Remote method invocation succeeded")

	return result, nil
}

// Enumerate retrieves all instances of the class at resourceURI, retrying
// transient failures with the same policy as Invoke.
func (g *Gateway) Enumerate(ctx context.Context, resourceURI string, opts ...wsman.EnumOption) (*wsman.Response, error) {
	start := time.Now()
	operation := shortName(resourceURI)

	var attempts int

	attempt := func() (*wsman.Response, error) {
		attempts++

		resp, err := g.transport.Enumerate(ctx, resourceURI, opts...)
		if err != nil {
			return nil, g.classify(err, operation)
		}

		return resp, nil
	}

	resp, err := backoff.Retry(ctx, attempt, g.retryOpts()...)
	if err != nil {
		return nil, g.finish(err, operation, attempts, time.Since(start))
	}

	metrics.RecordOperation(operation, outcomeSuccess, time.Since(start))

	return resp, nil
}

// classify turns a transport error into either a retryable error or a
// backoff.Permanent-wrapped FaultError.
func (g *Gateway) classify(err error, operation string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return backoff.Permanent(err)
	}

	if isTransient(err) {
		metrics.RecordRetry(operation)
		g.logger.Debug().Err(err).Str("operation", operation).Msg("Transient remote failure, will retry")

		return err
	}

	return backoff.Permanent(permanentFault(err))
}

// finish maps retry-loop exhaustion to the surfaced error and records the
// outcome.
func (g *Gateway) finish(err error, operation string, attempts int, elapsed time.Duration) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var fault *FaultError
	if errors.As(err, &fault) {
		metrics.RecordOperation(operation, outcomeFault, elapsed)

		return err
	}

	metrics.RecordOperation(operation, outcomeTransient, elapsed)
	g.logger.Warn().
		Err(err).
		Str("operation", operation).
		Int("attempts", attempts).
		Msg("Remote operation failed after retries")

	return &TransientError{Reason: err.Error(), Attempts: attempts, cause: err}
}

func (g *Gateway) retryOpts() []backoff.RetryOption {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = g.initialInterval
	bo.MaxInterval = g.maxInterval
	bo.Multiplier = 2.0
	bo.RandomizationFactor = 0.2

	return []backoff.RetryOption{backoff.WithBackOff(bo), backoff.WithMaxTries(g.maxTries)}
}

// checkReturn classifies the parsed response by return code.
func checkReturn(resp *wsman.Response, method string, expect []string) (*Result, error) {
	ret := resp.ReturnValue()

	if ret == RetError {
		return nil, backoff.Permanent(&FaultError{Code: ret, Message: faultMessage(resp)})
	}

	if len(expect) > 0 && !slices.Contains(expect, ret) {
		return nil, backoff.Permanent(&FaultError{
			Code:    ret,
			Message: fmt.Sprintf("unexpected return value from %s: %s", method, faultMessage(resp)),
		})
	}

	result := &Result{Response: resp, ReturnValue: ret}
	if ret == RetCreated {
		result.JobID = resp.CreatedJobID()
	}

	return result, nil
}

// permanentFault wraps an unretryable transport error so callers see one
// fault type while errors.As still reaches the transport detail.
func permanentFault(err error) error {
	var wsFault *wsman.FaultError
	if errors.As(err, &wsFault) {
		code := wsFault.Subcode
		if code == "" {
			code = wsFault.Code
		}

		return &FaultError{Code: code, Message: wsFault.Message, cause: err}
	}

	var httpErr *wsman.HTTPError
	if errors.As(err, &httpErr) {
		return &FaultError{Code: strconv.Itoa(httpErr.StatusCode), Message: httpErr.Status, cause: err}
	}

	return &FaultError{Message: err.Error(), cause: err}
}

// faultMessage extracts the human-readable failure detail from a response.
func faultMessage(resp *wsman.Response) string {
	if msg := resp.Text("Message"); msg != "" {
		return msg
	}

	return resp.Text("MessageID")
}

func shortName(resourceURI string) string {
	if i := strings.LastIndex(resourceURI, "/"); i >= 0 {
		return resourceURI[i+1:]
	}

	return resourceURI
}
