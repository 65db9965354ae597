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

package wsman

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed wraps network-level failures reaching the endpoint.
	ErrRequestFailed = errors.New("wsman request failed")

	// ErrInvalidFilterDialect is returned for filter dialects other than
	// cql and wql.
	ErrInvalidFilterDialect = errors.New("invalid filter dialect")
)

// FaultError is a SOAP fault returned by the controller.
type FaultError struct {
	Code    string
	Subcode string
	Message string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("wsman fault %s (%s): %s", e.Code, e.Subcode, e.Message)
}

// HTTPError is a non-2xx response that did not carry a SOAP fault.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("wsman endpoint returned %s", e.Status)
}
