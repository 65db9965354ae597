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

package gateway

import "fmt"

// FaultError is a permanent rejection: an error return code, a return code
// outside the expected set, or an unretryable transport failure. It is never
// retried.
type FaultError struct {
	Code    string
	Message string
	cause   error
}

func (e *FaultError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("remote operation failed: %s", e.Message)
	}

	return fmt.Sprintf("remote operation failed (code %s): %s", e.Code, e.Message)
}

func (e *FaultError) Unwrap() error { return e.cause }

// TransientError reports retry exhaustion: every attempt failed with a
// retryable error. The last attempt's failure is retained as the cause.
type TransientError struct {
	Reason   string
	Attempts int
	cause    error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient failure persisted after %d attempts: %s", e.Attempts, e.Reason)
}

func (e *TransientError) Unwrap() error { return e.cause }
