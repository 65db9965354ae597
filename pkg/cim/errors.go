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

package cim

import (
	"errors"
	"fmt"
)

// ErrMissingField matches any AddressingError via errors.Is.
var ErrMissingField = errors.New("missing required identifying field")

// AddressingError reports an ObjectRef that cannot identify a remote
// instance. It is always a caller bug and is never retried.
type AddressingError struct {
	Field string
}

func (e *AddressingError) Error() string {
	return fmt.Sprintf("object reference %s: %v", e.Field, ErrMissingField)
}

func (*AddressingError) Unwrap() error { return ErrMissingField }
