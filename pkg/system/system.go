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

// Package system reads the system attribute registry: chassis-level
// settings like LCD configuration and thermal options. The registry is
// read-oriented; writable entries among them are applied through vendor
// tooling rather than this surface.
package system

import (
	"context"
	"fmt"

	"github.com/carverauto/godrac/pkg/attributes"
	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/wsman"
)

// Attribute registry classes backing the system settings view.
var settingsClasses = []struct {
	resourceURI string
	class       string
	parse       func(*wsman.Response, string) []attributes.Attribute
}{
	{cim.DCIMSystemEnumeration, "DCIM_SystemEnumeration", attributes.ParseEnumeration},
	{cim.DCIMSystemString, "DCIM_SystemString", attributes.ParseString},
	{cim.DCIMSystemInteger, "DCIM_SystemInteger", attributes.ParseInteger},
}

// Service reads system attributes through the WS-Management gateway.
type Service struct {
	invoker gateway.Invoker
	logger  logger.Logger
}

// New returns a Service invoking through invoker.
func New(invoker gateway.Invoker, log logger.Logger) *Service {
	return &Service{invoker: invoker, logger: log}
}

// ListSettings returns every system attribute keyed by instance ID.
func (s *Service) ListSettings(ctx context.Context) (map[string]attributes.Attribute, error) {
	var attrs []attributes.Attribute

	for _, sc := range settingsClasses {
		resp, err := s.invoker.Enumerate(ctx, sc.resourceURI)
		if err != nil {
			return nil, fmt.Errorf("list %s settings: %w", sc.class, err)
		}

		attrs = append(attrs, sc.parse(resp, sc.class)...)
	}

	return attributes.ByInstanceID(attrs), nil
}
