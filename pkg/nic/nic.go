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

// Package nic configures network interface attributes. Every operation is
// scoped to one interface by its FQDD (for example "NIC.Integrated.1-1-1");
// the interface inventory itself lives in the inventory package. Like the
// card registry, NIC attributes are grouped and are proposed under
// group-qualified names.
package nic

import (
	"context"
	"fmt"

	"github.com/carverauto/godrac/pkg/attributes"
	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/jobs"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/pending"
	"github.com/carverauto/godrac/pkg/wsman"
)

// Attribute registry classes backing the NIC settings surface.
var settingsClasses = []struct {
	resourceURI string
	class       string
	parse       func(*wsman.Response, string) []attributes.Attribute
}{
	{cim.DCIMNICEnumeration, "DCIM_NICEnumeration", attributes.ParseEnumeration},
	{cim.DCIMNICString, "DCIM_NICString", attributes.ParseString},
	{cim.DCIMNICInteger, "DCIM_NICInteger", attributes.ParseInteger},
}

// Service drives NIC configuration through the WS-Management gateway.
type Service struct {
	invoker gateway.Invoker
	tracker *pending.Tracker
	jobs    *jobs.Manager
	service cim.ObjectRef
	logger  logger.Logger
}

// New returns a Service invoking through invoker, staging change state in
// tracker and committing through jobManager.
func New(invoker gateway.Invoker, tracker *pending.Tracker, jobManager *jobs.Manager, log logger.Logger) *Service {
	service, _ := cim.Resolve(cim.DCIMNICService, "DCIM_NICService", "DCIM:NICService")

	return &Service{
		invoker: invoker,
		tracker: tracker,
		jobs:    jobManager,
		service: service,
		logger:  log,
	}
}

// ListSettings returns the attributes of the interface addressed by nicID,
// keyed by instance ID.
func (s *Service) ListSettings(ctx context.Context, nicID string) (map[string]attributes.Attribute, error) {
	attrs, err := s.listSettings(ctx, nicID)
	if err != nil {
		return nil, err
	}

	return attributes.ByInstanceID(attrs), nil
}

func (s *Service) listSettings(ctx context.Context, nicID string) ([]attributes.Attribute, error) {
	if nicID == "" {
		return nil, ErrMissingNIC
	}

	var attrs []attributes.Attribute

	for _, sc := range settingsClasses {
		resp, err := s.invoker.Enumerate(ctx, sc.resourceURI)
		if err != nil {
			return nil, fmt.Errorf("list %s settings: %w", sc.class, err)
		}

		attrs = append(attrs, sc.parse(resp, sc.class)...)
	}

	return attributes.FilterFQDD(attrs, nicID), nil
}

// SetSettings stages the proposed attribute values on the interface
// addressed by nicID. Settings are keyed by group-qualified name; semantics
// otherwise match the BIOS setter.
func (s *Service) SetSettings(ctx context.Context, nicID string, settings map[string]string) (attributes.ApplyResult, error) {
	attrs, err := s.listSettings(ctx, nicID)
	if err != nil {
		return attributes.ApplyResult{}, err
	}

	grouped, err := attributes.ByGroupedName(attrs)
	if err != nil {
		return attributes.ApplyResult{}, err
	}

	plan, err := attributes.PlanChanges(grouped, settings)
	if err != nil {
		return attributes.ApplyResult{}, err
	}

	if plan.Empty() {
		return attributes.ApplyResult{}, nil
	}

	props := map[string][]string{
		"Target":         {nicID},
		"AttributeName":  plan.Names,
		"AttributeValue": plan.Values,
	}

	result, err := s.invoker.Invoke(ctx, s.service, "SetAttributes", props)
	if err != nil {
		return attributes.ApplyResult{}, fmt.Errorf("set NIC attributes on %s: %w", nicID, err)
	}

	for i, name := range plan.Names {
		s.tracker.Stage(nicID, name, plan.Values[i])
	}

	applied := attributes.ParseApplyResult(result.Response)
	s.logger.Info().
		Str("nic", nicID).
		Int("attributes", len(plan.Names)).
		Bool("commit_required", applied.CommitRequired).
		Msg("NIC attributes staged")

	return applied, nil
}

// Commit turns the staged changes for the interface into a config job and
// returns its ID.
func (s *Service) Commit(ctx context.Context, nicID string, reboot bool) (string, error) {
	if nicID == "" {
		return "", ErrMissingNIC
	}

	return s.jobs.CreateConfigJob(ctx, jobs.ConfigJobSpec{
		Service:  s.service,
		Target:   nicID,
		Reboot:   reboot,
		Schedule: jobs.StartTimeNow,
	})
}

// Abandon discards the staged changes for the interface, local state first.
// Changes already committed into a job cannot be abandoned.
func (s *Service) Abandon(ctx context.Context, nicID string) error {
	if nicID == "" {
		return ErrMissingNIC
	}

	if err := s.tracker.Abandon(nicID); err != nil {
		return err
	}

	return s.jobs.DeletePendingConfig(ctx, jobs.PendingConfigSpec{
		Service: s.service,
		Target:  nicID,
	})
}
