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

// Package idrac configures the management controller card itself: its
// grouped attribute registry and card resets. Card attributes reuse names
// across groups (every user slot has a UserName), so settings are proposed
// under group-qualified names of the form "Users.2#UserName".
package idrac

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

// DefaultFQDD addresses the embedded management card, the only one most
// systems carry. Methods taking an fqdd treat "" as this default.
const DefaultFQDD = "iDRAC.Embedded.1"

// resetAccepted is the message id the card reports when it accepts a
// reset request.
const resetAccepted = "RAC064"

// Attribute registry classes backing the card settings surface.
var settingsClasses = []struct {
	resourceURI string
	class       string
	parse       func(*wsman.Response, string) []attributes.Attribute
}{
	{cim.DCIMiDRACCardEnumeration, "DCIM_iDRACCardEnumeration", attributes.ParseEnumeration},
	{cim.DCIMiDRACCardString, "DCIM_iDRACCardString", attributes.ParseString},
	{cim.DCIMiDRACCardInteger, "DCIM_iDRACCardInteger", attributes.ParseInteger},
}

// Service drives management card configuration through the WS-Management
// gateway.
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
	service, _ := cim.Resolve(cim.DCIMiDRACCardService, "DCIM_iDRACCardService", "DCIM:iDRACCardService")

	return &Service{
		invoker: invoker,
		tracker: tracker,
		jobs:    jobManager,
		service: service,
		logger:  log,
	}
}

// ListSettings returns every card attribute keyed by instance ID.
func (s *Service) ListSettings(ctx context.Context) (map[string]attributes.Attribute, error) {
	attrs, err := s.listSettings(ctx, "")
	if err != nil {
		return nil, err
	}

	return attributes.ByInstanceID(attrs), nil
}

func (s *Service) listSettings(ctx context.Context, fqdd string) ([]attributes.Attribute, error) {
	var attrs []attributes.Attribute

	for _, sc := range settingsClasses {
		resp, err := s.invoker.Enumerate(ctx, sc.resourceURI)
		if err != nil {
			return nil, fmt.Errorf("list %s settings: %w", sc.class, err)
		}

		attrs = append(attrs, sc.parse(resp, sc.class)...)
	}

	return attributes.FilterFQDD(attrs, fqdd), nil
}

// SetSettings stages the proposed attribute values on the card addressed
// by fqdd. Settings are keyed by group-qualified name; semantics otherwise
// match the BIOS setter.
func (s *Service) SetSettings(ctx context.Context, fqdd string, settings map[string]string) (attributes.ApplyResult, error) {
	if fqdd == "" {
		fqdd = DefaultFQDD
	}

	attrs, err := s.listSettings(ctx, fqdd)
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
		"Target":         {fqdd},
		"AttributeName":  plan.Names,
		"AttributeValue": plan.Values,
	}

	result, err := s.invoker.Invoke(ctx, s.service, "SetAttributes", props)
	if err != nil {
		return attributes.ApplyResult{}, fmt.Errorf("set idrac attributes on %s: %w", fqdd, err)
	}

	for i, name := range plan.Names {
		s.tracker.Stage(fqdd, name, plan.Values[i])
	}

	applied := attributes.ParseApplyResult(result.Response)
	s.logger.Info().
		Str("fqdd", fqdd).
		Int("attributes", len(plan.Names)).
		Bool("commit_required", applied.CommitRequired).
		Msg("iDRAC attributes staged")

	return applied, nil
}

// Commit turns the staged card changes into a config job and returns its
// ID.
func (s *Service) Commit(ctx context.Context, fqdd string, reboot bool) (string, error) {
	if fqdd == "" {
		fqdd = DefaultFQDD
	}

	return s.jobs.CreateConfigJob(ctx, jobs.ConfigJobSpec{
		Service:  s.service,
		Target:   fqdd,
		Reboot:   reboot,
		Schedule: jobs.StartTimeNow,
	})
}

// Abandon discards the staged card changes, local state first. Changes
// already committed into a job cannot be abandoned.
func (s *Service) Abandon(ctx context.Context, fqdd string) error {
	if fqdd == "" {
		fqdd = DefaultFQDD
	}

	if err := s.tracker.Abandon(fqdd); err != nil {
		return err
	}

	return s.jobs.DeletePendingConfig(ctx, jobs.PendingConfigSpec{
		Service: s.service,
		Target:  fqdd,
	})
}

// Reset restarts the management card, gracefully by default. The card
// acknowledges with a message id rather than a distinct return code, so
// anything but the acceptance message fails with ErrResetRejected. The
// card drops its sessions while restarting; callers should expect
// transport errors for a minute or two afterwards.
func (s *Service) Reset(ctx context.Context, force bool) error {
	props := map[string][]string{"Force": {"0"}}
	if force {
		props["Force"] = []string{"1"}
	}

	result, err := s.invoker.Invoke(ctx, s.service, "iDRACReset", props)
	if err != nil {
		return fmt.Errorf("reset idrac: %w", err)
	}

	if id := result.Response.Text("MessageID"); id != resetAccepted {
		return fmt.Errorf("%w: message %s", ErrResetRejected, id)
	}

	s.logger.Info().Bool("force", force).Msg("iDRAC reset accepted")

	return nil
}
