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

package bios

import (
	"context"
	"fmt"

	"github.com/carverauto/godrac/pkg/attributes"
	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/jobs"
	"github.com/carverauto/godrac/pkg/wsman"
)

// Attribute registry classes backing the BIOS settings surface.
var settingsClasses = []struct {
	resourceURI string
	class       string
	parse       func(*wsman.Response, string) []attributes.Attribute
}{
	{cim.DCIMBIOSEnumeration, "DCIM_BIOSEnumeration", attributes.ParseEnumeration},
	{cim.DCIMBIOSString, "DCIM_BIOSString", attributes.ParseString},
	{cim.DCIMBIOSInteger, "DCIM_BIOSInteger", attributes.ParseInteger},
}

// ListSettings returns every BIOS attribute keyed by instance ID.
func (s *Service) ListSettings(ctx context.Context) (map[string]attributes.Attribute, error) {
	attrs, err := s.listSettings(ctx)
	if err != nil {
		return nil, err
	}

	return attributes.ByInstanceID(attrs), nil
}

func (s *Service) listSettings(ctx context.Context) ([]attributes.Attribute, error) {
	var attrs []attributes.Attribute

	for _, sc := range settingsClasses {
		resp, err := s.invoker.Enumerate(ctx, sc.resourceURI)
		if err != nil {
			return nil, fmt.Errorf("list %s settings: %w", sc.class, err)
		}

		attrs = append(attrs, sc.parse(resp, sc.class)...)
	}

	return attrs, nil
}

// SetSettings stages the proposed attribute values. Values equal to the
// attribute's current one are skipped; unknown names, read-only attributes
// and values failing validation reject the whole call. When nothing is
// left to write the zero ApplyResult reports that no commit is required.
func (s *Service) SetSettings(ctx context.Context, settings map[string]string) (attributes.ApplyResult, error) {
	attrs, err := s.listSettings(ctx)
	if err != nil {
		return attributes.ApplyResult{}, err
	}

	byName, err := attributes.ByName(attrs)
	if err != nil {
		return attributes.ApplyResult{}, err
	}

	plan, err := attributes.PlanChanges(byName, settings)
	if err != nil {
		return attributes.ApplyResult{}, err
	}

	if plan.Empty() {
		return attributes.ApplyResult{}, nil
	}

	props := map[string][]string{
		"Target":         {SetupTarget},
		"AttributeName":  plan.Names,
		"AttributeValue": plan.Values,
	}

	result, err := s.invoker.Invoke(ctx, s.service, "SetAttributes", props)
	if err != nil {
		return attributes.ApplyResult{}, fmt.Errorf("set BIOS attributes: %w", err)
	}

	for i, name := range plan.Names {
		s.tracker.Stage(SetupTarget, name, plan.Values[i])
	}

	applied := attributes.ParseApplyResult(result.Response)
	s.logger.Info().
		Int("attributes", len(plan.Names)).
		Bool("commit_required", applied.CommitRequired).
		Msg("BIOS attributes staged")

	return applied, nil
}

// Commit turns the staged BIOS changes into a config job and returns its
// ID. With reboot a reboot job is queued alongside so the changes apply
// immediately.
func (s *Service) Commit(ctx context.Context, reboot bool) (string, error) {
	return s.jobs.CreateConfigJob(ctx, jobs.ConfigJobSpec{
		Service:  s.service,
		Target:   SetupTarget,
		Reboot:   reboot,
		Schedule: jobs.StartTimeNow,
	})
}

// Abandon discards the staged BIOS changes, local state first. Changes
// already committed into a job cannot be abandoned. If the remote discard
// fails, retrying converges: the local clear is idempotent.
func (s *Service) Abandon(ctx context.Context) error {
	if err := s.tracker.Abandon(SetupTarget); err != nil {
		return err
	}

	return s.jobs.DeletePendingConfig(ctx, jobs.PendingConfigSpec{
		Service: s.service,
		Target:  SetupTarget,
	})
}
