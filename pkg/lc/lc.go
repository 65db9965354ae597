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

// Package lc talks to the Lifecycle Controller: firmware version,
// readiness of the remote services API, and the controller's own attribute
// store.
package lc

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/carverauto/godrac/pkg/attributes"
	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/jobs"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/pending"
	"github.com/carverauto/godrac/pkg/wsman"
)

// ConfigTarget is the target the LC service expects for attribute writes
// and config jobs: unlike BIOS or RAID, the controller configures itself
// and takes an empty target.
const ConfigTarget = ""

const versionQuery = "select LifecycleControllerVersion from DCIM_SystemView"

// LCStatus codes reported by GetRemoteServicesAPIStatus.
const (
	statusReady    = "0"
	statusRecovery = "4"
)

// Version is the Lifecycle Controller firmware version.
type Version struct {
	Major int
	Minor int
	Patch int
	// Raw preserves the reported string, which can carry build
	// components beyond the three parsed ones.
	Raw string
}

func (v Version) String() string {
	return v.Raw
}

// Service drives the Lifecycle Controller through the WS-Management
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
	service, _ := cim.Resolve(cim.DCIMLCService, "DCIM_LCService", "DCIM:LCService")

	return &Service{
		invoker: invoker,
		tracker: tracker,
		jobs:    jobManager,
		service: service,
		logger:  log,
	}
}

// Version reads the Lifecycle Controller firmware version from the system
// view.
func (s *Service) Version(ctx context.Context) (Version, error) {
	resp, err := s.invoker.Enumerate(ctx, cim.DCIMSystemView,
		wsman.WithFilter("cql", versionQuery))
	if err != nil {
		return Version{}, fmt.Errorf("read Lifecycle Controller version: %w", err)
	}

	return parseVersion(resp.Text("LifecycleControllerVersion"))
}

// Ready reports whether the remote services API is ready to take
// requests. A controller stuck in recovery mode fails with ErrInRecovery;
// transitional states report not ready without an error.
func (s *Service) Ready(ctx context.Context) (bool, error) {
	result, err := s.invoker.Invoke(ctx, s.service, "GetRemoteServicesAPIStatus", nil, gateway.RetSuccess)
	if err != nil {
		return false, fmt.Errorf("query remote services status: %w", err)
	}

	switch result.Response.Text("LCStatus") {
	case statusReady:
		return true, nil
	case statusRecovery:
		return false, ErrInRecovery
	default:
		return false, nil
	}
}

// ListSettings returns every Lifecycle Controller attribute keyed by
// instance ID. The LC registry has no integer class.
func (s *Service) ListSettings(ctx context.Context) (map[string]attributes.Attribute, error) {
	attrs, err := s.listSettings(ctx)
	if err != nil {
		return nil, err
	}

	return attributes.ByInstanceID(attrs), nil
}

func (s *Service) listSettings(ctx context.Context) ([]attributes.Attribute, error) {
	enumResp, err := s.invoker.Enumerate(ctx, cim.DCIMLCEnumeration)
	if err != nil {
		return nil, fmt.Errorf("list DCIM_LCEnumeration settings: %w", err)
	}

	attrs := attributes.ParseEnumeration(enumResp, "DCIM_LCEnumeration")

	stringResp, err := s.invoker.Enumerate(ctx, cim.DCIMLCString)
	if err != nil {
		return nil, fmt.Errorf("list DCIM_LCString settings: %w", err)
	}

	return append(attrs, attributes.ParseString(stringResp, "DCIM_LCString")...), nil
}

// SetSettings stages the proposed attribute values on the controller.
// Semantics match the BIOS setter: unchanged values are skipped, unknown
// names, read-only attributes and invalid values reject the call.
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
		"Target":         {ConfigTarget},
		"AttributeName":  plan.Names,
		"AttributeValue": plan.Values,
	}

	result, err := s.invoker.Invoke(ctx, s.service, "SetAttributes", props)
	if err != nil {
		return attributes.ApplyResult{}, fmt.Errorf("set Lifecycle Controller attributes: %w", err)
	}

	for i, name := range plan.Names {
		s.tracker.Stage(ConfigTarget, name, plan.Values[i])
	}

	applied := attributes.ParseApplyResult(result.Response)
	s.logger.Info().
		Int("attributes", len(plan.Names)).
		Bool("commit_required", applied.CommitRequired).
		Msg("Lifecycle Controller attributes staged")

	return applied, nil
}

// Commit turns the staged attribute changes into a config job and returns
// its ID. The LC service only accepts the untargeted CreateConfigJob
// variant.
func (s *Service) Commit(ctx context.Context, reboot bool) (string, error) {
	return s.jobs.CreateConfigJob(ctx, jobs.ConfigJobSpec{
		Service:  s.service,
		Target:   ConfigTarget,
		Method:   "CreateConfigJob",
		Reboot:   reboot,
		Schedule: jobs.StartTimeNow,
	})
}

func parseVersion(text string) (Version, error) {
	if text == "" {
		return Version{}, fmt.Errorf("%w: no version in response", ErrBadVersion)
	}

	version := Version{Raw: text}
	fields := []*int{&version.Major, &version.Minor, &version.Patch}

	for i, part := range strings.Split(text, ".") {
		if i >= len(fields) {
			break
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrBadVersion, text)
		}

		*fields[i] = n
	}

	return version, nil
}
