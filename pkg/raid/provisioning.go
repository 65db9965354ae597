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

package raid

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/jobs"
	"github.com/carverauto/godrac/pkg/wsman"
)

// RebootRequirement says whether a staged change needs a reboot to apply.
// Some controllers can apply changes in realtime and report "optional".
type RebootRequirement string

const (
	RebootYes      RebootRequirement = "yes"
	RebootOptional RebootRequirement = "optional"
	RebootNo       RebootRequirement = "no"
)

// ChangeResult reports what a staged provisioning change still needs.
type ChangeResult struct {
	CommitRequired bool
	Reboot         RebootRequirement
}

// VirtualDiskSpec describes a virtual disk to create.
type VirtualDiskSpec struct {
	// Controller is the FQDD of the RAID controller to create the disk
	// on; PhysicalDisks are the FQDDs of the backing drives.
	Controller    string
	PhysicalDisks []string
	// RAIDLevel is one of non-raid, 0, 1, 5, 6, 1+0, 5+0 or 6+0.
	RAIDLevel string
	SizeMB    int
	// Name, SpanDepth and SpanLength are optional; zero values are
	// omitted and left to the controller.
	Name       string
	SpanDepth  int
	SpanLength int
}

func (spec VirtualDiskSpec) validate() error {
	var problems []string

	if spec.Controller == "" {
		problems = append(problems, "controller is required")
	}

	if len(spec.PhysicalDisks) == 0 {
		problems = append(problems, "at least one physical disk is required")
	}

	if spec.SizeMB <= 0 {
		problems = append(problems, "size_mb must be positive")
	}

	if _, ok := raidLevelCodes[spec.RAIDLevel]; !ok {
		problems = append(problems, fmt.Sprintf("RAID level %q is not supported", spec.RAIDLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDiskSpec, strings.Join(problems, "; "))
	}

	return nil
}

// CreateVirtualDisk stages a new virtual disk on the spec's controller.
// The disk materializes once the controller's pending changes are
// committed.
func (s *Service) CreateVirtualDisk(ctx context.Context, spec VirtualDiskSpec) (ChangeResult, error) {
	if err := spec.validate(); err != nil {
		return ChangeResult{}, err
	}

	names := []string{"Size", "RAIDLevel"}
	values := []string{strconv.Itoa(spec.SizeMB), raidLevelCodes[spec.RAIDLevel]}

	if spec.Name != "" {
		names = append(names, "VirtualDiskName")
		values = append(values, spec.Name)
	}

	if spec.SpanDepth > 0 {
		names = append(names, "SpanDepth")
		values = append(values, strconv.Itoa(spec.SpanDepth))
	}

	if spec.SpanLength > 0 {
		names = append(names, "SpanLength")
		values = append(values, strconv.Itoa(spec.SpanLength))
	}

	props := map[string][]string{
		"Target":           {spec.Controller},
		"PDArray":          spec.PhysicalDisks,
		"VDPropNameArray":  names,
		"VDPropValueArray": values,
	}

	result, err := s.invoker.Invoke(ctx, s.service, "CreateVirtualDisk", props, gateway.RetSuccess)
	if err != nil {
		return ChangeResult{}, fmt.Errorf("create virtual disk on %s: %w", spec.Controller, err)
	}

	target := spec.Name
	if target == "" {
		target = "virtual disk"
	}

	s.tracker.Stage(spec.Controller, target, "create")
	s.logger.Info().
		Str("controller", spec.Controller).
		Str("raid_level", spec.RAIDLevel).
		Int("size_mb", spec.SizeMB).
		Msg("Virtual disk creation staged")

	return changeResult(result.Response), nil
}

// DeleteVirtualDisk stages the removal of the virtual disk with the given
// FQDD. The disk disappears once its controller's pending changes are
// committed.
func (s *Service) DeleteVirtualDisk(ctx context.Context, fqdd string) (ChangeResult, error) {
	props := map[string][]string{"Target": {fqdd}}

	result, err := s.invoker.Invoke(ctx, s.service, "DeleteVirtualDisk", props, gateway.RetSuccess)
	if err != nil {
		return ChangeResult{}, fmt.Errorf("delete virtual disk %s: %w", fqdd, err)
	}

	s.tracker.Stage(controllerOf(fqdd), fqdd, "delete")
	s.logger.Info().Str("virtual_disk", fqdd).Msg("Virtual disk deletion staged")

	return changeResult(result.Response), nil
}

// Commit turns the controller's staged changes into a config job and
// returns its ID.
func (s *Service) Commit(ctx context.Context, controller string, reboot bool) (string, error) {
	return s.jobs.CreateConfigJob(ctx, jobs.ConfigJobSpec{
		Service:  s.service,
		Target:   controller,
		Reboot:   reboot,
		Schedule: jobs.StartTimeNow,
	})
}

// Abandon discards the controller's staged changes, local state first.
// Changes already committed into a job cannot be abandoned.
func (s *Service) Abandon(ctx context.Context, controller string) error {
	if err := s.tracker.Abandon(controller); err != nil {
		return err
	}

	return s.jobs.DeletePendingConfig(ctx, jobs.PendingConfigSpec{
		Service: s.service,
		Target:  controller,
	})
}

func changeResult(resp *wsman.Response) ChangeResult {
	result := ChangeResult{CommitRequired: true, Reboot: RebootNo}

	switch strings.ToLower(resp.Text("RebootRequired")) {
	case "yes":
		result.Reboot = RebootYes
	case "optional":
		result.Reboot = RebootOptional
	}

	return result
}
