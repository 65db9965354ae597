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

// Package bios manages BIOS configuration: boot modes, boot device order
// and the BIOS attribute registry. Changes stage on the controller until
// they are committed into a config job or abandoned.
package bios

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/jobs"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/pending"
	"github.com/carverauto/godrac/pkg/wsman"
)

// SetupTarget is the FQDD of the BIOS setup resource. Staged attribute and
// boot-order changes accumulate under it until committed.
const SetupTarget = "BIOS.Setup.1-1"

// BootMode is one boot configuration the system can start from, e.g. the
// BIOS boot list ("IPL") or the UEFI one.
type BootMode struct {
	ID   string
	Name string
	// IsCurrent marks the mode the system last booted with, IsNext the
	// one it will boot with.
	IsCurrent bool
	IsNext    bool
}

// BootDevice is one entry in a boot mode's device list.
type BootDevice struct {
	ID       string
	BootMode string
	// PendingSequence is the device's position after staged changes
	// apply; CurrentSequence is its active position.
	PendingSequence int
	CurrentSequence int
	BootString      string
}

// Service drives BIOS configuration through the WS-Management gateway.
type Service struct {
	invoker gateway.Invoker
	tracker *pending.Tracker
	jobs    *jobs.Manager
	service cim.ObjectRef
	logger  logger.Logger
}

// New returns a Service invoking through invoker and staging change state
// in tracker. Config jobs for committing changes are created through
// jobManager.
func New(invoker gateway.Invoker, tracker *pending.Tracker, jobManager *jobs.Manager, log logger.Logger) *Service {
	service, _ := cim.Resolve(cim.DCIMBIOSService, "DCIM_BIOSService", "DCIM:BIOSService")

	return &Service{
		invoker: invoker,
		tracker: tracker,
		jobs:    jobManager,
		service: service,
		logger:  log,
	}
}

// ListBootModes enumerates the boot configurations the system offers.
func (s *Service) ListBootModes(ctx context.Context) ([]BootMode, error) {
	resp, err := s.invoker.Enumerate(ctx, cim.DCIMBootConfigSetting)
	if err != nil {
		return nil, fmt.Errorf("list boot modes: %w", err)
	}

	var modes []BootMode
	for _, n := range resp.All("DCIM_BootConfigSetting") {
		modes = append(modes, BootMode{
			ID:        n.Text("InstanceID"),
			Name:      n.Text("ElementName"),
			IsCurrent: n.Text("IsCurrent") == "1",
			IsNext:    n.Text("IsNext") == "1",
		})
	}

	return modes, nil
}

// ListBootDevices enumerates boot devices grouped by boot mode ID, each
// group ordered by pending sequence.
func (s *Service) ListBootDevices(ctx context.Context) (map[string][]BootDevice, error) {
	resp, err := s.invoker.Enumerate(ctx, cim.DCIMBootSourceSetting)
	if err != nil {
		return nil, fmt.Errorf("list boot devices: %w", err)
	}

	devices := make(map[string][]BootDevice)

	for _, n := range resp.All("DCIM_BootSourceSetting") {
		device := parseBootDevice(n)
		devices[device.BootMode] = append(devices[device.BootMode], device)
	}

	for _, group := range devices {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].PendingSequence < group[j].PendingSequence
		})
	}

	return devices, nil
}

func parseBootDevice(n *wsman.Node) BootDevice {
	id := n.Text("InstanceID")

	// 11g firmware omits BootSourceType; there the instance ID carries
	// the mode as a prefix, e.g. "IPL:BIOS.Setup.1-1#BootSeq#...".
	mode := n.Text("BootSourceType")
	if mode == "" {
		mode, _, _ = strings.Cut(id, ":")
	}

	pendingSeq, _ := strconv.Atoi(n.Text("PendingAssignedSequence"))
	currentSeq, _ := strconv.Atoi(n.Text("CurrentAssignedSequence"))

	return BootDevice{
		ID:              id,
		BootMode:        mode,
		PendingSequence: pendingSeq,
		CurrentSequence: currentSeq,
		BootString:      n.Text("BIOSBootString"),
	}
}

// ChangeBootDeviceOrder stages deviceIDs as the new boot order for the
// given boot mode. Devices omitted from the list keep their relative order
// after the listed ones. The change takes effect once committed.
func (s *Service) ChangeBootDeviceOrder(ctx context.Context, bootMode string, deviceIDs []string) error {
	ref, err := cim.InstanceRef(cim.DCIMBootConfigSetting, bootMode)
	if err != nil {
		return fmt.Errorf("change boot order: %w", err)
	}

	props := map[string][]string{"source": deviceIDs}

	if _, err := s.invoker.Invoke(ctx, ref, "ChangeBootOrderByInstanceID", props, gateway.RetSuccess); err != nil {
		return fmt.Errorf("change boot order for %s: %w", bootMode, err)
	}

	s.tracker.Stage(SetupTarget, bootMode, strings.Join(deviceIDs, ","))
	s.logger.Info().
		Str("boot_mode", bootMode).
		Int("devices", len(deviceIDs)).
		Msg("Boot device order staged")

	return nil
}
