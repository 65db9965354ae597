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

// Package raid inspects and provisions storage on the system's RAID
// controllers. Virtual disk creation and deletion stage per controller and
// apply once the controller's pending changes are committed.
package raid

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/jobs"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/pending"
	"github.com/carverauto/godrac/pkg/wsman"
)

// raidLevelCodes maps the RAID level names callers use to the DCIM
// RAIDTypes codes the controller speaks.
var raidLevelCodes = map[string]string{
	"non-raid": "1",
	"0":        "2",
	"1":        "4",
	"5":        "64",
	"6":        "128",
	"1+0":      "2048",
	"5+0":      "8192",
	"6+0":      "16384",
}

var raidLevelNames = func() map[string]string {
	names := make(map[string]string, len(raidLevelCodes))
	for name, code := range raidLevelCodes {
		names[code] = name
	}

	return names
}()

var diskStates = map[string]string{
	"0": "unknown",
	"1": "ok",
	"2": "degraded",
	"3": "error",
}

var diskRAIDStates = map[string]string{
	"0": "unknown",
	"1": "ready",
	"2": "online",
	"3": "foreign",
	"4": "offline",
	"5": "blocked",
	"6": "failed",
	"7": "degraded",
	"8": "non-RAID",
}

var pendingOperations = map[string]string{
	"1": "fast_init",
	"2": "pending_delete",
	"3": "pending_create",
}

var mediaTypes = map[string]string{
	"0": "hdd",
	"1": "ssd",
}

var busProtocols = map[string]string{
	"0": "unknown",
	"1": "scsi",
	"2": "pata",
	"3": "fibre",
	"4": "usb",
	"5": "sata",
	"6": "sas",
}

// Controller is a RAID controller as reported by DCIM_ControllerView.
type Controller struct {
	ID              string
	Description     string
	Manufacturer    string
	Model           string
	FirmwareVersion string
}

// VirtualDisk is a logical volume as reported by DCIM_VirtualDiskView.
type VirtualDisk struct {
	ID          string
	Name        string
	Description string
	Controller  string
	RAIDLevel   string
	SizeMB      int
	State       string
	RAIDState   string
	SpanDepth   int
	SpanLength  int
	// PendingOperation is fast_init, pending_delete or pending_create;
	// empty when nothing is staged against the disk.
	PendingOperation string
}

// PhysicalDisk is a drive as reported by DCIM_PhysicalDiskView.
type PhysicalDisk struct {
	ID              string
	Description     string
	Controller      string
	Manufacturer    string
	Model           string
	MediaType       string
	BusProtocol     string
	SizeMB          int
	FreeSizeMB      int
	SerialNumber    string
	FirmwareVersion string
	State           string
	RAIDState       string
}

// Service drives RAID configuration through the WS-Management gateway.
type Service struct {
	invoker gateway.Invoker
	tracker *pending.Tracker
	jobs    *jobs.Manager
	service cim.ObjectRef
	logger  logger.Logger
}

// New returns a Service invoking through invoker, staging change state per
// controller in tracker and committing through jobManager.
func New(invoker gateway.Invoker, tracker *pending.Tracker, jobManager *jobs.Manager, log logger.Logger) *Service {
	service, _ := cim.Resolve(cim.DCIMRAIDService, "DCIM_RAIDService", "DCIM:RAIDService")

	return &Service{
		invoker: invoker,
		tracker: tracker,
		jobs:    jobManager,
		service: service,
		logger:  log,
	}
}

// Controllers enumerates the system's RAID controllers.
func (s *Service) Controllers(ctx context.Context) ([]Controller, error) {
	resp, err := s.invoker.Enumerate(ctx, cim.DCIMControllerView)
	if err != nil {
		return nil, fmt.Errorf("list RAID controllers: %w", err)
	}

	var controllers []Controller
	for _, n := range resp.All("DCIM_ControllerView") {
		controllers = append(controllers, Controller{
			ID:              n.Text("FQDD"),
			Description:     n.Text("DeviceDescription"),
			Manufacturer:    n.Text("DeviceCardManufacturer"),
			Model:           n.Text("ProductName"),
			FirmwareVersion: n.Text("ControllerFirmwareVersion"),
		})
	}

	return controllers, nil
}

// VirtualDisks enumerates the virtual disks across all controllers.
func (s *Service) VirtualDisks(ctx context.Context) ([]VirtualDisk, error) {
	resp, err := s.invoker.Enumerate(ctx, cim.DCIMVirtualDiskView)
	if err != nil {
		return nil, fmt.Errorf("list virtual disks: %w", err)
	}

	var disks []VirtualDisk
	for _, n := range resp.All("DCIM_VirtualDiskView") {
		disks = append(disks, parseVirtualDisk(n))
	}

	return disks, nil
}

// PhysicalDisks enumerates the physical drives across all controllers.
func (s *Service) PhysicalDisks(ctx context.Context) ([]PhysicalDisk, error) {
	resp, err := s.invoker.Enumerate(ctx, cim.DCIMPhysicalDiskView)
	if err != nil {
		return nil, fmt.Errorf("list physical disks: %w", err)
	}

	var disks []PhysicalDisk
	for _, n := range resp.All("DCIM_PhysicalDiskView") {
		disks = append(disks, parsePhysicalDisk(n))
	}

	return disks, nil
}

func parseVirtualDisk(n *wsman.Node) VirtualDisk {
	fqdd := n.Text("FQDD")
	spanDepth, _ := strconv.Atoi(n.Text("SpanDepth"))
	spanLength, _ := strconv.Atoi(n.Text("SpanLength"))

	return VirtualDisk{
		ID:               fqdd,
		Name:             n.Text("Name"),
		Description:      n.Text("DeviceDescription"),
		Controller:       controllerOf(fqdd),
		RAIDLevel:        mapCode(raidLevelNames, n.Text("RAIDTypes")),
		SizeMB:           mbFromBytes(n.Text("SizeInBytes")),
		State:            mapCode(diskStates, n.Text("PrimaryStatus")),
		RAIDState:        mapCode(diskRAIDStates, n.Text("RAIDStatus")),
		SpanDepth:        spanDepth,
		SpanLength:       spanLength,
		PendingOperation: pendingOperation(n.Text("PendingOperations")),
	}
}

func parsePhysicalDisk(n *wsman.Node) PhysicalDisk {
	fqdd := n.Text("FQDD")

	return PhysicalDisk{
		ID:           fqdd,
		Description:  n.Text("DeviceDescription"),
		Controller:   controllerOf(fqdd),
		Manufacturer: n.Text("Manufacturer"),
		Model:        n.Text("Model"),
		MediaType:    mapCode(mediaTypes, n.Text("MediaType")),
		BusProtocol:  mapCode(busProtocols, n.Text("BusProtocol")),
		SizeMB:       mbFromBytes(n.Text("SizeInBytes")),
		FreeSizeMB:   mbFromBytes(n.Text("FreeSizeInBytes")),
		SerialNumber: n.Text("SerialNumber"),
		// The drive reports its firmware as a revision string.
		FirmwareVersion: n.Text("Revision"),
		State:           mapCode(diskStates, n.Text("PrimaryStatus")),
		RAIDState:       mapCode(diskRAIDStates, n.Text("RaidStatus")),
	}
}

// controllerOf extracts the controller FQDD, the last colon-separated
// segment of a disk FQDD.
func controllerOf(fqdd string) string {
	parts := strings.Split(fqdd, ":")

	return parts[len(parts)-1]
}

// mapCode translates a DCIM code through the given table, passing unknown
// codes through verbatim.
func mapCode(codes map[string]string, code string) string {
	if name, ok := codes[code]; ok {
		return name
	}

	return code
}

// pendingOperation translates PendingOperations; "0" means none.
func pendingOperation(code string) string {
	if code == "0" {
		return ""
	}

	return mapCode(pendingOperations, code)
}

func mbFromBytes(text string) int {
	b, _ := strconv.ParseUint(text, 10, 64)

	return int(b >> 20)
}
