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

// Package inventory reads the hardware the system reports: processors,
// memory modules and network interfaces.
package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/wsman"
)

// Characteristics code the CPU view reports for 64-bit capability.
const characteristics64Bit = "4"

var primaryStatuses = map[string]string{
	"0": "unknown",
	"1": "ok",
	"2": "degraded",
	"3": "error",
}

// linkSpeeds maps LinkSpeed codes to Mbps; 0 means the speed is unknown.
var linkSpeeds = map[string]int{
	"0":  0,
	"1":  10,
	"2":  100,
	"3":  1000,
	"4":  2560,
	"5":  10240,
	"6":  20480,
	"7":  40960,
	"8":  102400,
	"9":  25600,
	"10": 51200,
}

var linkDuplexes = map[string]string{
	"0": "unknown",
	"1": "full duplex",
	"2": "half duplex",
}

// CPU is a processor as reported by DCIM_CPUView.
type CPU struct {
	ID             string
	Cores          int
	SpeedMHz       int
	Model          string
	Status         string
	HyperThreading bool
	TurboMode      bool
	Virtualization bool
	Arch64         bool
}

// Memory is an installed memory module as reported by DCIM_MemoryView.
type Memory struct {
	ID           string
	SizeMB       int
	SpeedMHz     int
	Manufacturer string
	Model        string
	Status       string
}

// NIC is a network interface as reported by DCIM_NICView.
type NIC struct {
	ID    string
	MAC   string
	Model string
	// SpeedMbps is 0 when the link speed is unknown or the link is down.
	SpeedMbps int
	Duplex    string
	MediaType string
}

// System is a point-in-time snapshot of the reported hardware.
type System struct {
	CPUs   []CPU
	Memory []Memory
	NICs   []NIC
}

// Service reads hardware inventory through the WS-Management gateway.
type Service struct {
	invoker gateway.Invoker
	logger  logger.Logger
}

// New returns a Service enumerating through invoker.
func New(invoker gateway.Invoker, log logger.Logger) *Service {
	return &Service{invoker: invoker, logger: log}
}

// CPUs enumerates the installed processors.
func (s *Service) CPUs(ctx context.Context) ([]CPU, error) {
	resp, err := s.invoker.Enumerate(ctx, cim.DCIMCPUView)
	if err != nil {
		return nil, fmt.Errorf("list CPUs: %w", err)
	}

	var cpus []CPU
	for _, n := range resp.All("DCIM_CPUView") {
		cpus = append(cpus, parseCPU(n))
	}

	return cpus, nil
}

// Memory enumerates the installed memory modules.
func (s *Service) Memory(ctx context.Context) ([]Memory, error) {
	resp, err := s.invoker.Enumerate(ctx, cim.DCIMMemoryView)
	if err != nil {
		return nil, fmt.Errorf("list memory: %w", err)
	}

	var modules []Memory
	for _, n := range resp.All("DCIM_MemoryView") {
		modules = append(modules, parseMemory(n))
	}

	return modules, nil
}

// NICs enumerates the network interfaces.
func (s *Service) NICs(ctx context.Context) ([]NIC, error) {
	resp, err := s.invoker.Enumerate(ctx, cim.DCIMNICView)
	if err != nil {
		return nil, fmt.Errorf("list NICs: %w", err)
	}

	var nics []NIC
	for _, n := range resp.All("DCIM_NICView") {
		nics = append(nics, parseNIC(n))
	}

	return nics, nil
}

// All runs the three inventory enumerations concurrently and assembles a
// System snapshot. The first failure cancels the rest.
func (s *Service) All(ctx context.Context) (System, error) {
	var system System

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cpus, err := s.CPUs(ctx)
		system.CPUs = cpus

		return err
	})
	g.Go(func() error {
		modules, err := s.Memory(ctx)
		system.Memory = modules

		return err
	})
	g.Go(func() error {
		nics, err := s.NICs(ctx)
		system.NICs = nics

		return err
	})

	if err := g.Wait(); err != nil {
		return System{}, err
	}

	return system, nil
}

func parseCPU(n *wsman.Node) CPU {
	cores, _ := strconv.Atoi(n.Text("NumberOfProcessorCores"))
	speed, _ := strconv.Atoi(n.Text("CurrentClockSpeed"))

	return CPU{
		ID:             n.Text("FQDD"),
		Cores:          cores,
		SpeedMHz:       speed,
		Model:          n.Text("Model"),
		Status:         mapCode(primaryStatuses, n.Text("PrimaryStatus")),
		HyperThreading: boolText(n.Text("HyperThreadingEnabled")),
		TurboMode:      boolText(n.Text("TurboModeEnabled")),
		Virtualization: boolText(n.Text("VirtualizationTechnologyEnabled")),
		Arch64:         n.Text("Characteristics") == characteristics64Bit,
	}
}

func parseMemory(n *wsman.Node) Memory {
	size, _ := strconv.Atoi(n.Text("Size"))
	speed, _ := strconv.Atoi(n.Text("Speed"))

	return Memory{
		ID:           n.Text("FQDD"),
		SizeMB:       size,
		SpeedMHz:     speed,
		Manufacturer: n.Text("Manufacturer"),
		Model:        n.Text("Model"),
		Status:       mapCode(primaryStatuses, n.Text("PrimaryStatus")),
	}
}

func parseNIC(n *wsman.Node) NIC {
	return NIC{
		ID:        n.Text("FQDD"),
		MAC:       n.Text("CurrentMACAddress"),
		Model:     n.Text("ProductName"),
		SpeedMbps: linkSpeeds[n.Text("LinkSpeed")],
		Duplex:    mapCode(linkDuplexes, n.Text("LinkDuplex")),
		MediaType: n.Text("MediaType"),
	}
}

// boolText parses the boolean renderings DCIM views use: "1" and "true"
// are true, everything else (including "0" and absence) is false.
func boolText(value string) bool {
	return value == "1" || strings.EqualFold(value, "true")
}

func mapCode(codes map[string]string, code string) string {
	if name, ok := codes[code]; ok {
		return name
	}

	return code
}
