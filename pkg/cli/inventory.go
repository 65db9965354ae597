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

package cli

import (
	"context"
	"fmt"

	"github.com/carverauto/godrac/pkg/client"
	"github.com/carverauto/godrac/pkg/inventory"
)

func runInventory(ctx context.Context, c *client.Client, args []string) error {
	what := "all"
	if len(args) > 0 {
		what = args[0]
	}

	switch what {
	case "cpus":
		cpus, err := c.ListCPUs(ctx)
		if err != nil {
			return err
		}

		renderCPUs(cpus)

		return nil
	case "memory":
		modules, err := c.ListMemory(ctx)
		if err != nil {
			return err
		}

		renderMemory(modules)

		return nil
	case "nics":
		nics, err := c.ListNICs(ctx)
		if err != nil {
			return err
		}

		renderNICs(nics)

		return nil
	case "all":
		system, err := c.Inventory(ctx)
		if err != nil {
			return err
		}

		renderCPUs(system.CPUs)
		renderMemory(system.Memory)
		renderNICs(system.NICs)

		return nil
	default:
		return fmt.Errorf("%w: inventory %q", errUnknownCommand, what)
	}
}

func renderCPUs(cpus []inventory.CPU) {
	rows := make([][]string, 0, len(cpus))
	for _, cpu := range cpus {
		rows = append(rows, []string{
			cpu.ID, cpu.Model, itoa(cpu.Cores), itoa(cpu.SpeedMHz) + " MHz",
			yesNo(cpu.HyperThreading), cpu.Status,
		})
	}

	renderTable([]string{"ID", "MODEL", "CORES", "SPEED", "HT", "STATUS"}, rows)
}

func renderMemory(modules []inventory.Memory) {
	rows := make([][]string, 0, len(modules))
	for _, m := range modules {
		rows = append(rows, []string{
			m.ID, m.Manufacturer, m.Model, mb(m.SizeMB), itoa(m.SpeedMHz) + " MHz", m.Status,
		})
	}

	renderTable([]string{"ID", "MANUFACTURER", "MODEL", "SIZE", "SPEED", "STATUS"}, rows)
}

func renderNICs(nics []inventory.NIC) {
	rows := make([][]string, 0, len(nics))
	for _, nic := range nics {
		speed := "-"
		if nic.SpeedMbps > 0 {
			speed = itoa(nic.SpeedMbps) + " Mbps"
		}

		rows = append(rows, []string{nic.ID, nic.MAC, nic.Model, speed, nic.Duplex, nic.MediaType})
	}

	renderTable([]string{"ID", "MAC", "MODEL", "SPEED", "DUPLEX", "MEDIA"}, rows)
}
