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

package client

import (
	"context"

	"github.com/carverauto/godrac/pkg/inventory"
)

// ListCPUs reports the installed processors.
func (c *Client) ListCPUs(ctx context.Context) ([]inventory.CPU, error) {
	return cached(ctx, c, cacheKeyCPUs, c.inv.CPUs)
}

// ListMemory reports the installed memory modules.
func (c *Client) ListMemory(ctx context.Context) ([]inventory.Memory, error) {
	return cached(ctx, c, cacheKeyMemory, c.inv.Memory)
}

// ListNICs reports the network interfaces.
func (c *Client) ListNICs(ctx context.Context) ([]inventory.NIC, error) {
	return cached(ctx, c, cacheKeyNICs, c.inv.NICs)
}

// Inventory snapshots CPUs, memory, and NICs in one parallel sweep.
func (c *Client) Inventory(ctx context.Context) (inventory.System, error) {
	return cached(ctx, c, cacheKeyInventory, c.inv.All)
}
