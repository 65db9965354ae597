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

	"github.com/carverauto/godrac/pkg/raid"
)

// ListRAIDControllers reports the RAID controllers in the system.
func (c *Client) ListRAIDControllers(ctx context.Context) ([]raid.Controller, error) {
	return cached(ctx, c, cacheKeyControllers, c.raid.Controllers)
}

// ListVirtualDisks reports every virtual disk, including ones with pending
// create or delete operations.
func (c *Client) ListVirtualDisks(ctx context.Context) ([]raid.VirtualDisk, error) {
	return cached(ctx, c, cacheKeyVirtualDisks, c.raid.VirtualDisks)
}

// ListPhysicalDisks reports the physical drives behind the controllers.
func (c *Client) ListPhysicalDisks(ctx context.Context) ([]raid.PhysicalDisk, error) {
	return cached(ctx, c, cacheKeyPhysicalDisks, c.raid.PhysicalDisks)
}

// CreateVirtualDisk stages a new virtual disk on spec.Controller. The disk
// is not built until the controller's pending changes are committed.
func (c *Client) CreateVirtualDisk(ctx context.Context, spec raid.VirtualDiskSpec) (raid.ChangeResult, error) {
	if err := c.gate(ctx); err != nil {
		return raid.ChangeResult{}, err
	}

	result, err := c.raid.CreateVirtualDisk(ctx, spec)
	if err != nil {
		return raid.ChangeResult{}, err
	}

	c.purge(raidCacheKeys...)

	return result, nil
}

// DeleteVirtualDisk stages removal of the virtual disk named by fqdd.
func (c *Client) DeleteVirtualDisk(ctx context.Context, fqdd string) (raid.ChangeResult, error) {
	if err := c.gate(ctx); err != nil {
		return raid.ChangeResult{}, err
	}

	result, err := c.raid.DeleteVirtualDisk(ctx, fqdd)
	if err != nil {
		return raid.ChangeResult{}, err
	}

	c.purge(raidCacheKeys...)

	return result, nil
}

// CommitPendingRAIDChanges turns the staged changes on controller into a
// config job and returns its id.
func (c *Client) CommitPendingRAIDChanges(ctx context.Context, controller string, reboot bool) (string, error) {
	if err := c.gate(ctx); err != nil {
		return "", err
	}

	jobID, err := c.raid.Commit(ctx, controller, reboot)
	if err != nil {
		return "", err
	}

	c.purge(raidCacheKeys...)

	return jobID, nil
}

// AbandonPendingRAIDChanges discards the staged changes on controller,
// locally and on the controller itself.
func (c *Client) AbandonPendingRAIDChanges(ctx context.Context, controller string) error {
	if err := c.gate(ctx); err != nil {
		return err
	}

	if err := c.raid.Abandon(ctx, controller); err != nil {
		return err
	}

	c.purge(raidCacheKeys...)

	return nil
}
