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

	"github.com/carverauto/godrac/pkg/attributes"
	"github.com/carverauto/godrac/pkg/bios"
)

// ListBootModes reports the boot configurations the system knows about,
// flagged with which one is current and which is next.
func (c *Client) ListBootModes(ctx context.Context) ([]bios.BootMode, error) {
	return cached(ctx, c, cacheKeyBootModes, c.bios.ListBootModes)
}

// ListBootDevices reports the bootable devices grouped by boot mode, in
// pending boot order.
func (c *Client) ListBootDevices(ctx context.Context) (map[string][]bios.BootDevice, error) {
	return cached(ctx, c, cacheKeyBootDevices, c.bios.ListBootDevices)
}

// ChangeBootDeviceOrder stages a new device order for bootMode. The change
// joins the BIOS pending set and applies on the next BIOS config job.
func (c *Client) ChangeBootDeviceOrder(ctx context.Context, bootMode string, deviceIDs []string) error {
	if err := c.gate(ctx); err != nil {
		return err
	}

	if err := c.bios.ChangeBootDeviceOrder(ctx, bootMode, deviceIDs); err != nil {
		return err
	}

	c.purge(biosCacheKeys...)

	return nil
}

// ListBIOSSettings reports every BIOS attribute keyed by instance id.
func (c *Client) ListBIOSSettings(ctx context.Context) (map[string]attributes.Attribute, error) {
	return cached(ctx, c, cacheKeyBIOSSettings, c.bios.ListSettings)
}

// SetBIOSSettings stages new values for the named BIOS attributes. The
// result says whether anything actually changed and needs a commit.
func (c *Client) SetBIOSSettings(ctx context.Context, settings map[string]string) (attributes.ApplyResult, error) {
	if err := c.gate(ctx); err != nil {
		return attributes.ApplyResult{}, err
	}

	result, err := c.bios.SetSettings(ctx, settings)
	if err != nil {
		return attributes.ApplyResult{}, err
	}

	c.purge(biosCacheKeys...)

	return result, nil
}

// CommitPendingBIOSChanges turns the staged BIOS changes into a config job
// and returns its id. With reboot set, the job reboots the host to apply.
func (c *Client) CommitPendingBIOSChanges(ctx context.Context, reboot bool) (string, error) {
	if err := c.gate(ctx); err != nil {
		return "", err
	}

	jobID, err := c.bios.Commit(ctx, reboot)
	if err != nil {
		return "", err
	}

	c.purge(biosCacheKeys...)

	return jobID, nil
}

// AbandonPendingBIOSChanges discards the staged BIOS changes, locally and
// on the controller. It fails once the changes have been committed to a job.
func (c *Client) AbandonPendingBIOSChanges(ctx context.Context) error {
	if err := c.gate(ctx); err != nil {
		return err
	}

	if err := c.bios.Abandon(ctx); err != nil {
		return err
	}

	c.purge(biosCacheKeys...)

	return nil
}
