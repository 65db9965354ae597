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
)

// ListNICSettings reports the attributes of the interface addressed by
// nicID, keyed by instance id. Interface FQDDs come from ListNICs.
func (c *Client) ListNICSettings(ctx context.Context, nicID string) (map[string]attributes.Attribute, error) {
	return cached(ctx, c, nicSettingsKey(nicID), func(ctx context.Context) (map[string]attributes.Attribute, error) {
		return c.nic.ListSettings(ctx, nicID)
	})
}

// SetNICSettings stages new values for attributes of the interface, keyed
// by group-qualified name.
func (c *Client) SetNICSettings(ctx context.Context, nicID string, settings map[string]string) (attributes.ApplyResult, error) {
	if err := c.gate(ctx); err != nil {
		return attributes.ApplyResult{}, err
	}

	result, err := c.nic.SetSettings(ctx, nicID, settings)
	if err != nil {
		return attributes.ApplyResult{}, err
	}

	c.purge(nicSettingsKey(nicID))

	return result, nil
}

// CommitPendingNICChanges turns the staged changes for the interface into a
// config job and returns its id.
func (c *Client) CommitPendingNICChanges(ctx context.Context, nicID string, reboot bool) (string, error) {
	if err := c.gate(ctx); err != nil {
		return "", err
	}

	jobID, err := c.nic.Commit(ctx, nicID, reboot)
	if err != nil {
		return "", err
	}

	c.purge(nicSettingsKey(nicID))

	return jobID, nil
}

// AbandonPendingNICChanges discards the staged changes for the interface,
// locally and on the controller. It fails once the changes have been
// committed to a job.
func (c *Client) AbandonPendingNICChanges(ctx context.Context, nicID string) error {
	if err := c.gate(ctx); err != nil {
		return err
	}

	if err := c.nic.Abandon(ctx, nicID); err != nil {
		return err
	}

	c.purge(nicSettingsKey(nicID))

	return nil
}
