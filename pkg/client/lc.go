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
	"github.com/carverauto/godrac/pkg/lc"
)

// LCVersion reports the Lifecycle Controller firmware version.
func (c *Client) LCVersion(ctx context.Context) (lc.Version, error) {
	return c.lc.Version(ctx)
}

// ListLCSettings reports every Lifecycle Controller attribute keyed by
// instance id.
func (c *Client) ListLCSettings(ctx context.Context) (map[string]attributes.Attribute, error) {
	return cached(ctx, c, cacheKeyLCSettings, c.lc.ListSettings)
}

// SetLCSettings stages new values for the named Lifecycle Controller
// attributes.
func (c *Client) SetLCSettings(ctx context.Context, settings map[string]string) (attributes.ApplyResult, error) {
	if err := c.gate(ctx); err != nil {
		return attributes.ApplyResult{}, err
	}

	result, err := c.lc.SetSettings(ctx, settings)
	if err != nil {
		return attributes.ApplyResult{}, err
	}

	c.purge(cacheKeyLCSettings)

	return result, nil
}

// CommitPendingLCChanges turns the staged Lifecycle Controller changes into
// a config job and returns its id.
func (c *Client) CommitPendingLCChanges(ctx context.Context, reboot bool) (string, error) {
	if err := c.gate(ctx); err != nil {
		return "", err
	}

	jobID, err := c.lc.Commit(ctx, reboot)
	if err != nil {
		return "", err
	}

	c.purge(cacheKeyLCSettings)

	return jobID, nil
}
