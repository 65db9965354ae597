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

// The facade addresses the embedded management card; fleets with auxiliary
// cards go through the idrac package directly with an explicit FQDD.

// ListIDRACSettings reports every management card attribute keyed by
// instance id.
func (c *Client) ListIDRACSettings(ctx context.Context) (map[string]attributes.Attribute, error) {
	return cached(ctx, c, cacheKeyIDRACSettings, c.idrac.ListSettings)
}

// SetIDRACSettings stages new values for card attributes, keyed by
// group-qualified name ("Users.2#UserName").
func (c *Client) SetIDRACSettings(ctx context.Context, settings map[string]string) (attributes.ApplyResult, error) {
	if err := c.gate(ctx); err != nil {
		return attributes.ApplyResult{}, err
	}

	result, err := c.idrac.SetSettings(ctx, "", settings)
	if err != nil {
		return attributes.ApplyResult{}, err
	}

	c.purge(cacheKeyIDRACSettings)

	return result, nil
}

// CommitPendingIDRACChanges turns the staged card changes into a config job
// and returns its id.
func (c *Client) CommitPendingIDRACChanges(ctx context.Context, reboot bool) (string, error) {
	if err := c.gate(ctx); err != nil {
		return "", err
	}

	jobID, err := c.idrac.Commit(ctx, "", reboot)
	if err != nil {
		return "", err
	}

	c.purge(cacheKeyIDRACSettings)

	return jobID, nil
}

// AbandonPendingIDRACChanges discards the staged card changes, locally and
// on the controller. It fails once the changes have been committed to a job.
func (c *Client) AbandonPendingIDRACChanges(ctx context.Context) error {
	if err := c.gate(ctx); err != nil {
		return err
	}

	if err := c.idrac.Abandon(ctx, ""); err != nil {
		return err
	}

	c.purge(cacheKeyIDRACSettings)

	return nil
}

// ResetIDRAC restarts the management card, gracefully unless force is set.
// Like power control it skips the readiness gate: resetting the card is how
// a wedged controller recovers. Expect transport errors for a minute or two
// while the card comes back.
func (c *Client) ResetIDRAC(ctx context.Context, force bool) error {
	if err := c.idrac.Reset(ctx, force); err != nil {
		return err
	}

	c.purgeAll()

	return nil
}
