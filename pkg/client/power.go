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

	"github.com/carverauto/godrac/pkg/power"
)

// PowerState reports the current chassis power state.
func (c *Client) PowerState(ctx context.Context) (power.State, error) {
	return c.power.State(ctx)
}

// SetPowerState drives the chassis to target. Power control is the tool for
// recovering a wedged controller, so it skips the readiness gate. It also
// flushes the read cache: a power cycle is what makes staged jobs run.
func (c *Client) SetPowerState(ctx context.Context, target power.State) error {
	if err := c.power.SetState(ctx, target); err != nil {
		return err
	}

	c.purgeAll()

	return nil
}
