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
	"github.com/carverauto/godrac/pkg/power"
)

func runPower(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		args = []string{"get"}
	}

	switch args[0] {
	case "get":
		state, err := c.PowerState(ctx)
		if err != nil {
			return err
		}

		fmt.Println(state)

		return nil
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("%w: power set <on|off|reboot>", errMissingArgument)
		}

		target, err := parsePowerState(args[1])
		if err != nil {
			return err
		}

		return c.SetPowerState(ctx, target)
	default:
		return fmt.Errorf("%w: power %q", errUnknownCommand, args[0])
	}
}

func parsePowerState(s string) (power.State, error) {
	switch s {
	case "on":
		return power.On, nil
	case "off":
		return power.Off, nil
	case "reboot":
		return power.Reboot, nil
	default:
		return "", fmt.Errorf("%w: power state %q (want on, off or reboot)", errInvalidArgument, s)
	}
}
