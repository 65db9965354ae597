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
	"flag"
	"fmt"

	"github.com/carverauto/godrac/pkg/client"
)

func runLC(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: lc <version|settings|set|commit>", errMissingArgument)
	}

	switch args[0] {
	case "version":
		v, err := c.LCVersion(ctx)
		if err != nil {
			return err
		}

		fmt.Println(v)

		return nil
	case "settings":
		settings, err := c.ListLCSettings(ctx)
		if err != nil {
			return err
		}

		renderAttributes(settings)

		return nil
	case "set":
		settings, err := parseAssignments(args[1:])
		if err != nil {
			return err
		}

		result, err := c.SetLCSettings(ctx, settings)
		if err != nil {
			return err
		}

		printApplyResult(result)

		return nil
	case "commit":
		fs := flag.NewFlagSet("lc commit", flag.ContinueOnError)
		reboot := fs.Bool("reboot", false, "also create a reboot job so the change applies now")

		var wf waitFlags

		wf.register(fs)

		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		jobID, err := c.CommitPendingLCChanges(ctx, *reboot)
		if err != nil {
			return err
		}

		return finishJob(ctx, c, jobID, &wf)
	default:
		return fmt.Errorf("%w: lc %q", errUnknownCommand, args[0])
	}
}
