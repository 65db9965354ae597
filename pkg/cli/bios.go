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
	"sort"
	"strings"

	"github.com/carverauto/godrac/pkg/attributes"
	"github.com/carverauto/godrac/pkg/client"
)

func runBoot(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: boot <modes|devices|order>", errMissingArgument)
	}

	switch args[0] {
	case "modes":
		modes, err := c.ListBootModes(ctx)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(modes))
		for _, m := range modes {
			rows = append(rows, []string{m.ID, m.Name, yesNo(m.IsCurrent), yesNo(m.IsNext)})
		}

		renderTable([]string{"ID", "NAME", "CURRENT", "NEXT"}, rows)

		return nil
	case "devices":
		byMode, err := c.ListBootDevices(ctx)
		if err != nil {
			return err
		}

		modes := make([]string, 0, len(byMode))
		for mode := range byMode {
			modes = append(modes, mode)
		}

		sort.Strings(modes)

		var rows [][]string

		for _, mode := range modes {
			for _, d := range byMode[mode] {
				rows = append(rows, []string{
					mode, d.ID, itoa(d.CurrentSequence), itoa(d.PendingSequence), d.BootString,
				})
			}
		}

		renderTable([]string{"MODE", "DEVICE", "SEQ", "PENDING", "DESCRIPTION"}, rows)

		return nil
	case "order":
		fs := flag.NewFlagSet("boot order", flag.ContinueOnError)
		mode := fs.String("mode", "", "boot mode instance id (e.g. IPL)")

		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		devices := fs.Args()
		if *mode == "" || len(devices) == 0 {
			return fmt.Errorf("%w: boot order -mode <id> <device> [device...]", errMissingArgument)
		}

		if err := c.ChangeBootDeviceOrder(ctx, *mode, devices); err != nil {
			return err
		}

		fmt.Println("boot order staged; commit with: godrac bios commit")

		return nil
	default:
		return fmt.Errorf("%w: boot %q", errUnknownCommand, args[0])
	}
}

func runBIOS(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: bios <list|set|commit|abandon>", errMissingArgument)
	}

	switch args[0] {
	case "list":
		settings, err := c.ListBIOSSettings(ctx)
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

		result, err := c.SetBIOSSettings(ctx, settings)
		if err != nil {
			return err
		}

		printApplyResult(result)

		return nil
	case "commit":
		fs := flag.NewFlagSet("bios commit", flag.ContinueOnError)
		reboot := fs.Bool("reboot", false, "also create a reboot job so the change applies now")

		var wf waitFlags

		wf.register(fs)

		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		jobID, err := c.CommitPendingBIOSChanges(ctx, *reboot)
		if err != nil {
			return err
		}

		return finishJob(ctx, c, jobID, &wf)
	case "abandon":
		return c.AbandonPendingBIOSChanges(ctx)
	default:
		return fmt.Errorf("%w: bios %q", errUnknownCommand, args[0])
	}
}

// parseAssignments turns name=value arguments into a settings map.
func parseAssignments(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: expected name=value arguments", errMissingArgument)
	}

	settings := make(map[string]string, len(args))

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q is not name=value", errInvalidArgument, arg)
		}

		settings[name] = value
	}

	return settings, nil
}

func renderAttributes(settings map[string]attributes.Attribute) {
	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}

	sort.Strings(names)

	rows := make([][]string, 0, len(names))

	for _, name := range names {
		attr := settings[name]
		rows = append(rows, []string{
			name, attr.CurrentValue, attr.PendingValue, yesNo(attr.ReadOnly),
		})
	}

	renderTable([]string{"NAME", "CURRENT", "PENDING", "READ-ONLY"}, rows)
}

func printApplyResult(result attributes.ApplyResult) {
	renderKV([][2]string{
		{"commit required", yesNo(result.CommitRequired)},
		{"reboot required", yesNo(result.RebootRequired)},
	})
}
