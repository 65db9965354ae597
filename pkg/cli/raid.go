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
	"strings"

	"github.com/carverauto/godrac/pkg/client"
	"github.com/carverauto/godrac/pkg/raid"
)

func runRAID(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf(
			"%w: raid <controllers|vdisks|pdisks|create-vdisk|delete-vdisk|commit|abandon>",
			errMissingArgument)
	}

	switch args[0] {
	case "controllers":
		return raidControllers(ctx, c)
	case "vdisks":
		return raidVirtualDisks(ctx, c)
	case "pdisks":
		return raidPhysicalDisks(ctx, c)
	case "create-vdisk":
		return raidCreateVDisk(ctx, c, args[1:])
	case "delete-vdisk":
		return raidDeleteVDisk(ctx, c, args[1:])
	case "commit":
		return raidCommit(ctx, c, args[1:])
	case "abandon":
		return raidAbandon(ctx, c, args[1:])
	default:
		return fmt.Errorf("%w: raid %q", errUnknownCommand, args[0])
	}
}

func raidControllers(ctx context.Context, c *client.Client) error {
	controllers, err := c.ListRAIDControllers(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(controllers))
	for _, ctl := range controllers {
		rows = append(rows, []string{ctl.ID, ctl.Model, ctl.FirmwareVersion, ctl.Description})
	}

	renderTable([]string{"ID", "MODEL", "FIRMWARE", "DESCRIPTION"}, rows)

	return nil
}

func raidVirtualDisks(ctx context.Context, c *client.Client) error {
	disks, err := c.ListVirtualDisks(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(disks))
	for _, d := range disks {
		rows = append(rows, []string{
			d.ID, d.Name, d.RAIDLevel, mb(d.SizeMB), d.State, d.PendingOperation,
		})
	}

	renderTable([]string{"ID", "NAME", "LEVEL", "SIZE", "STATE", "PENDING"}, rows)

	return nil
}

func raidPhysicalDisks(ctx context.Context, c *client.Client) error {
	disks, err := c.ListPhysicalDisks(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(disks))
	for _, d := range disks {
		rows = append(rows, []string{
			d.ID, d.Model, d.MediaType, d.BusProtocol, mb(d.SizeMB), mb(d.FreeSizeMB), d.State,
		})
	}

	renderTable([]string{"ID", "MODEL", "MEDIA", "BUS", "SIZE", "FREE", "STATE"}, rows)

	return nil
}

func raidCreateVDisk(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("raid create-vdisk", flag.ContinueOnError)
	controller := fs.String("controller", "", "RAID controller FQDD")
	disksArg := fs.String("disks", "", "comma-separated physical disk FQDDs")
	level := fs.String("level", "", "RAID level (non-raid, 0, 1, 5, 6, 1+0, 5+0, 6+0)")
	sizeMB := fs.Int("size-mb", 0, "virtual disk size in megabytes")
	name := fs.String("name", "", "optional virtual disk name")
	spanDepth := fs.Int("span-depth", 0, "optional span depth")
	spanLength := fs.Int("span-length", 0, "optional span length")

	if err := fs.Parse(args); err != nil {
		return err
	}

	spec := raid.VirtualDiskSpec{
		Controller: *controller,
		RAIDLevel:  *level,
		SizeMB:     *sizeMB,
		Name:       *name,
		SpanDepth:  *spanDepth,
		SpanLength: *spanLength,
	}

	if *disksArg != "" {
		spec.PhysicalDisks = strings.Split(*disksArg, ",")
	}

	result, err := c.CreateVirtualDisk(ctx, spec)
	if err != nil {
		return err
	}

	printChangeResult(result)

	return nil
}

func raidDeleteVDisk(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: raid delete-vdisk <fqdd>", errMissingArgument)
	}

	result, err := c.DeleteVirtualDisk(ctx, args[0])
	if err != nil {
		return err
	}

	printChangeResult(result)

	return nil
}

func raidCommit(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("raid commit", flag.ContinueOnError)
	controller := fs.String("controller", "", "RAID controller FQDD")
	reboot := fs.Bool("reboot", false, "also create a reboot job so the change applies now")

	var wf waitFlags

	wf.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *controller == "" {
		return fmt.Errorf("%w: raid commit -controller <fqdd>", errMissingArgument)
	}

	jobID, err := c.CommitPendingRAIDChanges(ctx, *controller, *reboot)
	if err != nil {
		return err
	}

	return finishJob(ctx, c, jobID, &wf)
}

func raidAbandon(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("raid abandon", flag.ContinueOnError)
	controller := fs.String("controller", "", "RAID controller FQDD")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *controller == "" {
		return fmt.Errorf("%w: raid abandon -controller <fqdd>", errMissingArgument)
	}

	return c.AbandonPendingRAIDChanges(ctx, *controller)
}

func printChangeResult(result raid.ChangeResult) {
	renderKV([][2]string{
		{"commit required", yesNo(result.CommitRequired)},
		{"reboot required", string(result.Reboot)},
	})
}
