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
	"github.com/carverauto/godrac/pkg/jobs"
)

func runJobs(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("jobs list", flag.ContinueOnError)
		unfinished := fs.Bool("unfinished", false, "only jobs that have not reached a terminal state")

		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		queue, err := c.ListJobs(ctx, *unfinished)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(queue))
		for _, job := range queue {
			rows = append(rows, []string{
				job.ID, job.Name, string(job.Status), itoa(job.PercentComplete) + "%", job.Message,
			})
		}

		renderTable([]string{"ID", "NAME", "STATUS", "PROGRESS", "MESSAGE"}, rows)

		return nil
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("%w: jobs get <job-id>", errMissingArgument)
		}

		job, err := c.GetJob(ctx, args[1])
		if err != nil {
			return err
		}

		printJob(job)

		return nil
	case "wait":
		fs := flag.NewFlagSet("jobs wait", flag.ContinueOnError)

		var wf waitFlags

		wf.register(fs)

		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		if fs.NArg() == 0 {
			return fmt.Errorf("%w: jobs wait <job-id>", errMissingArgument)
		}

		job, err := c.WaitForJob(ctx, fs.Arg(0), wf.PollInterval, wf.Timeout)
		if err != nil {
			return err
		}

		printJob(job)

		if !job.Status.Succeeded() {
			return fmt.Errorf("%w: %s: %s", errJobFailed, job.Status, job.Message)
		}

		return nil
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("%w: jobs delete <job-id> [job-id...]", errMissingArgument)
		}

		return c.DeleteJobs(ctx, args[1:]...)
	case "reboot":
		fs := flag.NewFlagSet("jobs reboot", flag.ContinueOnError)
		graceful := fs.Bool("graceful", false, "shut the OS down first instead of power cycling")

		var wf waitFlags

		wf.register(fs)

		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		rebootType := jobs.RebootPowerCycle
		if *graceful {
			rebootType = jobs.RebootGraceful
		}

		jobID, err := c.CreateRebootJob(ctx, rebootType)
		if err != nil {
			return err
		}

		return finishJob(ctx, c, jobID, &wf)
	default:
		return fmt.Errorf("%w: jobs %q", errUnknownCommand, args[0])
	}
}

func printJob(job jobs.Job) {
	renderKV([][2]string{
		{"id", job.ID},
		{"name", job.Name},
		{"status", string(job.Status)},
		{"progress", itoa(job.PercentComplete) + "%"},
		{"message", job.Message},
		{"start time", job.StartTime},
	})
}
