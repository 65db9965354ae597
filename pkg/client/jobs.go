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
	"time"

	"github.com/carverauto/godrac/pkg/jobs"
)

// ListJobs reports the job queue, optionally narrowed to jobs that have not
// reached a terminal state.
func (c *Client) ListJobs(ctx context.Context, onlyUnfinished bool) ([]jobs.Job, error) {
	return c.jobs.List(ctx, onlyUnfinished)
}

// GetJob reports one job by id.
func (c *Client) GetJob(ctx context.Context, jobID string) (jobs.Job, error) {
	return c.jobs.Get(ctx, jobID)
}

// CreateConfigJob commits pending changes for an arbitrary service and
// target. The typed commit methods cover the common targets; this is the
// escape hatch for the rest.
func (c *Client) CreateConfigJob(ctx context.Context, spec jobs.ConfigJobSpec) (string, error) {
	if err := c.gate(ctx); err != nil {
		return "", err
	}

	jobID, err := c.jobs.CreateConfigJob(ctx, spec)
	if err != nil {
		return "", err
	}

	c.purgeAll()

	return jobID, nil
}

// DeletePendingConfig discards uncommitted changes for an arbitrary service
// and target on the controller.
func (c *Client) DeletePendingConfig(ctx context.Context, spec jobs.PendingConfigSpec) error {
	if err := c.gate(ctx); err != nil {
		return err
	}

	if err := c.jobs.DeletePendingConfig(ctx, spec); err != nil {
		return err
	}

	c.purgeAll()

	return nil
}

// CreateRebootJob queues a host reboot of the given kind. Like power
// control it skips the readiness gate: rebooting is how stuck jobs finish.
func (c *Client) CreateRebootJob(ctx context.Context, rebootType jobs.RebootType) (string, error) {
	jobID, err := c.jobs.CreateRebootJob(ctx, rebootType)
	if err != nil {
		return "", err
	}

	c.purgeAll()

	return jobID, nil
}

// ScheduleJobExecution sets the start time for queued jobs, TIME_NOW to run
// them immediately.
func (c *Client) ScheduleJobExecution(ctx context.Context, jobIDs []string, startTime string) error {
	if err := c.gate(ctx); err != nil {
		return err
	}

	return c.jobs.ScheduleJobExecution(ctx, jobIDs, startTime)
}

// DeleteJobs removes queued jobs, jobs.JobIDClearAll to empty the queue.
// Clearing the queue is the unwedging tool for a stuck controller, so this
// never waits for readiness.
func (c *Client) DeleteJobs(ctx context.Context, jobIDs ...string) error {
	if err := c.jobs.DeleteJobs(ctx, jobIDs...); err != nil {
		return err
	}

	c.purgeAll()

	return nil
}

// WaitForJob polls the job until it reaches a terminal state. Zero interval
// and timeout fall back to the job manager's defaults.
func (c *Client) WaitForJob(ctx context.Context, jobID string, interval, timeout time.Duration) (jobs.Job, error) {
	return c.jobs.WaitForTerminal(ctx, jobID, interval, timeout)
}
