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

package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/metrics"
	"github.com/carverauto/godrac/pkg/pending"
	"github.com/carverauto/godrac/pkg/wsman"
)

const (
	defaultPollInterval = 10 * time.Second
	defaultPollTimeout  = 10 * time.Minute
)

const unfinishedJobsQuery = `select * from DCIM_LifecycleJob ` +
	`where Name != "CLEARALL" and ` +
	`JobStatus != "Reboot Completed" and ` +
	`JobStatus != "Reboot Failed" and ` +
	`JobStatus != "Completed" and ` +
	`JobStatus != "Completed with Errors" and ` +
	`JobStatus != "Failed"`

// Manager drives the remote job queue. It holds no mutable state of its own
// and is safe for concurrent use; pending-change bookkeeping is delegated to
// the tracker.
type Manager struct {
	invoker gateway.Invoker
	tracker *pending.Tracker
	clock   Clock
	logger  logger.Logger
}

// New creates a job Manager. A nil clock selects the real time package; a
// nil tracker disables pending-change bookkeeping.
func New(invoker gateway.Invoker, tracker *pending.Tracker, clock Clock, log logger.Logger) *Manager {
	if clock == nil {
		clock = realClock{}
	}

	return &Manager{
		invoker: invoker,
		tracker: tracker,
		clock:   clock,
		logger:  log,
	}
}

// CreateConfigJob invokes CreateTargetedConfigJob on the service named by
// the spec, turning the target's staged configuration into a queued job.
// On success the tracker entry for the target moves to the committed state.
// Permanent faults are never retried; a duplicate config job is worse than
// a failed call.
func (m *Manager) CreateConfigJob(ctx context.Context, spec ConfigJobSpec) (string, error) {
	props := map[string][]string{"Target": {spec.Target}}

	if spec.RealTime {
		props["RealTime"] = []string{"1"}
	}

	if !spec.RealTime && spec.Reboot {
		props["RebootJobType"] = []string{"3"}
	}

	if spec.Schedule != "" {
		props["ScheduledStartTime"] = []string{spec.Schedule}
	}

	method := spec.Method
	if method == "" {
		method = "CreateTargetedConfigJob"
	}

	result, err := m.invoker.Invoke(ctx, spec.Service, method, props, gateway.RetCreated)
	if err != nil {
		return "", fmt.Errorf("create config job for %s: %w", spec.Target, err)
	}

	if result.JobID == "" {
		return "", fmt.Errorf("create config job for %s: %w", spec.Target, ErrNoJobID)
	}

	if m.tracker != nil {
		m.tracker.MarkCommitted(spec.Target, result.JobID)
	}

	metrics.RecordJobCreated("config")
	m.logger.Info().
		Str("job_id", result.JobID).
		Str("target", spec.Target).
		Bool("reboot", spec.Reboot).
		Msg("Config job created")

	return result.JobID, nil
}

// CreateRebootJob queues a reboot of the given flavor through the job
// service.
func (m *Manager) CreateRebootJob(ctx context.Context, rebootType RebootType) (string, error) {
	jobType, ok := rebootJobTypes[rebootType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRebootType, rebootType)
	}

	props := map[string][]string{"RebootJobType": {jobType}}

	result, err := m.invoker.Invoke(ctx, cim.JobServiceRef(), "CreateRebootJob", props, gateway.RetCreated)
	if err != nil {
		return "", fmt.Errorf("create reboot job: %w", err)
	}

	if result.JobID == "" {
		return "", fmt.Errorf("create reboot job: %w", ErrNoJobID)
	}

	metrics.RecordJobCreated("reboot")
	m.logger.Info().
		Str("job_id", result.JobID).
		Str("reboot_type", string(rebootType)).
		Msg("Reboot job created")

	return result.JobID, nil
}

// ScheduleJobExecution queues the given jobs for execution in order.
// startTime is a yyyymmddhhmmss timestamp; empty means StartTimeNow.
// Scheduling nothing is a no-op.
func (m *Manager) ScheduleJobExecution(ctx context.Context, jobIDs []string, startTime string) error {
	if len(jobIDs) == 0 {
		return nil
	}

	if startTime == "" {
		startTime = StartTimeNow
	}

	props := map[string][]string{
		"JobArray":          jobIDs,
		"StartTimeInterval": {startTime},
	}

	if _, err := m.invoker.Invoke(ctx, cim.JobServiceRef(), "SetupJobQueue", props, gateway.RetSuccess); err != nil {
		return fmt.Errorf("schedule job execution: %w", err)
	}

	return nil
}

// DeleteJobs removes the given jobs from the queue, or every entry when no
// ids are given. Failures are collected so one bad id does not keep the
// rest from being deleted.
func (m *Manager) DeleteJobs(ctx context.Context, jobIDs ...string) error {
	if len(jobIDs) == 0 {
		jobIDs = []string{JobIDClearAll}
	}

	var errs []error

	for _, id := range jobIDs {
		props := map[string][]string{"JobID": {id}}

		if _, err := m.invoker.Invoke(ctx, cim.JobServiceRef(), "DeleteJobQueue", props, gateway.RetSuccess); err != nil {
			errs = append(errs, fmt.Errorf("delete job %s: %w", id, err))
		}
	}

	return errors.Join(errs...)
}

// DeletePendingConfig discards configuration staged on the controller for
// the spec's target. Staged changes can no longer be discarded once a
// config job owns them.
func (m *Manager) DeletePendingConfig(ctx context.Context, spec PendingConfigSpec) error {
	props := map[string][]string{"Target": {spec.Target}}

	if _, err := m.invoker.Invoke(ctx, spec.Service, "DeletePendingConfiguration", props, gateway.RetSuccess); err != nil {
		return fmt.Errorf("delete pending configuration for %s: %w", spec.Target, err)
	}

	return nil
}

// Get returns the job with the given id, or ErrNotFound. The id is
// interpolated into a CQL filter, so ids carrying quote characters are
// rejected up front rather than sent as a mangled query.
func (m *Manager) Get(ctx context.Context, jobID string) (Job, error) {
	if strings.ContainsAny(jobID, `"'`) {
		return Job{}, fmt.Errorf("job %q: %w", jobID, ErrInvalidJobID)
	}

	query := fmt.Sprintf(`select * from DCIM_LifecycleJob where InstanceID="%s"`, jobID)

	resp, err := m.invoker.Enumerate(ctx, cim.DCIMLifecycleJob, wsman.WithFilter("cql", query))
	if err != nil {
		return Job{}, fmt.Errorf("get job %s: %w", jobID, err)
	}

	rows := resp.All("DCIM_LifecycleJob")
	if len(rows) == 0 {
		return Job{}, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}

	return parseJob(rows[0]), nil
}

// List returns a snapshot of the job queue. With onlyUnfinished, terminal
// jobs and the CLEARALL sentinel are filtered out controller-side.
func (m *Manager) List(ctx context.Context, onlyUnfinished bool) ([]Job, error) {
	var opts []wsman.EnumOption
	if onlyUnfinished {
		opts = append(opts, wsman.WithFilter("cql", unfinishedJobsQuery))
	}

	resp, err := m.invoker.Enumerate(ctx, cim.DCIMLifecycleJob, opts...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	rows := resp.All("DCIM_LifecycleJob")
	result := make([]Job, 0, len(rows))

	for _, row := range rows {
		result = append(result, parseJob(row))
	}

	return result, nil
}

// WaitForTerminal polls the job until it reaches a terminal status, the
// context is cancelled, or the timeout elapses. On timeout the last
// snapshot is returned alongside ErrTimeout; the job may still finish
// remotely. Zero interval and timeout select the 10s/10m defaults.
func (m *Manager) WaitForTerminal(ctx context.Context, jobID string, interval, timeout time.Duration) (Job, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	if timeout <= 0 {
		timeout = defaultPollTimeout
	}

	deadline := m.clock.Now().Add(timeout)
	ticker := m.clock.Ticker(interval)

	defer ticker.Stop()

	for {
		metrics.RecordJobPoll()

		job, err := m.Get(ctx, jobID)
		if err != nil {
			return Job{}, err
		}

		if job.Status.Terminal() {
			if m.tracker != nil {
				m.tracker.ResetJob(job.ID)
			}

			m.logger.Info().
				Str("job_id", job.ID).
				Str("status", string(job.Status)).
				Str("message", job.Message).
				Msg("Job reached terminal state")

			return job, nil
		}

		if !m.clock.Now().Before(deadline) {
			return job, fmt.Errorf("job %s still %q: %w", jobID, job.Status, ErrTimeout)
		}

		m.logger.Debug().
			Str("job_id", jobID).
			Str("status", string(job.Status)).
			Int("percent_complete", job.PercentComplete).
			Msg("Job not finished, waiting")

		select {
		case <-ctx.Done():
			return job, ctx.Err()
		case <-ticker.Chan():
		}
	}
}
