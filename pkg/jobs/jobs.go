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

// Package jobs manages the remote controller's job queue: creating config
// and reboot jobs, scheduling and deleting queue entries, and polling jobs
// to a terminal state.
package jobs

import (
	"strconv"

	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/wsman"
)

// Status is the JobStatus reported by DCIM_LifecycleJob. Values outside the
// named set are preserved as-is and treated as non-terminal.
type Status string

const (
	StatusScheduled           Status = "Scheduled"
	StatusRunning             Status = "Running"
	StatusCompleted           Status = "Completed"
	StatusFailed              Status = "Failed"
	StatusCompletedWithErrors Status = "Completed with Errors"
	StatusRebootPending       Status = "Reboot Pending"
	StatusRebootCompleted     Status = "Reboot Completed"
	StatusRebootFailed        Status = "Reboot Failed"
	StatusUnknown             Status = "Unknown"
)

// Terminal reports whether the job has finished. A pending reboot keeps the
// job alive, as does any status the controller reports that is not in the
// terminal set.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCompletedWithErrors,
		StatusRebootCompleted, StatusRebootFailed:
		return true
	default:
		return false
	}
}

// Succeeded reports whether a terminal status indicates full success.
func (s Status) Succeeded() bool {
	return s == StatusCompleted || s == StatusRebootCompleted
}

// Job is one DCIM_LifecycleJob snapshot. The authoritative state lives on
// the controller; snapshots go stale the moment they are taken.
type Job struct {
	ID              string
	Name            string
	Status          Status
	PercentComplete int
	Message         string
	// StartTime and UntilTime are reported as yyyymmddhhmmss timestamps or
	// the TIME_NOW / TIME_NA markers, preserved verbatim.
	StartTime string
	UntilTime string
}

// RebootType selects the reboot flavor of a reboot job.
type RebootType string

const (
	// RebootPowerCycle removes and restores power without an OS shutdown.
	RebootPowerCycle RebootType = "power_cycle"
	// RebootGraceful asks the OS to shut down first and waits for it.
	RebootGraceful RebootType = "graceful"
	// RebootForced asks the OS to shut down and powers off regardless.
	RebootForced RebootType = "forced"
)

var rebootJobTypes = map[RebootType]string{
	RebootPowerCycle: "1",
	RebootGraceful:   "2",
	RebootForced:     "3",
}

// StartTimeNow schedules a job for immediate execution.
const StartTimeNow = "TIME_NOW"

// JobIDClearAll addresses every entry in the job queue at once.
const JobIDClearAll = "JID_CLEARALL"

// ConfigJobSpec describes a config-job invocation: the service class
// carrying the staged configuration and the FQDD it applies to.
type ConfigJobSpec struct {
	Service cim.ObjectRef
	Target  string
	// Method overrides the invoked method. Empty means
	// CreateTargetedConfigJob; the Lifecycle Controller service only
	// accepts the untargeted CreateConfigJob variant.
	Method string
	// Reboot also creates a reboot job so the config applies immediately.
	// Ignored in RealTime mode.
	Reboot bool
	// RealTime applies the change without a reboot where the controller
	// supports it.
	RealTime bool
	// Schedule is the ScheduledStartTime property: a yyyymmddhhmmss
	// timestamp or StartTimeNow. Empty registers the job without
	// scheduling it; run it later with ScheduleJobExecution.
	Schedule string
}

// PendingConfigSpec addresses staged configuration to discard remotely.
type PendingConfigSpec struct {
	Service cim.ObjectRef
	Target  string
}

func parseJob(n *wsman.Node) Job {
	percent, _ := strconv.Atoi(n.Text("PercentComplete"))

	return Job{
		ID:              n.Text("InstanceID"),
		Name:            n.Text("Name"),
		Status:          Status(n.Text("JobStatus")),
		PercentComplete: percent,
		Message:         n.Text("Message"),
		StartTime:       n.Text("JobStartTime"),
		UntilTime:       n.Text("JobUntilTime"),
	}
}
