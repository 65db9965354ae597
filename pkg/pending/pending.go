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

// Package pending tracks staged configuration changes per resource between
// the setter call and the config job that applies them. The tracker is local
// bookkeeping only: the authoritative staged state lives on the controller.
package pending

import (
	"sort"
	"sync"
	"time"

	"github.com/carverauto/godrac/pkg/logger"
)

// Change is one staged attribute or disk operation awaiting a config job.
type Change struct {
	ResourceID string
	Target     string
	Value      string
	StagedAt   time.Time
}

type entry struct {
	changes      map[string]Change
	committedJob string
}

// Tracker records staged changes and the config job that committed them.
// At most one open change set exists per resource id; staging the same
// target again before commit overwrites (last write wins).
type Tracker struct {
	mu      sync.RWMutex
	entries map[string]*entry
	logger  logger.Logger
}

// NewTracker returns an empty Tracker.
func NewTracker(log logger.Logger) *Tracker {
	return &Tracker{
		entries: make(map[string]*entry),
		logger:  log,
	}
}

// Stage records a change for resourceID, replacing any staged change for the
// same target.
func (t *Tracker) Stage(resourceID, target, value string) Change {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[resourceID]
	if e == nil {
		e = &entry{changes: make(map[string]Change)}
		t.entries[resourceID] = e
	}

	change := Change{
		ResourceID: resourceID,
		Target:     target,
		Value:      value,
		StagedAt:   time.Now(),
	}
	e.changes[target] = change

	t.logger.Debug().
		Str("resource_id", resourceID).
		Str("target", target).
		Msg("Staged pending change")

	return change
}

// HasPending reports whether resourceID has staged changes awaiting commit.
func (t *Tracker) HasPending(resourceID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.entries[resourceID]

	return e != nil && len(e.changes) > 0
}

// Pending returns the staged changes for resourceID ordered by target.
func (t *Tracker) Pending(resourceID string) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.entries[resourceID]
	if e == nil {
		return nil
	}

	changes := make([]Change, 0, len(e.changes))
	for _, c := range e.changes {
		changes = append(changes, c)
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Target < changes[j].Target })

	return changes
}

// Abandon discards the staged changes for resourceID. Once a config job has
// been created for the resource the changes are owned by that job and
// Abandon fails with ErrAlreadyCommitted until Reset is called. Abandoning a
// resource with nothing staged is a no-op.
func (t *Tracker) Abandon(resourceID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[resourceID]
	if e == nil {
		return nil
	}

	if e.committedJob != "" {
		return ErrAlreadyCommitted
	}

	delete(t.entries, resourceID)

	t.logger.Debug().Str("resource_id", resourceID).Msg("Abandoned pending changes")

	return nil
}

// MarkCommitted clears the staged changes for resourceID and records the job
// that now owns them.
func (t *Tracker) MarkCommitted(resourceID, jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[resourceID]
	if e == nil {
		e = &entry{changes: make(map[string]Change)}
		t.entries[resourceID] = e
	}

	e.changes = make(map[string]Change)
	e.committedJob = jobID

	t.logger.Debug().
		Str("resource_id", resourceID).
		Str("job_id", jobID).
		Msg("Pending changes committed to job")
}

// CommittedJob returns the job id recorded by MarkCommitted, if any.
func (t *Tracker) CommittedJob(resourceID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.entries[resourceID]
	if e == nil || e.committedJob == "" {
		return "", false
	}

	return e.committedJob, true
}

// Reset forgets the committed-job association for resourceID, reopening the
// resource for staging. Called once the job reaches a terminal state.
func (t *Tracker) Reset(resourceID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[resourceID]
	if e == nil {
		return
	}

	e.committedJob = ""
	if len(e.changes) == 0 {
		delete(t.entries, resourceID)
	}
}

// ResetJob reopens whichever resource committed its changes to jobID.
func (t *Tracker) ResetJob(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, e := range t.entries {
		if e.committedJob != jobID {
			continue
		}

		e.committedJob = ""
		if len(e.changes) == 0 {
			delete(t.entries, id)
		}
	}
}
