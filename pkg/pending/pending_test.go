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

package pending

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/godrac/pkg/logger"
)

func newTracker() *Tracker {
	return NewTracker(logger.NewTestLogger())
}

func TestStageAndPending(t *testing.T) {
	tr := newTracker()

	assert.False(t, tr.HasPending("BIOS.Setup.1-1"))

	tr.Stage("BIOS.Setup.1-1", "NumLock", "On")
	tr.Stage("BIOS.Setup.1-1", "BootMode", "Uefi")

	require.True(t, tr.HasPending("BIOS.Setup.1-1"))

	changes := tr.Pending("BIOS.Setup.1-1")
	require.Len(t, changes, 2)
	assert.Equal(t, "BootMode", changes[0].Target)
	assert.Equal(t, "NumLock", changes[1].Target)
	assert.False(t, changes[0].StagedAt.IsZero())
}

func TestStageLastWriteWins(t *testing.T) {
	tr := newTracker()

	tr.Stage("BIOS.Setup.1-1", "NumLock", "On")
	tr.Stage("BIOS.Setup.1-1", "NumLock", "Off")

	changes := tr.Pending("BIOS.Setup.1-1")
	require.Len(t, changes, 1)
	assert.Equal(t, "Off", changes[0].Value)
}

func TestStageIsolatesResources(t *testing.T) {
	tr := newTracker()

	tr.Stage("RAID.Integrated.1-1", "Disk.Virtual.0", "delete")

	assert.True(t, tr.HasPending("RAID.Integrated.1-1"))
	assert.False(t, tr.HasPending("BIOS.Setup.1-1"))
	assert.Nil(t, tr.Pending("BIOS.Setup.1-1"))
}

func TestAbandonClearsPending(t *testing.T) {
	tr := newTracker()

	tr.Stage("BIOS.Setup.1-1", "NumLock", "On")
	require.NoError(t, tr.Abandon("BIOS.Setup.1-1"))

	assert.False(t, tr.HasPending("BIOS.Setup.1-1"))
}

func TestAbandonNothingStaged(t *testing.T) {
	tr := newTracker()

	assert.NoError(t, tr.Abandon("BIOS.Setup.1-1"))
}

func TestAbandonAfterCommit(t *testing.T) {
	tr := newTracker()

	tr.Stage("BIOS.Setup.1-1", "NumLock", "On")
	tr.MarkCommitted("BIOS.Setup.1-1", "JID_100")

	err := tr.Abandon("BIOS.Setup.1-1")
	require.ErrorIs(t, err, ErrAlreadyCommitted)
}

func TestMarkCommittedClearsPending(t *testing.T) {
	tr := newTracker()

	tr.Stage("BIOS.Setup.1-1", "NumLock", "On")
	tr.MarkCommitted("BIOS.Setup.1-1", "JID_100")

	assert.False(t, tr.HasPending("BIOS.Setup.1-1"))

	jobID, ok := tr.CommittedJob("BIOS.Setup.1-1")
	require.True(t, ok)
	assert.Equal(t, "JID_100", jobID)
}

func TestResetReopensResource(t *testing.T) {
	tr := newTracker()

	tr.Stage("BIOS.Setup.1-1", "NumLock", "On")
	tr.MarkCommitted("BIOS.Setup.1-1", "JID_100")
	tr.Reset("BIOS.Setup.1-1")

	_, ok := tr.CommittedJob("BIOS.Setup.1-1")
	assert.False(t, ok)

	tr.Stage("BIOS.Setup.1-1", "NumLock", "Off")
	require.NoError(t, tr.Abandon("BIOS.Setup.1-1"))
}

func TestResetJobFindsResource(t *testing.T) {
	tr := newTracker()

	tr.Stage("BIOS.Setup.1-1", "NumLock", "On")
	tr.MarkCommitted("BIOS.Setup.1-1", "JID_100")
	tr.ResetJob("JID_100")

	_, ok := tr.CommittedJob("BIOS.Setup.1-1")
	assert.False(t, ok)
}

func TestResetJobUnknownJob(t *testing.T) {
	tr := newTracker()

	tr.Stage("BIOS.Setup.1-1", "NumLock", "On")
	tr.MarkCommitted("BIOS.Setup.1-1", "JID_100")
	tr.ResetJob("JID_999")

	jobID, ok := tr.CommittedJob("BIOS.Setup.1-1")
	require.True(t, ok)
	assert.Equal(t, "JID_100", jobID)
}

func TestConcurrentStaging(t *testing.T) {
	tr := newTracker()

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()
			tr.Stage("BIOS.Setup.1-1", fmt.Sprintf("Attr%d", n), "value")
		}(i)
	}

	wg.Wait()

	assert.Len(t, tr.Pending("BIOS.Setup.1-1"), 10)
}
