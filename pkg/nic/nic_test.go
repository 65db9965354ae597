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

package nic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/godrac/pkg/attributes"
	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/jobs"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/pending"
	"github.com/carverauto/godrac/pkg/wsman"
)

const testNIC = "NIC.Integrated.1-1-1"

const nicEnumerationDoc = `<Envelope><Body><EnumerateResponse><Items>
	<DCIM_NICEnumeration>
		<AttributeName>LegacyBootProto</AttributeName>
		<CurrentValue>PXE</CurrentValue>
		<FQDD>NIC.Integrated.1-1-1</FQDD>
		<GroupID>NICConfig.1</GroupID>
		<InstanceID>NIC.Integrated.1-1-1:NICConfig.1:LegacyBootProto</InstanceID>
		<IsReadOnly>false</IsReadOnly>
		<PossibleValues>PXE</PossibleValues>
		<PossibleValues>iSCSI</PossibleValues>
		<PossibleValues>NONE</PossibleValues>
	</DCIM_NICEnumeration>
	<DCIM_NICEnumeration>
		<AttributeName>LegacyBootProto</AttributeName>
		<CurrentValue>NONE</CurrentValue>
		<FQDD>NIC.Integrated.1-2-1</FQDD>
		<GroupID>NICConfig.1</GroupID>
		<InstanceID>NIC.Integrated.1-2-1:NICConfig.1:LegacyBootProto</InstanceID>
		<IsReadOnly>false</IsReadOnly>
		<PossibleValues>PXE</PossibleValues>
		<PossibleValues>iSCSI</PossibleValues>
		<PossibleValues>NONE</PossibleValues>
	</DCIM_NICEnumeration>
</Items><EndOfSequence/></EnumerateResponse></Body></Envelope>`

const nicStringDoc = `<Envelope><Body><EnumerateResponse><Items>
	<DCIM_NICString>
		<AttributeName>VirtMacAddr</AttributeName>
		<CurrentValue>00:1A:2B:3C:4D:5E</CurrentValue>
		<FQDD>NIC.Integrated.1-1-1</FQDD>
		<GroupID>NICConfig.1</GroupID>
		<InstanceID>NIC.Integrated.1-1-1:NICConfig.1:VirtMacAddr</InstanceID>
		<IsReadOnly>false</IsReadOnly>
		<MaxLength>17</MaxLength>
		<MinLength>0</MinLength>
	</DCIM_NICString>
</Items><EndOfSequence/></EnumerateResponse></Body></Envelope>`

const nicIntegerDoc = `<Envelope><Body><EnumerateResponse><Items>
	<DCIM_NICInteger>
		<AttributeName>BlnkLeds</AttributeName>
		<CurrentValue>0</CurrentValue>
		<FQDD>NIC.Integrated.1-1-1</FQDD>
		<GroupID>NICConfig.1</GroupID>
		<InstanceID>NIC.Integrated.1-1-1:NICConfig.1:BlnkLeds</InstanceID>
		<IsReadOnly>false</IsReadOnly>
		<LowerBound>0</LowerBound>
		<UpperBound>15</UpperBound>
	</DCIM_NICInteger>
</Items><EndOfSequence/></EnumerateResponse></Body></Envelope>`

const setAttributesDoc = `<Envelope><Body><SetAttributes_OUTPUT>
	<RebootRequired>Yes</RebootRequired>
	<ReturnValue>0</ReturnValue>
	<SetResult>Set PendingValue</SetResult>
</SetAttributes_OUTPUT></Body></Envelope>`

func responseFromXML(t *testing.T, doc string) *wsman.Response {
	t.Helper()

	resp, err := wsman.ParseResponse([]byte(doc))
	require.NoError(t, err)

	return resp
}

func nicServiceRef(t *testing.T) cim.ObjectRef {
	t.Helper()

	ref, err := cim.Resolve(cim.DCIMNICService, "DCIM_NICService", "DCIM:NICService")
	require.NoError(t, err)

	return ref
}

func newService(t *testing.T, invoker gateway.Invoker, tracker *pending.Tracker) *Service {
	t.Helper()

	log := logger.NewTestLogger()

	return New(invoker, tracker, jobs.New(invoker, tracker, nil, log), log)
}

func expectSettingsEnumerations(t *testing.T, invoker *gateway.MockInvoker) {
	t.Helper()

	invoker.EXPECT().
		Enumerate(gomock.Any(), cim.DCIMNICEnumeration).
		Return(responseFromXML(t, nicEnumerationDoc), nil)
	invoker.EXPECT().
		Enumerate(gomock.Any(), cim.DCIMNICString).
		Return(responseFromXML(t, nicStringDoc), nil)
	invoker.EXPECT().
		Enumerate(gomock.Any(), cim.DCIMNICInteger).
		Return(responseFromXML(t, nicIntegerDoc), nil)
}

func TestListSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoker := gateway.NewMockInvoker(ctrl)
	expectSettingsEnumerations(t, invoker)

	svc := newService(t, invoker, pending.NewTracker(logger.NewTestLogger()))

	settings, err := svc.ListSettings(context.Background(), testNIC)
	require.NoError(t, err)

	// The second port's attributes are filtered out.
	require.Len(t, settings, 3)

	proto := settings["NIC.Integrated.1-1-1:NICConfig.1:LegacyBootProto"]
	assert.Equal(t, "LegacyBootProto", proto.Name)
	assert.Equal(t, testNIC, proto.FQDD)
	assert.Equal(t, attributes.KindEnumeration, proto.Kind)
}

func TestListSettingsMissingNIC(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newService(t, gateway.NewMockInvoker(ctrl), pending.NewTracker(logger.NewTestLogger()))

	_, err := svc.ListSettings(context.Background(), "")

	require.ErrorIs(t, err, ErrMissingNIC)
}

func TestSetSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoker := gateway.NewMockInvoker(ctrl)
	expectSettingsEnumerations(t, invoker)

	wantProps := map[string][]string{
		"Target":         {testNIC},
		"AttributeName":  {"NICConfig.1#LegacyBootProto"},
		"AttributeValue": {"iSCSI"},
	}

	invoker.EXPECT().
		Invoke(gomock.Any(), nicServiceRef(t), "SetAttributes", wantProps).
		Return(&gateway.Result{
			Response:    responseFromXML(t, setAttributesDoc),
			ReturnValue: gateway.RetSuccess,
		}, nil)

	tracker := pending.NewTracker(logger.NewTestLogger())
	svc := newService(t, invoker, tracker)

	applied, err := svc.SetSettings(context.Background(), testNIC, map[string]string{
		"NICConfig.1#LegacyBootProto": "iSCSI",
	})
	require.NoError(t, err)

	assert.True(t, applied.CommitRequired)
	assert.True(t, applied.RebootRequired)
	assert.True(t, tracker.HasPending(testNIC))
}

func TestSetSettingsSkipsUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoker := gateway.NewMockInvoker(ctrl)
	expectSettingsEnumerations(t, invoker)

	tracker := pending.NewTracker(logger.NewTestLogger())
	svc := newService(t, invoker, tracker)

	// PXE is already current; no SetAttributes expectation exists and the
	// mock would reject the call.
	applied, err := svc.SetSettings(context.Background(), testNIC, map[string]string{
		"NICConfig.1#LegacyBootProto": "PXE",
	})
	require.NoError(t, err)

	assert.False(t, applied.CommitRequired)
	assert.False(t, tracker.HasPending(testNIC))
}

func TestCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wantProps := map[string][]string{
		"Target":             {testNIC},
		"RebootJobType":      {"3"},
		"ScheduledStartTime": {jobs.StartTimeNow},
	}

	invoker := gateway.NewMockInvoker(ctrl)
	invoker.EXPECT().
		Invoke(gomock.Any(), nicServiceRef(t), "CreateTargetedConfigJob", wantProps, gateway.RetCreated).
		Return(&gateway.Result{ReturnValue: gateway.RetCreated, JobID: "JID_815"}, nil)

	tracker := pending.NewTracker(logger.NewTestLogger())
	tracker.Stage(testNIC, "NICConfig.1#LegacyBootProto", "iSCSI")

	svc := newService(t, invoker, tracker)

	jobID, err := svc.Commit(context.Background(), testNIC, true)
	require.NoError(t, err)
	assert.Equal(t, "JID_815", jobID)

	assert.False(t, tracker.HasPending(testNIC))
}

func TestAbandon(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wantProps := map[string][]string{"Target": {testNIC}}

	invoker := gateway.NewMockInvoker(ctrl)
	invoker.EXPECT().
		Invoke(gomock.Any(), nicServiceRef(t), "DeletePendingConfiguration", wantProps, gateway.RetSuccess).
		Return(&gateway.Result{ReturnValue: gateway.RetSuccess}, nil)

	tracker := pending.NewTracker(logger.NewTestLogger())
	tracker.Stage(testNIC, "NICConfig.1#LegacyBootProto", "iSCSI")

	svc := newService(t, invoker, tracker)

	require.NoError(t, svc.Abandon(context.Background(), testNIC))
	assert.False(t, tracker.HasPending(testNIC))
}

func TestCommitMissingNIC(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newService(t, gateway.NewMockInvoker(ctrl), pending.NewTracker(logger.NewTestLogger()))

	_, err := svc.Commit(context.Background(), "", false)
	require.ErrorIs(t, err, ErrMissingNIC)

	require.ErrorIs(t, svc.Abandon(context.Background(), ""), ErrMissingNIC)
}
