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

package idrac

import (
	"context"
	"fmt"
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

const cardEnumerationDoc = `<Envelope><Body><EnumerateResponse><Items>
	<DCIM_iDRACCardEnumeration>
		<AttributeName>Enable</AttributeName>
		<CurrentValue>Disabled</CurrentValue>
		<FQDD>iDRAC.Embedded.1</FQDD>
		<GroupID>Users.2</GroupID>
		<InstanceID>iDRAC.Embedded.1#Users.2#Enable</InstanceID>
		<IsReadOnly>false</IsReadOnly>
		<PossibleValues>Disabled</PossibleValues>
		<PossibleValues>Enabled</PossibleValues>
	</DCIM_iDRACCardEnumeration>
</Items><EndOfSequence/></EnumerateResponse></Body></Envelope>`

const cardStringDoc = `<Envelope><Body><EnumerateResponse><Items>
	<DCIM_iDRACCardString>
		<AttributeName>UserName</AttributeName>
		<CurrentValue>root</CurrentValue>
		<FQDD>iDRAC.Embedded.1</FQDD>
		<GroupID>Users.2</GroupID>
		<InstanceID>iDRAC.Embedded.1#Users.2#UserName</InstanceID>
		<IsReadOnly>false</IsReadOnly>
		<MaxLength>16</MaxLength>
		<MinLength>0</MinLength>
	</DCIM_iDRACCardString>
</Items><EndOfSequence/></EnumerateResponse></Body></Envelope>`

const cardIntegerDoc = `<Envelope><Body><EnumerateResponse><Items>
	<DCIM_iDRACCardInteger>
		<AttributeName>SessionTimeout</AttributeName>
		<CurrentValue>1800</CurrentValue>
		<FQDD>iDRAC.Embedded.1</FQDD>
		<GroupID>WebServer.1</GroupID>
		<InstanceID>iDRAC.Embedded.1#WebServer.1#SessionTimeout</InstanceID>
		<IsReadOnly>false</IsReadOnly>
		<LowerBound>60</LowerBound>
		<UpperBound>10800</UpperBound>
	</DCIM_iDRACCardInteger>
</Items><EndOfSequence/></EnumerateResponse></Body></Envelope>`

const setAttributesDoc = `<Envelope><Body><SetAttributes_OUTPUT>
	<RebootRequired>No</RebootRequired>
	<ReturnValue>0</ReturnValue>
	<SetResult>Set PendingValue</SetResult>
</SetAttributes_OUTPUT></Body></Envelope>`

const resetDocTemplate = `<Envelope><Body><iDRACReset_OUTPUT>
	<Message>iDRAC reset operation initiated successfully</Message>
	<MessageID>%s</MessageID>
	<ReturnValue>0</ReturnValue>
</iDRACReset_OUTPUT></Body></Envelope>`

func responseFromXML(t *testing.T, doc string) *wsman.Response {
	t.Helper()

	resp, err := wsman.ParseResponse([]byte(doc))
	require.NoError(t, err)

	return resp
}

func cardServiceRef(t *testing.T) cim.ObjectRef {
	t.Helper()

	ref, err := cim.Resolve(cim.DCIMiDRACCardService, "DCIM_iDRACCardService", "DCIM:iDRACCardService")
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
		Enumerate(gomock.Any(), cim.DCIMiDRACCardEnumeration).
		Return(responseFromXML(t, cardEnumerationDoc), nil)
	invoker.EXPECT().
		Enumerate(gomock.Any(), cim.DCIMiDRACCardString).
		Return(responseFromXML(t, cardStringDoc), nil)
	invoker.EXPECT().
		Enumerate(gomock.Any(), cim.DCIMiDRACCardInteger).
		Return(responseFromXML(t, cardIntegerDoc), nil)
}

func TestListSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoker := gateway.NewMockInvoker(ctrl)
	expectSettingsEnumerations(t, invoker)

	svc := newService(t, invoker, pending.NewTracker(logger.NewTestLogger()))

	settings, err := svc.ListSettings(context.Background())
	require.NoError(t, err)
	require.Len(t, settings, 3)

	user := settings["iDRAC.Embedded.1#Users.2#UserName"]
	assert.Equal(t, "UserName", user.Name)
	assert.Equal(t, "Users.2", user.GroupID)
	assert.Equal(t, "iDRAC.Embedded.1", user.FQDD)
	assert.Equal(t, attributes.KindString, user.Kind)

	timeout := settings["iDRAC.Embedded.1#WebServer.1#SessionTimeout"]
	assert.Equal(t, attributes.KindInteger, timeout.Kind)
	assert.Equal(t, 10800, timeout.UpperBound)
}

func TestSetSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoker := gateway.NewMockInvoker(ctrl)
	expectSettingsEnumerations(t, invoker)

	wantProps := map[string][]string{
		"Target":         {DefaultFQDD},
		"AttributeName":  {"Users.2#Enable"},
		"AttributeValue": {"Enabled"},
	}

	invoker.EXPECT().
		Invoke(gomock.Any(), cardServiceRef(t), "SetAttributes", wantProps).
		Return(&gateway.Result{
			Response:    responseFromXML(t, setAttributesDoc),
			ReturnValue: gateway.RetSuccess,
		}, nil)

	tracker := pending.NewTracker(logger.NewTestLogger())
	svc := newService(t, invoker, tracker)

	applied, err := svc.SetSettings(context.Background(), "", map[string]string{
		"Users.2#Enable": "Enabled",
	})
	require.NoError(t, err)

	assert.True(t, applied.CommitRequired)
	assert.False(t, applied.RebootRequired)
	assert.True(t, tracker.HasPending(DefaultFQDD))
}

func TestSetSettingsUnknownAttribute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoker := gateway.NewMockInvoker(ctrl)
	expectSettingsEnumerations(t, invoker)

	svc := newService(t, invoker, pending.NewTracker(logger.NewTestLogger()))

	// The plain name is ambiguous across groups and is not a valid key.
	_, err := svc.SetSettings(context.Background(), "", map[string]string{"Enable": "Enabled"})

	require.ErrorIs(t, err, attributes.ErrUnknownAttribute)
}

func TestSetSettingsOtherCardFiltered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoker := gateway.NewMockInvoker(ctrl)
	expectSettingsEnumerations(t, invoker)

	svc := newService(t, invoker, pending.NewTracker(logger.NewTestLogger()))

	// Every published attribute belongs to iDRAC.Embedded.1, so against a
	// different card the name does not resolve.
	_, err := svc.SetSettings(context.Background(), "iDRAC.Embedded.2", map[string]string{
		"Users.2#Enable": "Enabled",
	})

	require.ErrorIs(t, err, attributes.ErrUnknownAttribute)
}

func TestCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wantProps := map[string][]string{
		"Target":             {DefaultFQDD},
		"ScheduledStartTime": {jobs.StartTimeNow},
	}

	invoker := gateway.NewMockInvoker(ctrl)
	invoker.EXPECT().
		Invoke(gomock.Any(), cardServiceRef(t), "CreateTargetedConfigJob", wantProps, gateway.RetCreated).
		Return(&gateway.Result{ReturnValue: gateway.RetCreated, JobID: "JID_442"}, nil)

	tracker := pending.NewTracker(logger.NewTestLogger())
	tracker.Stage(DefaultFQDD, "Users.2#Enable", "Enabled")

	svc := newService(t, invoker, tracker)

	jobID, err := svc.Commit(context.Background(), "", false)
	require.NoError(t, err)
	assert.Equal(t, "JID_442", jobID)

	assert.False(t, tracker.HasPending(DefaultFQDD))
}

func TestAbandon(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wantProps := map[string][]string{"Target": {DefaultFQDD}}

	invoker := gateway.NewMockInvoker(ctrl)
	invoker.EXPECT().
		Invoke(gomock.Any(), cardServiceRef(t), "DeletePendingConfiguration", wantProps, gateway.RetSuccess).
		Return(&gateway.Result{ReturnValue: gateway.RetSuccess}, nil)

	tracker := pending.NewTracker(logger.NewTestLogger())
	tracker.Stage(DefaultFQDD, "Users.2#Enable", "Enabled")

	svc := newService(t, invoker, tracker)

	require.NoError(t, svc.Abandon(context.Background(), ""))
	assert.False(t, tracker.HasPending(DefaultFQDD))
}

func TestReset(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		wantForce string
		messageID string
		wantErr   error
	}{
		{name: "graceful", wantForce: "0", messageID: "RAC064"},
		{name: "forced", force: true, wantForce: "1", messageID: "RAC064"},
		{name: "rejected", wantForce: "0", messageID: "RAC065", wantErr: ErrResetRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			doc := fmt.Sprintf(resetDocTemplate, tt.messageID)
			wantProps := map[string][]string{"Force": {tt.wantForce}}

			invoker := gateway.NewMockInvoker(ctrl)
			invoker.EXPECT().
				Invoke(gomock.Any(), cardServiceRef(t), "iDRACReset", wantProps).
				Return(&gateway.Result{
					Response:    responseFromXML(t, doc),
					ReturnValue: gateway.RetSuccess,
				}, nil)

			svc := newService(t, invoker, pending.NewTracker(logger.NewTestLogger()))

			err := svc.Reset(context.Background(), tt.force)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}
