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

package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/wsman"
)

const (
	invokeOKDoc = `<Envelope><Body><SetAttributes_OUTPUT>
		<ReturnValue>0</ReturnValue>
		<RebootRequired>Yes</RebootRequired>
	</SetAttributes_OUTPUT></Body></Envelope>`

	invokeCreatedDoc = `<Envelope><Body><CreateTargetedConfigJob_OUTPUT>
		<ReturnValue>4096</ReturnValue>
		<Job><EndpointReference><ReferenceParameters><SelectorSet>
			<Selector Name="InstanceID">JID_100</Selector>
		</SelectorSet></ReferenceParameters></EndpointReference></Job>
	</CreateTargetedConfigJob_OUTPUT></Body></Envelope>`

	invokeFailedDoc = `<Envelope><Body><SetAttributes_OUTPUT>
		<ReturnValue>2</ReturnValue>
		<Message>Invalid parameter value for Target</Message>
	</SetAttributes_OUTPUT></Body></Envelope>`

	enumerateDoc = `<Envelope><Body><EnumerateResponse><Items>
		<DCIM_SystemView><InstanceID>System.Embedded.1</InstanceID></DCIM_SystemView>
	</Items><EndOfSequence/></EnumerateResponse></Body></Envelope>`
)

func responseFromXML(t *testing.T, doc string) *wsman.Response {
	t.Helper()

	resp, err := wsman.ParseResponse([]byte(doc))
	require.NoError(t, err)

	return resp
}

func fastGateway(transport wsman.Transport, opts ...Option) *Gateway {
	opts = append([]Option{WithRetryIntervals(time.Millisecond, 5*time.Millisecond)}, opts...)

	return New(transport, logger.NewTestLogger(), opts...)
}

func biosServiceRef(t *testing.T) cim.ObjectRef {
	t.Helper()

	ref, err := cim.Resolve(cim.DCIMBIOSService, "DCIM_BIOSService", "DCIM:BIOSService")
	require.NoError(t, err)

	return ref
}

func TestInvokeSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := wsman.NewMockTransport(ctrl)
	ref := biosServiceRef(t)
	params := map[string][]string{"Target": {"BIOS.Setup.1-1"}}

	transport.EXPECT().
		Invoke(gomock.Any(), cim.DCIMBIOSService, "SetAttributes", ref.Selectors(), params).
		Return(responseFromXML(t, invokeOKDoc), nil)

	result, err := fastGateway(transport).Invoke(context.Background(), ref, "SetAttributes", params, RetSuccess)
	require.NoError(t, err)

	assert.Equal(t, RetSuccess, result.ReturnValue)
	assert.Empty(t, result.JobID)
	assert.Equal(t, "Yes", result.Response.Text("RebootRequired"))
}

func TestInvokeCreatedJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := wsman.NewMockTransport(ctrl)
	ref := biosServiceRef(t)

	transport.EXPECT().
		Invoke(gomock.Any(), gomock.Any(), "CreateTargetedConfigJob", gomock.Any(), gomock.Any()).
		Return(responseFromXML(t, invokeCreatedDoc), nil)

	result, err := fastGateway(transport).Invoke(context.Background(), ref,
		"CreateTargetedConfigJob", nil, RetCreated)
	require.NoError(t, err)

	assert.Equal(t, RetCreated, result.ReturnValue)
	assert.Equal(t, "JID_100", result.JobID)
}

func TestInvokeReturnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := wsman.NewMockTransport(ctrl)
	ref := biosServiceRef(t)

	transport.EXPECT().
		Invoke(gomock.Any(), gomock.Any(), "SetAttributes", gomock.Any(), gomock.Any()).
		Return(responseFromXML(t, invokeFailedDoc), nil).
		Times(1)

	_, err := fastGateway(transport).Invoke(context.Background(), ref, "SetAttributes", nil)
	require.Error(t, err)

	var fault *FaultError

	require.True(t, errors.As(err, &fault))
	assert.Equal(t, RetError, fault.Code)
	assert.Equal(t, "Invalid parameter value for Target", fault.Message)
}

func TestInvokeUnexpectedReturnValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := wsman.NewMockTransport(ctrl)
	ref := biosServiceRef(t)

	transport.EXPECT().
		Invoke(gomock.Any(), gomock.Any(), "CreateTargetedConfigJob", gomock.Any(), gomock.Any()).
		Return(responseFromXML(t, invokeOKDoc), nil).
		Times(1)

	_, err := fastGateway(transport).Invoke(context.Background(), ref,
		"CreateTargetedConfigJob", nil, RetCreated)
	require.Error(t, err)

	var fault *FaultError

	require.True(t, errors.As(err, &fault))
	assert.Equal(t, RetSuccess, fault.Code)
}

func TestInvokeRetriesTransientFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := wsman.NewMockTransport(ctrl)
	ref := biosServiceRef(t)
	busy := &wsman.FaultError{
		Code:    "s:Receiver",
		Subcode: "wsman:InternalError",
		Message: "The service is busy servicing other requests.",
	}

	gomock.InOrder(
		transport.EXPECT().
			Invoke(gomock.Any(), gomock.Any(), "SetAttributes", gomock.Any(), gomock.Any()).
			Return(nil, busy).
			Times(2),
		transport.EXPECT().
			Invoke(gomock.Any(), gomock.Any(), "SetAttributes", gomock.Any(), gomock.Any()).
			Return(responseFromXML(t, invokeOKDoc), nil),
	)

	result, err := fastGateway(transport).Invoke(context.Background(), ref, "SetAttributes", nil, RetSuccess)
	require.NoError(t, err)
	assert.Equal(t, RetSuccess, result.ReturnValue)
}

func TestInvokeTransientExhaustion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := wsman.NewMockTransport(ctrl)
	ref := biosServiceRef(t)
	busy := &wsman.FaultError{Code: "s:Receiver", Message: "The service is busy servicing other requests."}

	transport.EXPECT().
		Invoke(gomock.Any(), gomock.Any(), "SetAttributes", gomock.Any(), gomock.Any()).
		Return(nil, busy).
		Times(3)

	_, err := fastGateway(transport, WithMaxTries(3)).Invoke(context.Background(), ref, "SetAttributes", nil)
	require.Error(t, err)

	var transient *TransientError

	require.True(t, errors.As(err, &transient))
	assert.Equal(t, 3, transient.Attempts)

	var wsFault *wsman.FaultError

	assert.True(t, errors.As(err, &wsFault))
}

func TestInvokePermanentFaultNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := wsman.NewMockTransport(ctrl)
	ref := biosServiceRef(t)
	rejected := &wsman.FaultError{
		Code:    "s:Sender",
		Subcode: "wsman:SchemaValidationError",
		Message: "The input for the method is not valid.",
	}

	transport.EXPECT().
		Invoke(gomock.Any(), gomock.Any(), "SetAttributes", gomock.Any(), gomock.Any()).
		Return(nil, rejected).
		Times(1)

	_, err := fastGateway(transport).Invoke(context.Background(), ref, "SetAttributes", nil)
	require.Error(t, err)

	var fault *FaultError

	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "wsman:SchemaValidationError", fault.Code)

	var wsFault *wsman.FaultError

	assert.True(t, errors.As(err, &wsFault))
}

func TestEnumerateRetriesTransientHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := wsman.NewMockTransport(ctrl)
	unavailable := &wsman.HTTPError{StatusCode: http.StatusServiceUnavailable, Status: "503 Service Unavailable"}

	gomock.InOrder(
		transport.EXPECT().
			Enumerate(gomock.Any(), cim.DCIMSystemView).
			Return(nil, unavailable),
		transport.EXPECT().
			Enumerate(gomock.Any(), cim.DCIMSystemView).
			Return(responseFromXML(t, enumerateDoc), nil),
	)

	resp, err := fastGateway(transport).Enumerate(context.Background(), cim.DCIMSystemView)
	require.NoError(t, err)
	require.Len(t, resp.All("DCIM_SystemView"), 1)
}

func TestEnumeratePermanentHTTPError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := wsman.NewMockTransport(ctrl)
	denied := &wsman.HTTPError{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized"}

	transport.EXPECT().
		Enumerate(gomock.Any(), cim.DCIMSystemView).
		Return(nil, denied).
		Times(1)

	_, err := fastGateway(transport).Enumerate(context.Background(), cim.DCIMSystemView)
	require.Error(t, err)

	var fault *FaultError

	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "401", fault.Code)

	var httpErr *wsman.HTTPError

	assert.True(t, errors.As(err, &httpErr))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "http 500", err: &wsman.HTTPError{StatusCode: 500}, want: true},
		{name: "http 503", err: &wsman.HTTPError{StatusCode: 503}, want: true},
		{name: "http 401", err: &wsman.HTTPError{StatusCode: 401}, want: false},
		{name: "busy fault", err: &wsman.FaultError{Message: "The service is busy."}, want: true},
		{name: "timeout", err: errors.New("Client.Timeout exceeded while awaiting headers"), want: true},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "validation fault", err: &wsman.FaultError{Message: "The input is not valid."}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}
