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

package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/godrac/pkg/attributes"
	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/wsman"
)

const systemEnumerationDoc = `<Envelope><Body><EnumerateResponse><Items>
	<DCIM_SystemEnumeration>
		<AttributeName>ChassisLEDState</AttributeName>
		<CurrentValue>Off</CurrentValue>
		<FQDD>System.Embedded.1</FQDD>
		<GroupID>ChassisPwrState.1</GroupID>
		<InstanceID>System.Embedded.1#ChassisPwrState.1#ChassisLEDState</InstanceID>
		<IsReadOnly>true</IsReadOnly>
		<PossibleValues>Off</PossibleValues>
		<PossibleValues>Blinking</PossibleValues>
	</DCIM_SystemEnumeration>
</Items><EndOfSequence/></EnumerateResponse></Body></Envelope>`

const systemStringDoc = `<Envelope><Body><EnumerateResponse><Items>
	<DCIM_SystemString>
		<AttributeName>UserLCDString</AttributeName>
		<CurrentValue xsi:nil="true" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"/>
		<FQDD>System.Embedded.1</FQDD>
		<GroupID>LCD.1</GroupID>
		<InstanceID>System.Embedded.1#LCD.1#UserLCDString</InstanceID>
		<IsReadOnly>false</IsReadOnly>
		<MaxLength>62</MaxLength>
		<MinLength>0</MinLength>
	</DCIM_SystemString>
</Items><EndOfSequence/></EnumerateResponse></Body></Envelope>`

const systemIntegerDoc = `<Envelope><Body><EnumerateResponse><Items>
	<DCIM_SystemInteger>
		<AttributeName>PowerCapValue</AttributeName>
		<CurrentValue>658</CurrentValue>
		<FQDD>System.Embedded.1</FQDD>
		<GroupID>ServerPwr.1</GroupID>
		<InstanceID>System.Embedded.1#ServerPwr.1#PowerCapValue</InstanceID>
		<IsReadOnly>false</IsReadOnly>
		<LowerBound>302</LowerBound>
		<UpperBound>1156</UpperBound>
	</DCIM_SystemInteger>
</Items><EndOfSequence/></EnumerateResponse></Body></Envelope>`

func responseFromXML(t *testing.T, doc string) *wsman.Response {
	t.Helper()

	resp, err := wsman.ParseResponse([]byte(doc))
	require.NoError(t, err)

	return resp
}

func TestListSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoker := gateway.NewMockInvoker(ctrl)
	invoker.EXPECT().
		Enumerate(gomock.Any(), cim.DCIMSystemEnumeration).
		Return(responseFromXML(t, systemEnumerationDoc), nil)
	invoker.EXPECT().
		Enumerate(gomock.Any(), cim.DCIMSystemString).
		Return(responseFromXML(t, systemStringDoc), nil)
	invoker.EXPECT().
		Enumerate(gomock.Any(), cim.DCIMSystemInteger).
		Return(responseFromXML(t, systemIntegerDoc), nil)

	svc := New(invoker, logger.NewTestLogger())

	settings, err := svc.ListSettings(context.Background())
	require.NoError(t, err)
	require.Len(t, settings, 3)

	led := settings["System.Embedded.1#ChassisPwrState.1#ChassisLEDState"]
	assert.Equal(t, "ChassisLEDState", led.Name)
	assert.Equal(t, "ChassisPwrState.1", led.GroupID)
	assert.True(t, led.ReadOnly)

	lcd := settings["System.Embedded.1#LCD.1#UserLCDString"]
	assert.Equal(t, attributes.KindString, lcd.Kind)
	assert.Empty(t, lcd.CurrentValue)

	powerCap := settings["System.Embedded.1#ServerPwr.1#PowerCapValue"]
	assert.Equal(t, attributes.KindInteger, powerCap.Kind)
	assert.Equal(t, 1156, powerCap.UpperBound)
}

func TestListSettingsEnumerateFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("enumerate failed")

	invoker := gateway.NewMockInvoker(ctrl)
	invoker.EXPECT().
		Enumerate(gomock.Any(), cim.DCIMSystemEnumeration).
		Return(nil, boom)

	svc := New(invoker, logger.NewTestLogger())

	_, err := svc.ListSettings(context.Background())

	require.ErrorIs(t, err, boom)
}
