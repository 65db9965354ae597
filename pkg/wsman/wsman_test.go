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

package wsman

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/godrac/pkg/logger"
)

const enumerateSinglePageResponse = `<?xml version="1.0" encoding="UTF-8"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
  xmlns:wsen="http://schemas.xmlsoap.org/ws/2004/09/enumeration"
  xmlns:wsman="http://schemas.dmtf.org/wbem/wsman/1/wsman.xsd"
  xmlns:n1="http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_CPUView">
  <s:Body>
    <wsen:EnumerateResponse>
      <wsman:Items>
        <n1:DCIM_CPUView>
          <n1:InstanceID>CPU.Socket.1</n1:InstanceID>
          <n1:Model>Intel Xeon</n1:Model>
        </n1:DCIM_CPUView>
        <n1:DCIM_CPUView>
          <n1:InstanceID>CPU.Socket.2</n1:InstanceID>
          <n1:Model>Intel Xeon</n1:Model>
        </n1:DCIM_CPUView>
      </wsman:Items>
      <wsman:EndOfSequence/>
    </wsen:EnumerateResponse>
  </s:Body>
</s:Envelope>`

const enumerateFirstPageResponse = `<?xml version="1.0" encoding="UTF-8"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
  xmlns:wsen="http://schemas.xmlsoap.org/ws/2004/09/enumeration"
  xmlns:wsman="http://schemas.dmtf.org/wbem/wsman/1/wsman.xsd"
  xmlns:n1="http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_LifecycleJob">
  <s:Body>
    <wsen:EnumerateResponse>
      <wsman:Items>
        <n1:DCIM_LifecycleJob>
          <n1:InstanceID>JID_001</n1:InstanceID>
        </n1:DCIM_LifecycleJob>
      </wsman:Items>
      <wsen:EnumerationContext>ctx-page-2</wsen:EnumerationContext>
    </wsen:EnumerateResponse>
  </s:Body>
</s:Envelope>`

const pullLastPageResponse = `<?xml version="1.0" encoding="UTF-8"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
  xmlns:wsen="http://schemas.xmlsoap.org/ws/2004/09/enumeration"
  xmlns:n1="http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_LifecycleJob">
  <s:Body>
    <wsen:PullResponse>
      <wsen:Items>
        <n1:DCIM_LifecycleJob>
          <n1:InstanceID>JID_002</n1:InstanceID>
        </n1:DCIM_LifecycleJob>
      </wsen:Items>
      <wsen:EndOfSequence/>
    </wsen:PullResponse>
  </s:Body>
</s:Envelope>`

const invokeSuccessResponse = `<?xml version="1.0" encoding="UTF-8"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
  xmlns:n1="http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_BIOSService">
  <s:Body>
    <n1:SetAttributes_OUTPUT>
      <n1:Message>The command was successful</n1:Message>
      <n1:MessageID>BIOS001</n1:MessageID>
      <n1:RebootRequired>Yes</n1:RebootRequired>
      <n1:ReturnValue>0</n1:ReturnValue>
    </n1:SetAttributes_OUTPUT>
  </s:Body>
</s:Envelope>`

const createJobResponse = `<?xml version="1.0" encoding="UTF-8"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
  xmlns:wsa="http://schemas.xmlsoap.org/ws/2004/08/addressing"
  xmlns:wsman="http://schemas.dmtf.org/wbem/wsman/1/wsman.xsd"
  xmlns:n1="http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_BIOSService">
  <s:Body>
    <n1:CreateTargetedConfigJob_OUTPUT>
      <n1:ReturnValue>4096</n1:ReturnValue>
      <n1:Job>
        <wsa:EndpointReference>
          <wsa:Address>http://schemas.xmlsoap.org/ws/2004/08/addressing/role/anonymous</wsa:Address>
          <wsa:ReferenceParameters>
            <wsman:ResourceURI>http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_LifecycleJob</wsman:ResourceURI>
            <wsman:SelectorSet>
              <wsman:Selector Name="InstanceID">JID_253364536877</wsman:Selector>
              <wsman:Selector Name="__cimnamespace">root/dcim</wsman:Selector>
            </wsman:SelectorSet>
          </wsa:ReferenceParameters>
        </wsa:EndpointReference>
      </n1:Job>
    </n1:CreateTargetedConfigJob_OUTPUT>
  </s:Body>
</s:Envelope>`

const faultResponse = `<?xml version="1.0" encoding="UTF-8"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
  xmlns:wsman="http://schemas.dmtf.org/wbem/wsman/1/wsman.xsd">
  <s:Body>
    <s:Fault>
      <s:Code>
        <s:Value>s:Receiver</s:Value>
        <s:Subcode>
          <s:Value>wsman:InternalError</s:Value>
        </s:Subcode>
      </s:Code>
      <s:Reason>
        <s:Text xml:lang="en-US">The service is busy servicing other requests.</s:Text>
      </s:Reason>
    </s:Fault>
  </s:Body>
</s:Envelope>`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Options{
		Endpoint:           server.URL,
		Username:           "root",
		Password:           "calvin",
		InsecureSkipVerify: true,
	}, logger.NewTestLogger())
	require.NoError(t, err)

	return client, server
}

func TestClientEnumerateSinglePage(t *testing.T) {
	t.Parallel()

	var requestBody string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "root", user)
		require.Equal(t, "calvin", pass)

		body, _ := io.ReadAll(r.Body)
		requestBody = string(body)

		_, _ = w.Write([]byte(enumerateSinglePageResponse))
	})

	resp, err := client.Enumerate(context.Background(), "http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_CPUView")
	require.NoError(t, err)

	cpus := resp.All("DCIM_CPUView")
	require.Len(t, cpus, 2)
	assert.Equal(t, "CPU.Socket.1", cpus[0].Text("InstanceID"))
	assert.Equal(t, "CPU.Socket.2", cpus[1].Text("InstanceID"))

	req, err := ParseResponse([]byte(requestBody))
	require.NoError(t, err)
	assert.Equal(t, "http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_CPUView", req.Text("ResourceURI"))
	assert.NotNil(t, req.First("Enumerate"))
	assert.NotNil(t, req.First("OptimizeEnumeration"))
	assert.Equal(t, "100", req.Text("MaxElements"))
}

func TestClientEnumerateAutoPull(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		requests []string
	)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mu.Lock()
		requests = append(requests, string(body))
		count := len(requests)
		mu.Unlock()

		if count == 1 {
			_, _ = w.Write([]byte(enumerateFirstPageResponse))
			return
		}

		_, _ = w.Write([]byte(pullLastPageResponse))
	})

	resp, err := client.Enumerate(context.Background(), "http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_LifecycleJob")
	require.NoError(t, err)

	jobs := resp.All("DCIM_LifecycleJob")
	require.Len(t, jobs, 2)
	assert.Equal(t, "JID_001", jobs[0].Text("InstanceID"))
	assert.Equal(t, "JID_002", jobs[1].Text("InstanceID"))

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, requests, 2)
	assert.Contains(t, requests[1], "Pull")
	assert.Contains(t, requests[1], "ctx-page-2")
}

func TestClientEnumerateFilter(t *testing.T) {
	t.Parallel()

	var requestBody string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requestBody = string(body)

		_, _ = w.Write([]byte(enumerateSinglePageResponse))
	})

	query := `SELECT * FROM DCIM_LifecycleJob WHERE Name != "CLEARALL"`

	_, err := client.Enumerate(context.Background(),
		"http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_LifecycleJob",
		WithFilter("cql", query))
	require.NoError(t, err)

	req, err := ParseResponse([]byte(requestBody))
	require.NoError(t, err)

	filter := req.First("Filter")
	require.NotNil(t, filter)
	assert.Equal(t, DialectCQL, filter.Attr("Dialect"))
	assert.Equal(t, query, filter.Value())
}

func TestClientEnumerateInvalidDialect(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(enumerateSinglePageResponse))
	})

	_, err := client.Enumerate(context.Background(), "uri", WithFilter("sql", "SELECT 1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFilterDialect)
}

func TestClientInvokeRoundTripsSelectors(t *testing.T) {
	t.Parallel()

	var requestBody string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requestBody = string(body)

		_, _ = w.Write([]byte(invokeSuccessResponse))
	})

	selectors := map[string]string{
		"CreationClassName":       "DCIM_BIOSService",
		"Name":                    "DCIM:BIOSService",
		"SystemCreationClassName": "DCIM_ComputerSystem",
		"SystemName":              "DCIM:ComputerSystem",
	}
	properties := map[string][]string{
		"Target":         {"BIOS.Setup.1-1"},
		"AttributeName":  {"BootMode", "NumLock"},
		"AttributeValue": {"Bios", "On"},
	}

	resp, err := client.Invoke(context.Background(),
		"http://schemas.dell.com/wbem/wscim/1/cim-schema/2/DCIM_BIOSService",
		"SetAttributes", selectors, properties)
	require.NoError(t, err)
	assert.Equal(t, "0", resp.ReturnValue())
	assert.Equal(t, "Yes", resp.Text("RebootRequired"))

	req, err := ParseResponse([]byte(requestBody))
	require.NoError(t, err)

	parsed := map[string]string{}
	for _, sel := range req.All("Selector") {
		parsed[sel.Attr("Name")] = sel.Value()
	}

	assert.Equal(t, selectors, parsed)

	input := req.First("SetAttributes_INPUT")
	require.NotNil(t, input)
	assert.Len(t, input.All("AttributeName"), 2)
	assert.Equal(t, "BIOS.Setup.1-1", input.Text("Target"))

	action := req.Text("Action")
	assert.True(t, strings.HasSuffix(action, "DCIM_BIOSService/SetAttributes"))
}

func TestClientInvokeFault(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(faultResponse))
	})

	_, err := client.Invoke(context.Background(), "uri", "SetAttributes", nil, nil)
	require.Error(t, err)

	var fault *FaultError

	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "s:Receiver", fault.Code)
	assert.Equal(t, "wsman:InternalError", fault.Subcode)
	assert.Equal(t, "The service is busy servicing other requests.", fault.Message)
}

func TestClientHTTPError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	_, err := client.Enumerate(context.Background(), "uri")
	require.Error(t, err)

	var httpErr *HTTPError

	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
}

func TestResponseCreatedJobID(t *testing.T) {
	t.Parallel()

	resp, err := ParseResponse([]byte(createJobResponse))
	require.NoError(t, err)

	assert.Equal(t, "4096", resp.ReturnValue())
	assert.Equal(t, "JID_253364536877", resp.CreatedJobID())
}

func TestNodeNil(t *testing.T) {
	t.Parallel()

	doc := `<root xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
		<PendingValue xsi:nil="true"/>
		<CurrentValue>Enabled</CurrentValue>
	</root>`

	resp, err := ParseResponse([]byte(doc))
	require.NoError(t, err)

	require.NotNil(t, resp.First("PendingValue"))
	assert.True(t, resp.First("PendingValue").Nil())
	assert.False(t, resp.First("CurrentValue").Nil())
	assert.Equal(t, "Enabled", resp.Text("CurrentValue"))
}
