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
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	nsSOAPEnv       = "http://www.w3.org/2003/05/soap-envelope"
	nsWSAddr        = "http://schemas.xmlsoap.org/ws/2004/08/addressing"
	nsWSAddrAnonym  = nsWSAddr + "/role/anonymous"
	nsWSMan         = "http://schemas.dmtf.org/wbem/wsman/1/wsman.xsd"
	nsWSManEnum     = "http://schemas.xmlsoap.org/ws/2004/09/enumeration"
	actionEnumerate = nsWSManEnum + "/Enumerate"
	actionPull      = nsWSManEnum + "/Pull"
)

// Filter dialect URIs accepted by the controller.
const (
	DialectCQL = "http://schemas.dmtf.org/wbem/cql/1/dsp0202.pdf"
	DialectWQL = "http://schemas.microsoft.com/wbem/wsman/1/WQL"
)

var filterDialects = map[string]string{
	"cql": DialectCQL,
	"wql": DialectWQL,
}

const envelopeOpen = `<s:Envelope xmlns:s="` + nsSOAPEnv +
	`" xmlns:wsa="` + nsWSAddr +
	`" xmlns:wsman="` + nsWSMan +
	`" xmlns:wsen="` + nsWSManEnum + `">`

// writeHeader emits the WS-Addressing header shared by every operation. The
// selector set, when present, carries the weak-association fields that pick
// one instance out of a multi-instance class.
func writeHeader(b *strings.Builder, endpoint, resourceURI, action string, selectors map[string]string) {
	b.WriteString(`<s:Header>`)
	b.WriteString(`<wsa:To s:mustUnderstand="true">`)
	b.WriteString(xmlEscape(endpoint))
	b.WriteString(`</wsa:To>`)
	b.WriteString(`<wsman:ResourceURI s:mustUnderstand="true">`)
	b.WriteString(xmlEscape(resourceURI))
	b.WriteString(`</wsman:ResourceURI>`)
	b.WriteString(`<wsa:MessageID s:mustUnderstand="true">uuid:`)
	b.WriteString(uuid.NewString())
	b.WriteString(`</wsa:MessageID>`)
	b.WriteString(`<wsa:ReplyTo><wsa:Address>` + nsWSAddrAnonym + `</wsa:Address></wsa:ReplyTo>`)
	b.WriteString(`<wsa:Action s:mustUnderstand="true">`)
	b.WriteString(xmlEscape(action))
	b.WriteString(`</wsa:Action>`)

	if len(selectors) > 0 {
		b.WriteString(`<wsman:SelectorSet>`)

		for _, name := range sortedKeys(selectors) {
			b.WriteString(`<wsman:Selector Name="`)
			b.WriteString(xmlEscape(name))
			b.WriteString(`">`)
			b.WriteString(xmlEscape(selectors[name]))
			b.WriteString(`</wsman:Selector>`)
		}

		b.WriteString(`</wsman:SelectorSet>`)
	}

	b.WriteString(`</s:Header>`)
}

func buildEnumerate(endpoint, resourceURI string, settings enumSettings) string {
	var b strings.Builder

	b.WriteString(xml.Header)
	b.WriteString(envelopeOpen)
	writeHeader(&b, endpoint, resourceURI, actionEnumerate, nil)
	b.WriteString(`<s:Body><wsen:Enumerate>`)

	if settings.filterQuery != "" {
		b.WriteString(`<wsman:Filter Dialect="`)
		b.WriteString(xmlEscape(settings.filterDialect))
		b.WriteString(`">`)
		b.WriteString(xmlEscape(settings.filterQuery))
		b.WriteString(`</wsman:Filter>`)
	}

	b.WriteString(`<wsman:OptimizeEnumeration/><wsman:MaxElements>`)
	b.WriteString(strconv.Itoa(settings.maxElements))
	b.WriteString(`</wsman:MaxElements>`)
	b.WriteString(`</wsen:Enumerate></s:Body></s:Envelope>`)

	return b.String()
}

func buildPull(endpoint, resourceURI, context string, maxElements int) string {
	var b strings.Builder

	b.WriteString(xml.Header)
	b.WriteString(envelopeOpen)
	writeHeader(&b, endpoint, resourceURI, actionPull, nil)
	b.WriteString(`<s:Body><wsen:Pull><wsen:EnumerationContext>`)
	b.WriteString(xmlEscape(context))
	b.WriteString(`</wsen:EnumerationContext><wsman:MaxElements>`)
	b.WriteString(strconv.Itoa(maxElements))
	b.WriteString(`</wsman:MaxElements></wsen:Pull></s:Body></s:Envelope>`)

	return b.String()
}

// buildInvoke renders a remote method call. The action URI is the resource
// URI joined with the method name, and input properties go into a
// <method>_INPUT element namespaced by the resource URI. Multi-valued
// properties repeat the element.
func buildInvoke(endpoint, resourceURI, method string, selectors map[string]string, properties map[string][]string) string {
	var b strings.Builder

	b.WriteString(xml.Header)
	b.WriteString(envelopeOpen)
	writeHeader(&b, endpoint, resourceURI, fmt.Sprintf("%s/%s", resourceURI, method), selectors)
	b.WriteString(`<s:Body><p:`)
	b.WriteString(method)
	b.WriteString(`_INPUT xmlns:p="`)
	b.WriteString(xmlEscape(resourceURI))
	b.WriteString(`">`)

	for _, name := range sortedKeys(properties) {
		for _, value := range properties[name] {
			b.WriteString(`<p:`)
			b.WriteString(name)
			b.WriteString(`>`)
			b.WriteString(xmlEscape(value))
			b.WriteString(`</p:`)
			b.WriteString(name)
			b.WriteString(`>`)
		}
	}

	b.WriteString(`</p:`)
	b.WriteString(method)
	b.WriteString(`_INPUT></s:Body></s:Envelope>`)

	return b.String()
}

func xmlEscape(s string) string {
	var b strings.Builder

	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}

	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
