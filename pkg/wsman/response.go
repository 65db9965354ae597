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
	"strings"
)

const nsXSI = "http://www.w3.org/2001/XMLSchema-instance"

// Node is a generic element of a parsed response document. Lookups match on
// local element name only; the DCIM classes this client reads never reuse a
// local name across namespaces within one document.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// First returns the first descendant element named local, depth first, or
// nil when the document has none.
func (n *Node) First(local string) *Node {
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Local == local {
			return child
		}

		if found := child.First(local); found != nil {
			return found
		}
	}

	return nil
}

// All returns every descendant element named local in document order.
func (n *Node) All(local string) []*Node {
	var found []*Node

	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Local == local {
			found = append(found, child)
		}

		found = append(found, child.All(local)...)
	}

	return found
}

// Text returns the trimmed text of the first descendant named local, or ""
// when absent.
func (n *Node) Text(local string) string {
	if found := n.First(local); found != nil {
		return found.Value()
	}

	return ""
}

// Value returns the node's own trimmed character data.
func (n *Node) Value() string {
	return strings.TrimSpace(n.Content)
}

// Attr returns the value of the named attribute, ignoring its namespace.
func (n *Node) Attr(local string) string {
	for _, attr := range n.Attrs {
		if attr.Name.Local == local {
			return attr.Value
		}
	}

	return ""
}

// Nil reports whether the element is explicitly null (xsi:nil="true"), which
// is how the controller encodes attributes with no pending value.
func (n *Node) Nil() bool {
	for _, attr := range n.Attrs {
		if attr.Name.Local == "nil" && attr.Name.Space == nsXSI {
			return attr.Value == "true" || attr.Value == "1"
		}
	}

	return false
}

// Response is a parsed WS-Management response document.
type Response struct {
	root Node
}

// ParseResponse parses a SOAP response document. Exposed so tests can build
// canned responses from XML fixtures.
func ParseResponse(data []byte) (*Response, error) {
	var root Node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing response document: %w", err)
	}

	return &Response{root: root}, nil
}

// First returns the first element named local anywhere in the document.
func (r *Response) First(local string) *Node {
	return r.root.First(local)
}

// All returns every element named local anywhere in the document.
func (r *Response) All(local string) []*Node {
	return r.root.All(local)
}

// Text returns the trimmed text of the first element named local, or "".
func (r *Response) Text(local string) string {
	return r.root.Text(local)
}

// ReturnValue extracts the method return code from an invoke response.
func (r *Response) ReturnValue() string {
	return r.Text("ReturnValue")
}

// CreatedJobID extracts the job identity a job-creating method returns via
// an InstanceID selector, or "" when the response carries none.
func (r *Response) CreatedJobID() string {
	for _, selector := range r.All("Selector") {
		if selector.Attr("Name") == "InstanceID" {
			return selector.Value()
		}
	}

	return ""
}

// Fault extracts a SOAP fault from the document, or returns nil when the
// response is not a fault.
func (r *Response) Fault() *FaultError {
	fault := r.First("Fault")
	if fault == nil {
		return nil
	}

	fe := &FaultError{}

	if code := fault.First("Code"); code != nil {
		if value := code.First("Value"); value != nil {
			fe.Code = value.Value()
		}

		if subcode := code.First("Subcode"); subcode != nil {
			fe.Subcode = subcode.Text("Value")
		}
	}

	if reason := fault.First("Reason"); reason != nil {
		fe.Message = reason.Text("Text")
	}

	return fe
}
