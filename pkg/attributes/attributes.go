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

// Package attributes parses the DCIM attribute classes shared by the BIOS,
// Lifecycle Controller, iDRAC card, NIC, and System configuration views.
// Every class comes in up to three variants carrying different validation
// data: enumerations list their allowed values, strings carry length limits
// and an optional regular expression, integers carry bounds.
package attributes

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/carverauto/godrac/pkg/wsman"
)

// Kind identifies which validation data an Attribute carries.
type Kind string

const (
	KindEnumeration Kind = "enumeration"
	KindString      Kind = "string"
	KindInteger     Kind = "integer"
)

// Attribute is one configurable setting exposed by a DCIM attribute class.
// CurrentValue and PendingValue are kept as the controller's string
// rendering regardless of Kind; PendingValue is empty when the element is
// xsi:nil, meaning no change is staged remotely.
type Attribute struct {
	Name         string
	InstanceID   string
	CurrentValue string
	PendingValue string
	ReadOnly     bool
	Kind         Kind

	// FQDD and GroupID are published by the iDRAC card, NIC, and System
	// registry classes; the BIOS and LC classes leave them empty.
	FQDD    string
	GroupID string

	// KindEnumeration only.
	PossibleValues []string

	// KindString only. Regex is the PCRE pattern some BIOS string
	// attributes publish; empty when the class has none.
	MinLength int
	MaxLength int
	Regex     string

	// KindInteger only.
	LowerBound int
	UpperBound int
}

// GroupedName returns the name qualified with the attribute's group, the
// form the iDRAC card and NIC services address settings by (for example
// "Users.2#UserName"). Ungrouped attributes keep their plain name.
func (a Attribute) GroupedName() string {
	if a.GroupID == "" {
		return a.Name
	}

	return a.GroupID + "#" + a.Name
}

// ParseEnumeration extracts every instance of the named enumeration class
// from an enumerate response.
func ParseEnumeration(resp *wsman.Response, class string) []Attribute {
	var attrs []Attribute

	for _, n := range resp.All(class) {
		attr := parseCommon(n)
		attr.Kind = KindEnumeration

		for _, v := range n.All("PossibleValues") {
			attr.PossibleValues = append(attr.PossibleValues, v.Value())
		}

		attrs = append(attrs, attr)
	}

	return attrs
}

// ParseString extracts every instance of the named string class from an
// enumerate response.
func ParseString(resp *wsman.Response, class string) []Attribute {
	var attrs []Attribute

	for _, n := range resp.All(class) {
		attr := parseCommon(n)
		attr.Kind = KindString
		attr.MinLength, _ = strconv.Atoi(n.Text("MinLength"))
		attr.MaxLength, _ = strconv.Atoi(n.Text("MaxLength"))
		attr.Regex = n.Text("ValueExpression")

		attrs = append(attrs, attr)
	}

	return attrs
}

// ParseInteger extracts every instance of the named integer class from an
// enumerate response.
func ParseInteger(resp *wsman.Response, class string) []Attribute {
	var attrs []Attribute

	for _, n := range resp.All(class) {
		attr := parseCommon(n)
		attr.Kind = KindInteger
		attr.LowerBound, _ = strconv.Atoi(n.Text("LowerBound"))
		attr.UpperBound, _ = strconv.Atoi(n.Text("UpperBound"))

		attrs = append(attrs, attr)
	}

	return attrs
}

func parseCommon(n *wsman.Node) Attribute {
	return Attribute{
		Name:         n.Text("AttributeName"),
		InstanceID:   n.Text("InstanceID"),
		CurrentValue: nullableText(n, "CurrentValue"),
		PendingValue: nullableText(n, "PendingValue"),
		ReadOnly:     n.Text("IsReadOnly") == "true",
		FQDD:         n.Text("FQDD"),
		GroupID:      n.Text("GroupID"),
	}
}

// nullableText returns "" for elements the controller marks xsi:nil instead
// of their (meaningless) character data.
func nullableText(n *wsman.Node, local string) string {
	found := n.First(local)
	if found == nil || found.Nil() {
		return ""
	}

	return found.Value()
}

// Validate reports whether value is acceptable for this attribute under its
// kind-specific rules. Writability is the caller's concern; see PlanChanges.
func (a Attribute) Validate(value string) error {
	switch a.Kind {
	case KindEnumeration:
		if !slices.Contains(a.PossibleValues, value) {
			return fmt.Errorf("%w: attribute %q cannot be set to %q, allowed values are %v",
				ErrInvalidValue, a.Name, value, a.PossibleValues)
		}
	case KindString:
		if len(value) < a.MinLength || (a.MaxLength > 0 && len(value) > a.MaxLength) {
			return fmt.Errorf("%w: attribute %q cannot be set to %q, length must be between %d and %d",
				ErrInvalidValue, a.Name, value, a.MinLength, a.MaxLength)
		}

		if a.Regex != "" {
			re, err := regexp.Compile(a.Regex)
			if err != nil {
				return fmt.Errorf("%w: attribute %q publishes unusable pattern %q: %v",
					ErrInvalidValue, a.Name, a.Regex, err)
			}

			if !re.MatchString(value) {
				return fmt.Errorf("%w: attribute %q cannot be set to %q, it must match %q",
					ErrInvalidValue, a.Name, value, a.Regex)
			}
		}
	case KindInteger:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: attribute %q cannot be set to %q, an integer is required",
				ErrInvalidValue, a.Name, value)
		}

		if v < a.LowerBound || v > a.UpperBound {
			return fmt.Errorf("%w: attribute %q cannot be set to %d, it must be between %d and %d",
				ErrInvalidValue, a.Name, v, a.LowerBound, a.UpperBound)
		}
	}

	return nil
}
