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

package attributes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/carverauto/godrac/pkg/wsman"
)

// ByInstanceID indexes attributes by InstanceID. Instance ids are unique
// within a view, so later entries never clobber earlier ones in practice.
func ByInstanceID(attrs []Attribute) map[string]Attribute {
	m := make(map[string]Attribute, len(attrs))
	for _, a := range attrs {
		m[a.InstanceID] = a
	}

	return m
}

// ByName indexes attributes by display name, the key settings are proposed
// under. Two attributes sharing a name would make the proposal ambiguous,
// so collisions are an error.
func ByName(attrs []Attribute) (map[string]Attribute, error) {
	m := make(map[string]Attribute, len(attrs))

	for _, a := range attrs {
		if dup, ok := m[a.Name]; ok {
			return nil, fmt.Errorf("%w: %q held by %s and %s",
				ErrNameCollision, a.Name, dup.InstanceID, a.InstanceID)
		}

		m[a.Name] = a
	}

	return m, nil
}

// ByGroupedName indexes attributes by GroupedName. Grouped registries reuse
// plain names across groups (every iDRAC user slot has a UserName), so the
// qualified form is the only unambiguous key; a collision on it is an error.
func ByGroupedName(attrs []Attribute) (map[string]Attribute, error) {
	m := make(map[string]Attribute, len(attrs))

	for _, a := range attrs {
		key := a.GroupedName()
		if dup, ok := m[key]; ok {
			return nil, fmt.Errorf("%w: %q held by %s and %s",
				ErrNameCollision, key, dup.InstanceID, a.InstanceID)
		}

		m[key] = a
	}

	return m, nil
}

// FilterFQDD keeps the attributes published by the named device. An empty
// fqdd keeps everything.
func FilterFQDD(attrs []Attribute, fqdd string) []Attribute {
	if fqdd == "" {
		return attrs
	}

	var kept []Attribute

	for _, a := range attrs {
		if a.FQDD == fqdd {
			kept = append(kept, a)
		}
	}

	return kept
}

// Plan is the write set a SetAttributes invocation applies: parallel
// AttributeName and AttributeValue arrays. An empty plan means every
// proposed value already matched and there is nothing to send.
type Plan struct {
	Names  []string
	Values []string
}

// Empty reports whether the plan carries no writes.
func (p Plan) Empty() bool {
	return len(p.Names) == 0
}

// PlanChanges validates proposed settings against the current attributes
// and returns the writes still needed. Names missing from current fail with
// ErrUnknownAttribute; read-only targets and kind-rule violations are
// collected across all proposed names and reported together. Values equal
// to the current value are dropped silently.
func PlanChanges(current map[string]Attribute, proposed map[string]string) (Plan, error) {
	var unknown []string

	for name := range proposed {
		if _, ok := current[name]; !ok {
			unknown = append(unknown, name)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Plan{}, fmt.Errorf("%w: %s", ErrUnknownAttribute, strings.Join(unknown, ", "))
	}

	names := make([]string, 0, len(proposed))
	for name := range proposed {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		plan     Plan
		readOnly []string
		invalid  []error
	)

	for _, name := range names {
		attr := current[name]
		value := proposed[name]

		switch {
		case value == attr.CurrentValue:
			// Already set; nothing to write.
		case attr.ReadOnly:
			readOnly = append(readOnly, name)
		default:
			if err := attr.Validate(value); err != nil {
				invalid = append(invalid, err)
				continue
			}

			plan.Names = append(plan.Names, name)
			plan.Values = append(plan.Values, value)
		}
	}

	if len(readOnly) > 0 {
		invalid = append(invalid, fmt.Errorf("%w: %s", ErrReadOnly, strings.Join(readOnly, ", ")))
	}

	if len(invalid) > 0 {
		return Plan{}, errors.Join(invalid...)
	}

	return plan, nil
}

// ApplyResult is what a SetAttributes-style response asks of the caller
// before the staged values take effect.
type ApplyResult struct {
	// CommitRequired means a config job must be created to apply the
	// staged values.
	CommitRequired bool
	// RebootRequired means the host must reboot once that job runs.
	RebootRequired bool
}

// ParseApplyResult reads the SetResult and RebootRequired elements of an
// invoke response. SetResult mentions the pending value whenever the write
// was staged rather than applied immediately.
func ParseApplyResult(resp *wsman.Response) ApplyResult {
	setResult := strings.ReplaceAll(strings.ToLower(resp.Text("SetResult")), " ", "")

	return ApplyResult{
		CommitRequired: strings.Contains(setResult, "pendingvalue"),
		RebootRequired: strings.EqualFold(resp.Text("RebootRequired"), "yes"),
	}
}
