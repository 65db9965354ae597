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

// Package cim builds unambiguous references to remote CIM instances.
//
// A CIM instance inside a managed system is not globally unique; it is
// addressed by combining its own creation class and name with the creation
// class and name of the scoping computer system (a weak association). This
// package models that address as a single immutable value and supplies the
// scoping defaults shared by almost every instance an iDRAC exposes.
package cim

// Scoping-system defaults. Nearly every DCIM service instance is scoped by
// the one computer system the controller manages; the job service is the
// notable exception and lives under the "idrac" system name.
const (
	DefaultSystemCreationClassName = "DCIM_ComputerSystem"
	DefaultSystemName              = "DCIM:ComputerSystem"

	// HostSystemName is the Name of the managed host's own
	// DCIM_ComputerSystem instance.
	HostSystemName = "srv:system"

	JobSystemName           = "idrac"
	JobServiceCreationClass = "DCIM_JobService"
	JobServiceName          = "JobService"
)

// Selector names used in WS-Management SelectorSet headers.
const (
	selectorCreationClassName       = "CreationClassName"
	selectorName                    = "Name"
	selectorSystemCreationClassName = "SystemCreationClassName"
	selectorSystemName              = "SystemName"
	selectorInstanceID              = "InstanceID"
)

// ObjectRef identifies one addressable remote CIM instance. DCIM providers
// address instances one of two ways: the weak-association fields (class and
// name, usually scoped by the managed system) or a bare InstanceID. A ref
// carries exactly one of the two.
type ObjectRef struct {
	ResourceURI             string
	CreationClassName       string
	Name                    string
	SystemCreationClassName string
	SystemName              string
	InstanceID              string
}

// RefOption overrides a default field of an ObjectRef under construction.
type RefOption func(*ObjectRef)

// WithSystem overrides the scoping-system pair for non-standard providers.
func WithSystem(creationClassName, name string) RefOption {
	return func(r *ObjectRef) {
		r.SystemCreationClassName = creationClassName
		r.SystemName = name
	}
}

// WithoutSystem drops the scoping pair entirely. Top-level instances such
// as the computer system itself are keyed by class and name alone.
func WithoutSystem() RefOption {
	return func(r *ObjectRef) {
		r.SystemCreationClassName = ""
		r.SystemName = ""
	}
}

// Resolve builds an ObjectRef for the instance of creationClassName named
// name within the default scoping system. It performs no I/O and fails only
// when a required identifying field is empty after defaulting.
func Resolve(resourceURI, creationClassName, name string, opts ...RefOption) (ObjectRef, error) {
	ref := ObjectRef{
		ResourceURI:             resourceURI,
		CreationClassName:       creationClassName,
		Name:                    name,
		SystemCreationClassName: DefaultSystemCreationClassName,
		SystemName:              DefaultSystemName,
	}

	for _, opt := range opts {
		opt(&ref)
	}

	switch {
	case ref.ResourceURI == "":
		return ObjectRef{}, &AddressingError{Field: "ResourceURI"}
	case ref.CreationClassName == "":
		return ObjectRef{}, &AddressingError{Field: "CreationClassName"}
	case ref.Name == "":
		return ObjectRef{}, &AddressingError{Field: "Name"}
	case ref.SystemCreationClassName == "" && ref.SystemName != "":
		return ObjectRef{}, &AddressingError{Field: "SystemCreationClassName"}
	case ref.SystemName == "" && ref.SystemCreationClassName != "":
		return ObjectRef{}, &AddressingError{Field: "SystemName"}
	}

	return ref, nil
}

// ComputerSystemRef addresses the managed host's computer-system instance.
func ComputerSystemRef() ObjectRef {
	ref, _ := Resolve(DCIMComputerSystem, DefaultSystemCreationClassName, HostSystemName,
		WithoutSystem())

	return ref
}

// JobServiceRef addresses the controller's job service, which is scoped by
// the iDRAC itself rather than the managed computer system.
func JobServiceRef() ObjectRef {
	ref, _ := Resolve(DCIMJobService, JobServiceCreationClass, JobServiceName,
		WithSystem(DefaultSystemCreationClassName, JobSystemName))

	return ref
}

// InstanceRef addresses an instance directly by its InstanceID selector,
// bypassing the class/name scheme. Boot configuration methods are invoked
// this way.
func InstanceRef(resourceURI, instanceID string) (ObjectRef, error) {
	switch {
	case resourceURI == "":
		return ObjectRef{}, &AddressingError{Field: "ResourceURI"}
	case instanceID == "":
		return ObjectRef{}, &AddressingError{Field: "InstanceID"}
	}

	return ObjectRef{ResourceURI: resourceURI, InstanceID: instanceID}, nil
}

// Selectors renders the identifying fields as a WS-Management selector set.
// InstanceID refs yield a single selector; unscoped refs yield only the
// class/name pair.
func (r ObjectRef) Selectors() map[string]string {
	if r.InstanceID != "" {
		return map[string]string{selectorInstanceID: r.InstanceID}
	}

	selectors := map[string]string{
		selectorCreationClassName: r.CreationClassName,
		selectorName:              r.Name,
	}

	if r.SystemCreationClassName != "" {
		selectors[selectorSystemCreationClassName] = r.SystemCreationClassName
		selectors[selectorSystemName] = r.SystemName
	}

	return selectors
}
