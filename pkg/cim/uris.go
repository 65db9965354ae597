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

package cim

// schemaBase is the Dell WS-Man CIM schema prefix shared by every DCIM class.
const schemaBase = "http://schemas.dell.com/wbem/wscim/1/cim-schema/2/"

// Resource URIs for the DCIM classes this client touches.
const (
	DCIMBIOSEnumeration      = schemaBase + "DCIM_BIOSEnumeration"
	DCIMBIOSInteger          = schemaBase + "DCIM_BIOSInteger"
	DCIMBIOSService          = schemaBase + "DCIM_BIOSService"
	DCIMBIOSString           = schemaBase + "DCIM_BIOSString"
	DCIMBootConfigSetting    = schemaBase + "DCIM_BootConfigSetting"
	DCIMBootSourceSetting    = schemaBase + "DCIM_BootSourceSetting"
	DCIMComputerSystem       = schemaBase + "DCIM_ComputerSystem"
	DCIMControllerView       = schemaBase + "DCIM_ControllerView"
	DCIMCPUView              = schemaBase + "DCIM_CPUView"
	DCIMiDRACCardEnumeration = schemaBase + "DCIM_iDRACCardEnumeration"
	DCIMiDRACCardInteger     = schemaBase + "DCIM_iDRACCardInteger"
	DCIMiDRACCardService     = schemaBase + "DCIM_iDRACCardService"
	DCIMiDRACCardString      = schemaBase + "DCIM_iDRACCardString"
	DCIMJobService           = schemaBase + "DCIM_JobService"
	DCIMLCEnumeration        = schemaBase + "DCIM_LCEnumeration"
	DCIMLCService            = schemaBase + "DCIM_LCService"
	DCIMLCString             = schemaBase + "DCIM_LCString"
	DCIMLifecycleJob         = schemaBase + "DCIM_LifecycleJob"
	DCIMMemoryView           = schemaBase + "DCIM_MemoryView"
	DCIMNICEnumeration       = schemaBase + "DCIM_NICEnumeration"
	DCIMNICInteger           = schemaBase + "DCIM_NICInteger"
	DCIMNICService           = schemaBase + "DCIM_NICService"
	DCIMNICString            = schemaBase + "DCIM_NICString"
	DCIMNICView              = schemaBase + "DCIM_NICView"
	DCIMPhysicalDiskView     = schemaBase + "DCIM_PhysicalDiskView"
	DCIMRAIDService          = schemaBase + "DCIM_RAIDService"
	DCIMSystemEnumeration    = schemaBase + "DCIM_SystemEnumeration"
	DCIMSystemInteger        = schemaBase + "DCIM_SystemInteger"
	DCIMSystemString         = schemaBase + "DCIM_SystemString"
	DCIMSystemView           = schemaBase + "DCIM_SystemView"
	DCIMVirtualDiskView      = schemaBase + "DCIM_VirtualDiskView"
)
