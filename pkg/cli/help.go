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

package cli

import "fmt"

// ShowHelp displays the help message.
func ShowHelp() {
	fmt.Print(`godrac: remote hardware management for iDRAC-class controllers
Usage:
  godrac [options] <command> [command options]

Commands:
  power get                        show chassis power state
  power set <on|off|reboot>        change chassis power state
  boot modes                       list boot modes
  boot devices                     list boot devices per mode
  boot order -mode <id> <dev>...   stage a new boot device order
  bios list                        list BIOS attributes
  bios set <name=value>...         stage BIOS attribute values
  bios commit [-reboot] [-wait]    create the BIOS config job
  bios abandon                     discard staged BIOS changes
  raid controllers|vdisks|pdisks   list RAID inventory
  raid create-vdisk [options]      stage a virtual disk
  raid delete-vdisk <fqdd>         stage a virtual disk deletion
  raid commit -controller <fqdd>   create the RAID config job
  raid abandon -controller <fqdd>  discard staged RAID changes
  inventory [cpus|memory|nics]     show hardware inventory
  jobs list [-unfinished]          list the job queue
  jobs get|wait|delete <job-id>    inspect or remove jobs
  jobs reboot [-graceful]          create a standalone reboot job
  lc version|settings|set|commit   Lifecycle Controller operations
  version                          print the godrac version

Options:
  -config string        path to JSON config file
  -host string          controller hostname or IP (env GODRAC_HOST)
  -port int             controller HTTPS port (env GODRAC_PORT)
  -username string      controller username (env GODRAC_USERNAME)
  -password string      controller password; prompted when absent
  -insecure             skip TLS certificate verification
  -ca-file string       PEM bundle pinning the controller CA
  -timeout duration     per-request timeout
  -log-level string     trace, debug, info, warn or error (default warn)
  -no-wait              skip the Lifecycle Controller readiness gate
  -no-cache             disable the enumeration read cache

Commands that create a job accept -wait, -poll-interval and -job-timeout.
A .env file in the working directory is loaded before the environment is
read.

Examples:
  godrac -host 10.0.0.42 -username root power get
  godrac bios set BootMode=Uefi
  godrac bios commit -reboot -wait
  godrac raid create-vdisk -controller RAID.Integrated.1-1 \
      -disks Disk.Bay.0:Enc.0:RAID.Integrated.1-1,Disk.Bay.1:Enc.0:RAID.Integrated.1-1 \
      -level 1 -size-mb 476928
`)
}
