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

// Package power reads and changes the managed host's power state through
// the DCIM_ComputerSystem instance.
package power

import (
	"context"
	"fmt"

	"github.com/carverauto/godrac/pkg/cim"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/wsman"
)

// State is a host power state.
type State string

const (
	On     State = "POWER_ON"
	Off    State = "POWER_OFF"
	Reboot State = "REBOOT"
)

// EnabledState codes the controller reports and accepts as RequestedState.
var statesByCode = map[string]State{
	"2":  On,
	"3":  Off,
	"11": Reboot,
}

var codesByState = func() map[State]string {
	m := make(map[State]string, len(statesByCode))
	for code, state := range statesByCode {
		m[state] = code
	}

	return m
}()

// stateQuery keeps the enumeration down to the one row and column we read.
const stateQuery = `select EnabledState from DCIM_ComputerSystem where Name="srv:system"`

// Service manages host power through the remote operation gateway.
type Service struct {
	invoker gateway.Invoker
	logger  logger.Logger
}

// New creates a power Service.
func New(invoker gateway.Invoker, log logger.Logger) *Service {
	return &Service{invoker: invoker, logger: log}
}

// State returns the host's current power state.
func (s *Service) State(ctx context.Context) (State, error) {
	resp, err := s.invoker.Enumerate(ctx, cim.DCIMComputerSystem,
		wsman.WithFilter("cql", stateQuery))
	if err != nil {
		return "", fmt.Errorf("get power state: %w", err)
	}

	code := resp.Text("EnabledState")

	state, ok := statesByCode[code]
	if !ok {
		return "", fmt.Errorf("%w: EnabledState %q", ErrUnknownState, code)
	}

	return state, nil
}

// SetState requests a transition to the target power state. The controller
// acknowledges the request; observing the transition is the caller's job.
func (s *Service) SetState(ctx context.Context, target State) error {
	code, ok := codesByState[target]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidState, target)
	}

	props := map[string][]string{"RequestedState": {code}}

	if _, err := s.invoker.Invoke(ctx, cim.ComputerSystemRef(), "RequestStateChange", props); err != nil {
		return fmt.Errorf("set power state %s: %w", target, err)
	}

	s.logger.Info().Str("state", string(target)).Msg("Power state change requested")

	return nil
}
