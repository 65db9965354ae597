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

// Package client ties the transport, gateway, pending tracker, job manager,
// and domain adapters into one controller-facing facade. It adds two
// behaviors of its own: a readiness gate in front of configuration work and
// a short-lived cache over enumeration-backed reads.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/carverauto/godrac/pkg/bios"
	"github.com/carverauto/godrac/pkg/config"
	"github.com/carverauto/godrac/pkg/gateway"
	"github.com/carverauto/godrac/pkg/idrac"
	"github.com/carverauto/godrac/pkg/inventory"
	"github.com/carverauto/godrac/pkg/jobs"
	"github.com/carverauto/godrac/pkg/lc"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/metrics"
	"github.com/carverauto/godrac/pkg/nic"
	"github.com/carverauto/godrac/pkg/pending"
	"github.com/carverauto/godrac/pkg/power"
	"github.com/carverauto/godrac/pkg/raid"
	"github.com/carverauto/godrac/pkg/system"
	"github.com/carverauto/godrac/pkg/wsman"
)

const (
	cacheKeyBootModes     = "boot_modes"
	cacheKeyBootDevices   = "boot_devices"
	cacheKeyBIOSSettings  = "bios_settings"
	cacheKeyControllers   = "raid_controllers"
	cacheKeyVirtualDisks  = "virtual_disks"
	cacheKeyPhysicalDisks = "physical_disks"
	cacheKeyCPUs          = "cpus"
	cacheKeyMemory        = "memory"
	cacheKeyNICs          = "nics"
	cacheKeyInventory     = "inventory"
	cacheKeyLCSettings    = "lc_settings"
	cacheKeyIDRACSettings = "idrac_settings"
	cacheKeySysSettings   = "system_settings"
)

// nicSettingsKey caches NIC attributes per interface; mutating one NIC
// leaves the others' cached settings valid.
func nicSettingsKey(nicID string) string {
	return "nic_settings:" + nicID
}

// Key groups purged together after a mutation in their domain. Boot order
// rides the BIOS pending set, so the BIOS group covers the boot keys too.
var (
	biosCacheKeys = []string{cacheKeyBIOSSettings, cacheKeyBootModes, cacheKeyBootDevices}
	raidCacheKeys = []string{cacheKeyControllers, cacheKeyVirtualDisks, cacheKeyPhysicalDisks}
)

// Client is the top of the stack: one controller, one credential set, the
// full management surface. Safe for concurrent use.
type Client struct {
	cfg    config.Config
	jobs   *jobs.Manager
	power  *power.Service
	bios   *bios.Service
	raid   *raid.Service
	inv    *inventory.Service
	lc     *lc.Service
	idrac  *idrac.Service
	nic    *nic.Service
	system *system.Service
	cache  *gocache.Cache
	clock  jobs.Clock
	logger logger.Logger
}

// New validates cfg, builds the WS-Man transport, and wires the service
// stack. Operation and job collectors are registered on the default
// Prometheus registerer; constructing several clients registers them once.
// Nothing is dialed during construction; the first remote exchange happens
// on the first method call.
func New(cfg config.Config, log logger.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := metrics.Register(nil); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	transport, err := wsman.New(wsman.Options{
		Endpoint:           cfg.Endpoint(),
		Username:           cfg.Username,
		Password:           cfg.Password,
		InsecureSkipVerify: cfg.Insecure,
		CAFile:             cfg.CAFile,
		Timeout:            time.Duration(cfg.Timeout),
	}, log)
	if err != nil {
		return nil, err
	}

	return newClient(cfg, gateway.New(transport, log), jobs.SystemClock(), log), nil
}

// newClient finishes the wiring above the invoker. Tests inject a mock
// invoker and clock here.
func newClient(cfg config.Config, invoker gateway.Invoker, clock jobs.Clock, log logger.Logger) *Client {
	tracker := pending.NewTracker(log)
	manager := jobs.New(invoker, tracker, clock, log)

	var store *gocache.Cache
	if ttl := time.Duration(cfg.CacheTTL); ttl > 0 {
		store = gocache.New(ttl, time.Minute)
	}

	return &Client{
		cfg:    cfg,
		jobs:   manager,
		power:  power.New(invoker, log),
		bios:   bios.New(invoker, tracker, manager, log),
		raid:   raid.New(invoker, tracker, manager, log),
		inv:    inventory.New(invoker, log),
		lc:     lc.New(invoker, tracker, manager, log),
		idrac:  idrac.New(invoker, tracker, manager, log),
		nic:    nic.New(invoker, tracker, manager, log),
		system: system.New(invoker, log),
		cache:  store,
		clock:  clock,
		logger: log,
	}
}

// WaitUntilReady polls the Lifecycle Controller until it reports ready,
// spending up to the configured retry budget. A controller in recovery mode
// fails immediately with lc.ErrInRecovery; no amount of waiting fixes that.
func (c *Client) WaitUntilReady(ctx context.Context) error {
	interval := time.Duration(c.cfg.Readiness.Interval)
	if interval <= 0 {
		interval = time.Duration(config.DefaultReadinessInterval)
	}

	retries := c.cfg.Readiness.Retries
	if retries <= 0 {
		retries = config.DefaultReadinessRetries
	}

	var ticker jobs.Ticker
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for attempt := 1; ; attempt++ {
		ready, err := c.lc.Ready(ctx)
		if errors.Is(err, lc.ErrInRecovery) {
			return err
		}

		if err != nil {
			// Transport trouble while the controller boots is routine;
			// it spends a retry like an unready poll.
			c.logger.Debug().Err(err).Int("attempt", attempt).Msg("Readiness poll failed")
		} else if ready {
			return nil
		}

		if attempt >= retries {
			return fmt.Errorf("%w after %d polls", ErrNotReady, attempt)
		}

		if ticker == nil {
			ticker = c.clock.Ticker(interval)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
		}
	}
}

// gate blocks configuration work until the controller reports ready. A
// cold-booting controller rejects config requests for several minutes, so
// setters and commits wait by default.
func (c *Client) gate(ctx context.Context) error {
	if !c.cfg.Readiness.Wait {
		return nil
	}

	return c.WaitUntilReady(ctx)
}

// cached serves key from the read cache when possible, falling through to
// fetch and storing the result. With the cache disabled it is just fetch.
func cached[T any](ctx context.Context, c *Client, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c.cache != nil {
		if hit, ok := c.cache.Get(key); ok {
			if v, ok := hit.(T); ok {
				return v, nil
			}
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if c.cache != nil {
		c.cache.SetDefault(key, v)
	}

	return v, nil
}

func (c *Client) purge(keys ...string) {
	if c.cache == nil {
		return
	}

	for _, k := range keys {
		c.cache.Delete(k)
	}
}

func (c *Client) purgeAll() {
	if c.cache != nil {
		c.cache.Flush()
	}
}
