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

// Package config loads and validates controller connection settings. A
// configuration is layered: built-in defaults, then an optional JSON file,
// then GODRAC_* environment variables on top.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const envPrefix = "GODRAC_"

// Defaults applied before any file or environment values land on top.
const (
	DefaultPort     = 443
	DefaultPath     = "/wsman"
	DefaultProtocol = "https"

	DefaultTimeout           = Duration(60 * time.Second)
	DefaultCacheTTL          = Duration(30 * time.Second)
	DefaultReadinessRetries  = 48
	DefaultReadinessInterval = Duration(10 * time.Second)
)

// Readiness controls the wait-for-ready gate in front of configuration
// operations. An unready Lifecycle Controller rejects config requests, so
// the client polls until the controller reports ready before touching
// pending state.
type Readiness struct {
	Wait     bool     `json:"wait"`
	Retries  int      `json:"retries" validate:"min=1"`
	Interval Duration `json:"interval"`
}

// Config carries everything needed to reach and drive one controller.
type Config struct {
	Host     string `json:"host" validate:"required"`
	Port     int    `json:"port" validate:"min=1,max=65535"`
	Path     string `json:"path"`
	Protocol string `json:"protocol" validate:"oneof=http https"`

	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`

	// Insecure skips TLS certificate verification; CAFile pins the
	// controller CA instead. Controllers commonly ship self-signed
	// certificates, so one of the two is usually set.
	Insecure bool   `json:"insecure"`
	CAFile   string `json:"ca_file"`

	// Timeout bounds each WS-Man HTTP exchange.
	Timeout Duration `json:"timeout"`

	// CacheTTL bounds how long enumeration results are served from memory.
	// Zero disables the read cache.
	CacheTTL Duration `json:"cache_ttl"`

	Readiness Readiness `json:"readiness"`
}

// Default returns the baseline configuration: HTTPS on 443 against /wsman,
// the readiness gate on, and a short read cache.
func Default() Config {
	return Config{
		Port:     DefaultPort,
		Path:     DefaultPath,
		Protocol: DefaultProtocol,
		Timeout:  DefaultTimeout,
		CacheTTL: DefaultCacheTTL,
		Readiness: Readiness{
			Wait:     true,
			Retries:  DefaultReadinessRetries,
			Interval: DefaultReadinessInterval,
		},
	}
}

// Load layers the JSON file at path (skipped when path is empty) and then
// the environment over Default. Credentials may still be absent afterwards;
// Validate is a separate step so callers can fill them from flags or a
// prompt first.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}

		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file '%s': %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var validate = validator.New()

// Validate reports whether the configuration is complete enough to build a
// client: endpoint pieces in range and credentials present.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// Endpoint assembles the WS-Man listener URL from the protocol, host, port,
// and path pieces.
func (c Config) Endpoint() string {
	path := c.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return fmt.Sprintf("%s://%s%s", c.Protocol, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), path)
}

// Environment variable names follow the JSON tags: GODRAC_ plus the
// uppercased tag, nested fields joined with underscores (readiness.interval
// becomes GODRAC_READINESS_INTERVAL).
func (c *Config) applyEnv() error {
	for _, s := range []struct {
		name string
		dst  *string
	}{
		{"HOST", &c.Host},
		{"PATH", &c.Path},
		{"PROTOCOL", &c.Protocol},
		{"USERNAME", &c.Username},
		{"PASSWORD", &c.Password},
		{"CA_FILE", &c.CAFile},
	} {
		if v := os.Getenv(envPrefix + s.name); v != "" {
			*s.dst = v
		}
	}

	if err := envInt(envPrefix+"PORT", &c.Port); err != nil {
		return err
	}

	if err := envBool(envPrefix+"INSECURE", &c.Insecure); err != nil {
		return err
	}

	if err := envDuration(envPrefix+"TIMEOUT", &c.Timeout); err != nil {
		return err
	}

	if err := envDuration(envPrefix+"CACHE_TTL", &c.CacheTTL); err != nil {
		return err
	}

	if err := envBool(envPrefix+"READINESS_WAIT", &c.Readiness.Wait); err != nil {
		return err
	}

	if err := envInt(envPrefix+"READINESS_RETRIES", &c.Readiness.Retries); err != nil {
		return err
	}

	return envDuration(envPrefix+"READINESS_INTERVAL", &c.Readiness.Interval)
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer value for %s: %w", name, err)
	}

	*dst = n

	return nil
}

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid boolean value for %s: %w", name, err)
	}

	*dst = b

	return nil
}

func envDuration(name string, dst *Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid duration value for %s: %w", name, err)
	}

	*dst = Duration(d)

	return nil
}

// Duration is a wrapper around time.Duration for JSON unmarshaling. It
// accepts either a number of nanoseconds or a duration string like "90s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}

		*d = Duration(tmp)
	default:
		return ErrInvalidDuration
	}

	return nil
}
