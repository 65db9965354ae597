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

// Package logger provides JSON structured logging using zerolog.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the structured logging interface injected into every component.
type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	Panic() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) Logger
	SetLevel(level zerolog.Level)
}

type zlogger struct {
	log zerolog.Logger
}

// New builds a Logger from config. A nil config uses DefaultConfig. The
// context is only used to initialize the OTel exporter when enabled.
func New(ctx context.Context, config *Config) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var output io.Writer = os.Stdout
	if config.Output == "stderr" {
		output = os.Stderr
	}

	level := zerolog.InfoLevel

	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
	}

	timeFormat := time.RFC3339
	if config.TimeFormat != "" {
		timeFormat = config.TimeFormat
	}

	zerolog.TimeFieldFormat = timeFormat

	if config.OTel.Enabled && config.OTel.Endpoint != "" {
		otelWriter, err := NewOTELWriter(ctx, config.OTel)
		if err != nil {
			return nil, err
		}

		output = NewMultiWriter(output, otelWriter)
	}

	zl := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &zlogger{log: zl}, nil
}

// NewComponentLogger builds a Logger pre-tagged with a component field so
// log lines from different subsystems can be told apart.
func NewComponentLogger(ctx context.Context, component string, config *Config) (Logger, error) {
	base, err := New(ctx, config)
	if err != nil {
		return nil, err
	}

	return base.WithComponent(component), nil
}

// NewTestLogger creates a no-op logger for testing that discards all output.
func NewTestLogger() Logger {
	return &zlogger{log: zerolog.New(io.Discard).Level(zerolog.Disabled)}
}

func (l *zlogger) Trace() *zerolog.Event { return l.log.Trace() }
func (l *zlogger) Debug() *zerolog.Event { return l.log.Debug() }
func (l *zlogger) Info() *zerolog.Event  { return l.log.Info() }
func (l *zlogger) Warn() *zerolog.Event  { return l.log.Warn() }
func (l *zlogger) Error() *zerolog.Event { return l.log.Error() }
func (l *zlogger) Fatal() *zerolog.Event { return l.log.Fatal() }
func (l *zlogger) Panic() *zerolog.Event { return l.log.Panic() }
func (l *zlogger) With() zerolog.Context { return l.log.With() }

func (l *zlogger) WithComponent(component string) Logger {
	return &zlogger{log: l.log.With().Str("component", component).Logger()}
}

func (l *zlogger) SetLevel(level zerolog.Level) {
	l.log = l.log.Level(level)
}
