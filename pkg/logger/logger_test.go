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

package logger

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	config := &Config{
		Level:  "debug",
		Output: "stdout",
	}

	log, err := New(context.Background(), config)
	if err != nil {
		t.Fatalf("Failed to build logger: %v", err)
	}

	if log == nil {
		t.Fatal("New returned a nil logger")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	config := &Config{Level: "shouting"}

	if _, err := New(context.Background(), config); err == nil {
		t.Error("Expected error for invalid level")
	}
}

func TestNewNilConfigUsesDefaults(t *testing.T) {
	log, err := New(context.Background(), nil)
	if err != nil {
		t.Fatalf("Failed to build logger with nil config: %v", err)
	}

	if log == nil {
		t.Fatal("New returned a nil logger")
	}
}

func TestNewComponentLogger(t *testing.T) {
	log, err := NewComponentLogger(context.Background(), "gateway", &Config{Level: "info"})
	if err != nil {
		t.Fatalf("Failed to build component logger: %v", err)
	}

	if log == nil {
		t.Fatal("NewComponentLogger returned a nil logger")
	}

	// Chained component loggers must not share state with the parent.
	child := log.WithComponent("jobs")
	if child == log {
		t.Error("WithComponent should return a new logger")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Level == "" {
		t.Error("Default config should have a level set")
	}

	if config.Output == "" {
		t.Error("Default config should have an output set")
	}
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Duration
		wantErr  bool
	}{
		{
			name:     "string duration",
			input:    `"5s"`,
			expected: Duration(5 * time.Second),
		},
		{
			name:     "numeric duration (nanoseconds)",
			input:    `5000000000`,
			expected: Duration(5 * time.Second),
		},
		{
			name:     "complex duration string",
			input:    `"1h30m45s"`,
			expected: Duration(1*time.Hour + 30*time.Minute + 45*time.Second),
		},
		{
			name:    "invalid duration string",
			input:   `"invalid"`,
			wantErr: true,
		},
		{
			name:    "invalid type",
			input:   `true`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}

				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if d != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, d)
			}
		})
	}
}

func TestOTelConfig_JSONUnmarshaling(t *testing.T) {
	configJSON := `{
		"enabled": true,
		"endpoint": "localhost:4317",
		"service_name": "godrac-test",
		"batch_timeout": "10s",
		"insecure": true,
		"headers": {
			"x-api-key": "test-key"
		}
	}`

	var config OTelConfig

	if err := json.Unmarshal([]byte(configJSON), &config); err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if !config.Enabled {
		t.Error("Expected Enabled to be true")
	}

	if config.Endpoint != "localhost:4317" {
		t.Errorf("Expected endpoint localhost:4317, got %s", config.Endpoint)
	}

	if config.BatchTimeout != Duration(10*time.Second) {
		t.Errorf("Expected batch_timeout 10s, got %v", config.BatchTimeout)
	}

	if config.Headers["x-api-key"] != "test-key" {
		t.Errorf("Expected x-api-key header test-key, got %s", config.Headers["x-api-key"])
	}
}
