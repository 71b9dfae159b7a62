// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding the file values.
const (
	EnvAddress     = "GOACTOR_ADDRESS"
	EnvLogLevel    = "GOACTOR_LOG_LEVEL"
	EnvCompression = "GOACTOR_COMPRESSION"
)

// Load reads the YAML file at path over the defaults, applies the
// environment overrides and validates the result. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	config := New()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(config)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func applyEnv(config *Config) {
	if v, ok := os.LookupEnv(EnvAddress); ok && v != "" {
		config.Address = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		config.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvCompression); ok && v != "" {
		config.Compression = v
	}
}
