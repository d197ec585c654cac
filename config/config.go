/*
 * Copyright 2025 The RuleGo Authors.
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

// Package config lets a host describe an Engine's window selectors and
// size declaratively instead of wiring window.Builder calls by hand. It
// is a much smaller, window-shaped counterpart to teacher's
// types/config.go (a SQL engine's sprawling Config/WindowConfig), using
// the same gopkg.in/yaml.v3 dependency teacher already carries as an
// indirect requirement (promoted to direct here).
package config

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rulego/streamwindow/streamerr"
)

// EngineConfig is the declarative shape of an Engine's required
// construction parameters (spec §6's window_size_sec, key_selector,
// value_selector) plus the ambient fields a deployment typically wants
// to externalize.
type EngineConfig struct {
	WindowSizeSec uint16 `yaml:"window_size_sec"`
	KeySelector   string `yaml:"key_selector"`
	ValueSelector string `yaml:"value_selector"`
	TimeField     string `yaml:"time_field"`
	LogLevel      string `yaml:"log_level"`
}

// LoadYAML parses an EngineConfig from r.
func LoadYAML(r io.Reader) (EngineConfig, error) {
	var cfg EngineConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return EngineConfig{}, streamerr.Wrap(streamerr.KindConfigInvalid, "decode yaml config", err)
	}
	return cfg, nil
}

// LoadYAMLFile opens and parses path as an EngineConfig.
func LoadYAMLFile(path string) (EngineConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return EngineConfig{}, streamerr.Wrap(streamerr.KindConfigInvalid, "open config file", err)
	}
	defer f.Close()
	return LoadYAML(f)
}
