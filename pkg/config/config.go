// Copyright 2025 Alexandre Mahdhaoui
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides the packaged base configuration and test overlay
// of the mock provider layer, and helpers to compose and decode vTDS
// configurations.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	providerv1 "github.com/alexandremahdhaoui/vtds-provider-mock/api/provider/v1"
)

const (
	// BaseConfigFile is the name of the packaged base configuration.
	BaseConfigFile = "config.yaml"
	// TestOverlayFile is the name of the packaged test overlay.
	TestOverlayFile = "test_overlay.yaml"
	// ProviderKey is the top level key of the provider subtree.
	ProviderKey = "provider"
)

var (
	//go:embed files/config.yaml
	baseConfig []byte
	//go:embed files/test_overlay.yaml
	testOverlay []byte
)

// BaseConfig returns the base configuration of the provider layer, for use
// in composing an overall vTDS configuration.
func BaseConfig() (map[string]any, error) {
	cfg, err := Parse(baseConfig)
	if err != nil {
		return nil, providerv1.WrapConfigurationError(err, "error parsing provider base config file %q", BaseConfigFile)
	}
	return cfg, nil
}

// BaseConfigText returns the text of the base configuration file, for
// displaying the configuration to users.
func BaseConfigText() string {
	return string(baseConfig)
}

// TestOverlayText returns the text of the test overlay file.
func TestOverlayText() string {
	return string(testOverlay)
}

// TestOverlay returns the pre-defined test overlay, for use in composing vTDS
// configurations for testing with this provider layer.
func TestOverlay() (map[string]any, error) {
	cfg, err := Parse(testOverlay)
	if err != nil {
		return nil, providerv1.WrapConfigurationError(err, "error parsing provider test config overlay file %q", TestOverlayFile)
	}
	return cfg, nil
}

// TestConfig returns the base configuration with the test overlay applied.
func TestConfig() (map[string]any, error) {
	base, err := BaseConfig()
	if err != nil {
		return nil, err
	}
	overlay, err := TestOverlay()
	if err != nil {
		return nil, err
	}
	return Merge(base, overlay)
}

// Parse parses YAML bytes into a configuration mapping.
// Empty data yields an empty mapping.
func Parse(data []byte) (map[string]any, error) {
	cfg := map[string]any{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, providerv1.WrapConfigurationError(err, "failed to parse YAML")
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	return cfg, nil
}

// ParseFile reads a YAML file and parses it into a configuration mapping.
func ParseFile(path string) (map[string]any, error) {
	if path == "" {
		return nil, providerv1.NewConfigurationError("file path cannot be empty")
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, providerv1.WrapConfigurationError(err, "cannot open config file %q", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, providerv1.WrapConfigurationError(err, "error parsing config file %q", path)
	}
	return cfg, nil
}

// Merge returns a new configuration with overlay applied on top of base.
// Mappings are merged recursively; scalars and sequences in overlay replace
// those in base. Neither argument is modified.
func Merge(base, overlay map[string]any) (map[string]any, error) {
	merged, err := clone(base)
	if err != nil {
		return nil, err
	}
	src, err := clone(overlay)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(&merged, src, mergo.WithOverride); err != nil {
		return nil, providerv1.WrapConfigurationError(err, "failed to merge configuration overlay")
	}
	return merged, nil
}

// ProviderConfig decodes the provider subtree of a merged vTDS configuration
// into its typed form.
func ProviderConfig(cfg map[string]any) (*providerv1.ProviderConfig, error) {
	raw, ok := cfg[ProviderKey]
	if !ok || raw == nil {
		return nil, providerv1.NewConfigurationError("no provider configuration found in top level configuration")
	}

	// Round-trip through YAML so nested mappings decode with the same rules
	// as the configuration files.
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, providerv1.WrapConfigurationError(err, "failed to marshal provider configuration")
	}

	var out providerv1.ProviderConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, providerv1.WrapConfigurationError(err, "malformed provider configuration")
	}
	if err := validate(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// validate checks the decoded provider configuration. Blade types are
// checked in name order so the reported error is stable.
func validate(cfg *providerv1.ProviderConfig) error {
	names := make([]string, 0, len(cfg.VirtualBlades))
	for name := range cfg.VirtualBlades {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if count := cfg.VirtualBlades[name].Count; count < 0 {
			return providerv1.NewOperationErrorWithDetails(
				providerv1.ErrCodeConfiguration,
				fmt.Sprintf("provider config error: Virtual Blade type %q has a negative count %d", name, count),
				map[string]any{"bladeType": name, "count": count},
			)
		}
	}
	return nil
}

// clone deep-copies a configuration mapping.
func clone(cfg map[string]any) (map[string]any, error) {
	if cfg == nil {
		return map[string]any{}, nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, providerv1.WrapConfigurationError(err, "failed to copy configuration")
	}
	return Parse(data)
}
