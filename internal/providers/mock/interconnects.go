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

package mock

import (
	"net/netip"
	"sort"

	providerv1 "github.com/alexandremahdhaoui/vtds-provider-mock/api/provider/v1"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/provider"
)

// BladeInterconnects answers Blade Interconnect queries from the provider
// configuration.
type BladeInterconnects struct {
	interconnects map[string]providerv1.BladeInterconnect
}

// Compile-time check that BladeInterconnects implements provider.BladeInterconnects
var _ provider.BladeInterconnects = (*BladeInterconnects)(nil)

// NewBladeInterconnects creates a BladeInterconnects registry over the
// blade_interconnects section of a provider configuration.
func NewBladeInterconnects(cfg *providerv1.ProviderConfig) *BladeInterconnects {
	var interconnects map[string]providerv1.BladeInterconnect
	if cfg != nil {
		interconnects = cfg.BladeInterconnects
	}
	return &BladeInterconnects{interconnects: interconnects}
}

// byNetworkName indexes the non-base interconnects by network_name.
func (b *BladeInterconnects) byNetworkName() (map[string]string, error) {
	keys := make([]string, 0, len(b.interconnects))
	for key := range b.interconnects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	index := make(map[string]string, len(keys))
	for _, key := range keys {
		interconnect := b.interconnects[key]
		if interconnect.PureBaseClass {
			continue
		}
		if interconnect.NetworkName == "" {
			return nil, providerv1.NewConfigurationError(
				"provider config error: 'network_name' not specified in blade interconnect %q "+
					"configured under 'provider.blade_interconnects'", key,
			)
		}
		if other, dup := index[interconnect.NetworkName]; dup {
			return nil, providerv1.NewConfigurationError(
				"provider config error: blade interconnects %q and %q share the network_name %q",
				other, key, interconnect.NetworkName,
			)
		}
		index[interconnect.NetworkName] = key
	}
	return index, nil
}

// InterconnectNames returns the network names of the non-base interconnects,
// sorted.
func (b *BladeInterconnects) InterconnectNames() ([]string, error) {
	index, err := b.byNetworkName()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// IPv4CIDR returns the IPv4 CIDR of an interconnect. The name is matched
// against configuration keys first and network names second.
func (b *BladeInterconnects) IPv4CIDR(interconnectName string) (string, error) {
	key, err := b.resolve(interconnectName)
	if err != nil {
		return "", err
	}

	interconnect := b.interconnects[key]
	if interconnect.IPv4CIDR == "" {
		return "", providerv1.NewConfigurationError(
			"provider layer configuration error: no 'ipv4_cidr' found in blade interconnect named %q",
			interconnectName,
		)
	}
	prefix, err := netip.ParsePrefix(interconnect.IPv4CIDR)
	if err != nil || !prefix.Addr().Is4() {
		return "", providerv1.NewConfigurationError(
			"provider layer configuration error: 'ipv4_cidr' %q of blade interconnect named %q is not an IPv4 CIDR",
			interconnect.IPv4CIDR, interconnectName,
		)
	}
	return interconnect.IPv4CIDR, nil
}

// resolve returns the configuration key of a non-base interconnect.
func (b *BladeInterconnects) resolve(name string) (string, error) {
	if interconnect, ok := b.interconnects[name]; ok && !interconnect.PureBaseClass {
		return name, nil
	}
	for key, interconnect := range b.interconnects {
		if !interconnect.PureBaseClass && interconnect.NetworkName == name {
			return key, nil
		}
	}
	return "", providerv1.NewNotFoundError("blade interconnect", name)
}
