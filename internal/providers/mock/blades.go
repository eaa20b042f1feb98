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
	"sort"
	"sync"

	"github.com/go-logr/logr"

	providerv1 "github.com/alexandremahdhaoui/vtds-provider-mock/api/provider/v1"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/provider"
)

// VirtualBlades answers Virtual Blade queries from the provider configuration
// and hands out simulated connections.
type VirtualBlades struct {
	blades map[string]providerv1.VirtualBlade
	log    logr.Logger

	mu   sync.Mutex
	open map[*BladeConnection]struct{}
}

// Compile-time check that VirtualBlades implements provider.VirtualBlades
var _ provider.VirtualBlades = (*VirtualBlades)(nil)

// NewVirtualBlades creates a VirtualBlades registry over the virtual_blades
// section of a provider configuration.
func NewVirtualBlades(cfg *providerv1.ProviderConfig, log logr.Logger) *VirtualBlades {
	var blades map[string]providerv1.VirtualBlade
	if cfg != nil {
		blades = cfg.VirtualBlades
	}
	return &VirtualBlades{
		blades: blades,
		log:    log,
		open:   make(map[*BladeConnection]struct{}),
	}
}

// blade returns the configuration of a blade type. Pure base classes are
// templates and cannot be looked up.
func (v *VirtualBlades) blade(bladeType string) (providerv1.VirtualBlade, error) {
	blade, ok := v.blades[bladeType]
	if !ok || blade.PureBaseClass {
		return providerv1.VirtualBlade{}, providerv1.NewNotFoundError("blade type", bladeType)
	}
	if blade.Count < 0 {
		return providerv1.VirtualBlade{}, providerv1.NewConfigurationError(
			"provider config error: Virtual Blade type %q has a negative count %d", bladeType, blade.Count,
		)
	}
	return blade, nil
}

// checkInstance returns the blade configuration if instance is a valid
// instance number for the blade type.
func (v *VirtualBlades) checkInstance(bladeType string, instance int) (providerv1.VirtualBlade, error) {
	blade, err := v.blade(bladeType)
	if err != nil {
		return providerv1.VirtualBlade{}, err
	}
	if instance < 0 || instance >= blade.Count {
		return providerv1.VirtualBlade{}, providerv1.NewInvalidArgumentError(
			"instance number %d out of range for Virtual Blade type %q which has a count of %d",
			instance, bladeType, blade.Count,
		)
	}
	return blade, nil
}

// BladeTypes returns the non-base blade type names sorted by name.
func (v *VirtualBlades) BladeTypes() []string {
	names := make([]string, 0, len(v.blades))
	for name, blade := range v.blades {
		if blade.PureBaseClass {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BladeCount implements provider.VirtualBlades.
func (v *VirtualBlades) BladeCount(bladeType string) (int, error) {
	blade, err := v.blade(bladeType)
	if err != nil {
		return 0, err
	}
	return blade.Count, nil
}

// BladeInterconnects returns the interconnect names of a blade type ordered
// by their keys in the blade's interconnects section.
func (v *VirtualBlades) BladeInterconnects(bladeType string) ([]string, error) {
	blade, err := v.blade(bladeType)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(blade.Interconnects))
	for key := range blade.Interconnects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, blade.Interconnects[key].Name)
	}
	return names, nil
}

// BladeHostname implements provider.VirtualBlades.
func (v *VirtualBlades) BladeHostname(bladeType string, instance int) (string, error) {
	blade, err := v.checkInstance(bladeType, instance)
	if err != nil {
		return "", err
	}
	if instance >= len(blade.Hostnames) {
		return "", providerv1.NewConfigurationError(
			"Virtual Blade type %q has %d hostnames configured but a count of %d",
			bladeType, len(blade.Hostnames), blade.Count,
		)
	}
	return blade.Hostnames[instance], nil
}

// BladeIP returns the IP address of a blade instance. Each instance has a
// single configured address, so the interconnect name does not take part in
// the lookup.
func (v *VirtualBlades) BladeIP(bladeType string, instance int, interconnect string) (string, error) {
	blade, err := v.checkInstance(bladeType, instance)
	if err != nil {
		return "", err
	}
	if instance >= len(blade.IPs) {
		return "", providerv1.NewConfigurationError(
			"Virtual Blade type %q has %d ips configured but a count of %d",
			bladeType, len(blade.IPs), blade.Count,
		)
	}
	return blade.IPs[instance], nil
}

// ConnectBlade implements provider.VirtualBlades.
func (v *VirtualBlades) ConnectBlade(remotePort int, bladeType string, instance int, fn func(provider.BladeConnection) error) error {
	conn, err := v.connect(remotePort, bladeType, instance)
	if err != nil {
		return err
	}
	defer conn.disconnect()

	return fn(conn)
}

// ConnectBlades implements provider.VirtualBlades.
func (v *VirtualBlades) ConnectBlades(remotePort int, bladeTypes []string, fn func([]provider.BladeConnection) error) error {
	if len(bladeTypes) == 0 {
		bladeTypes = v.BladeTypes()
	}

	var conns []*BladeConnection
	defer func() {
		for _, conn := range conns {
			conn.disconnect()
		}
	}()

	for _, bladeType := range bladeTypes {
		count, err := v.BladeCount(bladeType)
		if err != nil {
			return err
		}
		for instance := 0; instance < count; instance++ {
			conn, err := v.connect(remotePort, bladeType, instance)
			if err != nil {
				return err
			}
			conns = append(conns, conn)
		}
	}

	out := make([]provider.BladeConnection, len(conns))
	for i, conn := range conns {
		out[i] = conn
	}
	return fn(out)
}

// OpenConnections returns the number of connections that have been made and
// not yet released.
func (v *VirtualBlades) OpenConnections() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.open)
}

// connect creates a connection to a blade instance and tracks it until it is
// released.
func (v *VirtualBlades) connect(remotePort int, bladeType string, instance int) (*BladeConnection, error) {
	hostname, err := v.BladeHostname(bladeType, instance)
	if err != nil {
		return nil, err
	}

	conn := newBladeConnection(v.log, hostname, remotePort, bladeType, v.release)

	v.mu.Lock()
	v.open[conn] = struct{}{}
	v.mu.Unlock()

	return conn, nil
}

func (v *VirtualBlades) release(conn *BladeConnection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.open, conn)
}
