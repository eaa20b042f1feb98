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

// Package providerv1 defines resource types for provider communication.
// These types describe the provider subtree of a vTDS configuration.
package providerv1

// ProviderConfig is the typed form of the "provider" subtree of a vTDS
// configuration. Only the parts the mock provider reads are modeled.
type ProviderConfig struct {
	// VirtualBlades maps blade type names to their configuration.
	VirtualBlades map[string]VirtualBlade `yaml:"virtual_blades,omitempty" json:"virtualBlades,omitempty"`
	// BladeInterconnects maps interconnect names to their configuration.
	BladeInterconnects map[string]BladeInterconnect `yaml:"blade_interconnects,omitempty" json:"bladeInterconnects,omitempty"`
}

// VirtualBlade describes a class of virtual blades.
type VirtualBlade struct {
	// PureBaseClass marks a template entry excluded from enumeration and lookup.
	PureBaseClass bool `yaml:"pure_base_class,omitempty" json:"pureBaseClass,omitempty"`
	// Count is the number of blade instances of this type.
	Count int `yaml:"count,omitempty" json:"count,omitempty"`
	// Hostnames holds one hostname per instance, indexed by instance number.
	Hostnames []string `yaml:"hostnames,omitempty" json:"hostnames,omitempty"`
	// IPs holds one IP address per instance, indexed by instance number.
	IPs []string `yaml:"ips,omitempty" json:"ips,omitempty"`
	// Interconnects maps a local key to the interconnect the blade attaches to.
	Interconnects map[string]BladeInterconnectRef `yaml:"interconnects,omitempty" json:"interconnects,omitempty"`
}

// BladeInterconnectRef references a blade interconnect from a blade type.
type BladeInterconnectRef struct {
	// Name is the interconnect name.
	Name string `yaml:"name" json:"name"`
}

// BladeInterconnect describes a simulated network blades attach to.
type BladeInterconnect struct {
	// PureBaseClass marks a template entry excluded from enumeration and lookup.
	PureBaseClass bool `yaml:"pure_base_class,omitempty" json:"pureBaseClass,omitempty"`
	// NetworkName is the externally visible name of the interconnect.
	NetworkName string `yaml:"network_name,omitempty" json:"networkName,omitempty"`
	// IPv4CIDR is the interconnect address block in <IPv4>/<prefix-length> form.
	IPv4CIDR string `yaml:"ipv4_cidr,omitempty" json:"ipv4CIDR,omitempty"`
}
