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

// Package provider defines the capability contract every vTDS provider layer
// implements. The mock provider in internal/providers/mock is the only
// implementation in this repository; real providers implement the same
// interfaces.
//
// Errors returned by implementations are *providerv1.OperationError values
// and can be matched with errors.Is against the providerv1 sentinels.
package provider

// NoLocalPort is the local port reported by a BladeConnection once it has
// been released.
const NoLocalPort = 0

// BladeConnection is a connection to a port on a single Virtual Blade.
// A connection is only valid inside the function passed to
// VirtualBlades.ConnectBlade or VirtualBlades.ConnectBlades.
type BladeConnection interface {
	// BladeType returns the Virtual Blade type of the connected blade.
	BladeType() string
	// BladeHostname returns the hostname of the connected blade.
	BladeHostname() string
	// RemotePort returns the port connected to on the blade.
	RemotePort() int
	// LocalIP returns the locally reachable IP address of the connection.
	LocalIP() string
	// LocalPort returns the locally reachable port of the connection, or
	// NoLocalPort once the connection has been released.
	LocalPort() int
	// Connected reports whether the connection is still established.
	Connected() bool
}

// VirtualBlades gives access to the Virtual Blades of a provider.
// Blades are referred to by blade type and instance number, where
// 0 <= instance < BladeCount(bladeType).
type VirtualBlades interface {
	// BladeTypes returns the names of all blade types that are not pure
	// base classes.
	BladeTypes() []string
	// BladeCount returns the number of instances of a blade type.
	BladeCount(bladeType string) (int, error)
	// BladeInterconnects returns the names of the Blade Interconnects a
	// blade type is attached to.
	BladeInterconnects(bladeType string) ([]string, error)
	// BladeHostname returns the hostname of a blade instance.
	BladeHostname(bladeType string, instance int) (string, error)
	// BladeIP returns the IP address of a blade instance on an interconnect.
	BladeIP(bladeType string, instance int, interconnect string) (string, error)
	// ConnectBlade connects to remotePort on a blade instance and calls fn
	// with the connection. The connection is released when ConnectBlade
	// returns, whether fn returns normally, returns an error or panics.
	ConnectBlade(remotePort int, bladeType string, instance int, fn func(BladeConnection) error) error
	// ConnectBlades connects to remotePort on every instance of every blade
	// type in bladeTypes (all blade types when bladeTypes is empty) and calls
	// fn with the connections. All connections made are released when
	// ConnectBlades returns, including when setting up a later connection
	// fails.
	ConnectBlades(remotePort int, bladeTypes []string, fn func([]BladeConnection) error) error
}

// BladeInterconnects gives access to the Blade Interconnects of a provider.
type BladeInterconnects interface {
	// InterconnectNames returns the network names of all interconnects
	// that are not pure base classes.
	InterconnectNames() ([]string, error)
	// IPv4CIDR returns the <IPv4>/<prefix-length> block of an interconnect.
	IPv4CIDR(interconnectName string) (string, error)
}

// Lifecycle is the set of operations that build and tear down a provider.
// Validate, Deploy, Dismantle, Restore and Remove require a prior Prepare.
type Lifecycle interface {
	Prepare() error
	Validate() error
	Deploy() error
	// Shutdown powers off the named blades, or all blades when none are
	// named, leaving them provisioned.
	Shutdown(bladeNames []string) error
	// Startup powers on the named blades, or all blades when none are named.
	Startup(bladeNames []string) error
	Dismantle() error
	Restore() error
	Remove() error
}

// Provider is a complete provider layer implementation.
type Provider interface {
	Lifecycle
	VirtualBlades() VirtualBlades
	BladeInterconnects() BladeInterconnects
}
