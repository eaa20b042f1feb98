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
	"github.com/go-logr/logr"

	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/provider"
)

const (
	// LocalIP is the local address reported by every simulated connection.
	LocalIP = "127.0.0.1"
	// LocalPort is the local port assigned to every simulated connection.
	LocalPort = 12345
)

// BladeConnection is a simulated connection to a port on a Virtual Blade.
// No socket is opened: connecting assigns LocalPort and releasing clears it.
type BladeConnection struct {
	bladeType  string
	hostname   string
	remotePort int
	localIP    string
	localPort  int

	log       logr.Logger
	onRelease func(*BladeConnection)
}

// Compile-time check that BladeConnection implements provider.BladeConnection
var _ provider.BladeConnection = (*BladeConnection)(nil)

// newBladeConnection creates a connection and connects it.
func newBladeConnection(log logr.Logger, hostname string, remotePort int, bladeType string, onRelease func(*BladeConnection)) *BladeConnection {
	c := &BladeConnection{
		bladeType:  bladeType,
		hostname:   hostname,
		remotePort: remotePort,
		localIP:    LocalIP,
		localPort:  provider.NoLocalPort,
		log:        log,
		onRelease:  onRelease,
	}
	c.connect()
	return c
}

func (c *BladeConnection) connect() {
	c.log.Info("Connecting to blade", "hostname", c.hostname, "bladeType", c.bladeType, "port", c.remotePort)
	c.localPort = LocalPort
}

// disconnect drops the connection. Calling it more than once is a no-op.
func (c *BladeConnection) disconnect() {
	if c.localPort == provider.NoLocalPort {
		return
	}
	c.log.V(1).Info("Disconnecting from blade", "hostname", c.hostname, "bladeType", c.bladeType, "port", c.remotePort)
	c.localPort = provider.NoLocalPort
	if c.onRelease != nil {
		c.onRelease(c)
	}
}

// BladeType implements provider.BladeConnection.
func (c *BladeConnection) BladeType() string { return c.bladeType }

// BladeHostname implements provider.BladeConnection.
func (c *BladeConnection) BladeHostname() string { return c.hostname }

// RemotePort implements provider.BladeConnection.
func (c *BladeConnection) RemotePort() int { return c.remotePort }

// LocalIP implements provider.BladeConnection.
func (c *BladeConnection) LocalIP() string { return c.localIP }

// LocalPort implements provider.BladeConnection.
func (c *BladeConnection) LocalPort() int { return c.localPort }

// Connected implements provider.BladeConnection.
func (c *BladeConnection) Connected() bool { return c.localPort != provider.NoLocalPort }
