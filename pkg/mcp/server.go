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

// Package mcp exposes the mock provider layer API as MCP tools so that test
// harnesses outside the Go process can drive it.
package mcp

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/layer"
)

// Server wraps the MCP server for the provider layer.
type Server struct {
	server *mcp.Server
	layer  *layer.LayerAPI
	name   string
	log    logr.Logger
}

// NewServer creates a new MCP server exposing every LayerAPI operation as a
// tool.
func NewServer(l *layer.LayerAPI, name, version string, log logr.Logger) (*Server, error) {
	if l == nil {
		return nil, fmt.Errorf("layer API cannot be nil")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	s := &Server{
		server: server,
		layer:  l,
		name:   name,
		log:    log,
	}

	// Lifecycle tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "prepare",
		Description: "Prepare the provider for deployment",
	}, s.makePrepareHandler())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate the prepared provider configuration",
	}, s.makeLifecycleHandler("validate", l.Validate))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "deploy",
		Description: "Deploy the prepared provider",
	}, s.makeLifecycleHandler("deploy", l.Deploy))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dismantle",
		Description: "De-provision all Virtual Blades",
	}, s.makeLifecycleHandler("dismantle", l.Dismantle))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "restore",
		Description: "Re-provision de-provisioned Virtual Blades",
	}, s.makeLifecycleHandler("restore", l.Restore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove",
		Description: "Remove all resources provisioned for the provider",
	}, s.makeLifecycleHandler("remove", l.Remove))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "shutdown",
		Description: "Power off Virtual Blades (all when none are named)",
	}, s.makePowerHandler("shutdown", l.Shutdown))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "startup",
		Description: "Power on Virtual Blades (all when none are named)",
	}, s.makePowerHandler("startup", l.Startup))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Get the lifecycle status of the provider",
	}, s.makeStatusHandler())

	// Virtual Blade tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "blade_types",
		Description: "List Virtual Blade types",
	}, s.makeBladeTypesHandler())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "blade_count",
		Description: "Get the number of instances of a Virtual Blade type",
	}, s.makeBladeCountHandler())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "blade_interconnects",
		Description: "List the Blade Interconnects a Virtual Blade type is attached to",
	}, s.makeBladeInterconnectsHandler())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "blade_hostname",
		Description: "Get the hostname of a Virtual Blade instance",
	}, s.makeBladeHostnameHandler())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "blade_ip",
		Description: "Get the IP address of a Virtual Blade instance on an interconnect",
	}, s.makeBladeIPHandler())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "connect_blades",
		Description: "Connect to a port on Virtual Blades and report the connections",
	}, s.makeConnectBladesHandler())

	// Blade Interconnect tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "interconnect_names",
		Description: "List Blade Interconnect network names",
	}, s.makeInterconnectNamesHandler())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ipv4_cidr",
		Description: "Get the IPv4 CIDR of a Blade Interconnect",
	}, s.makeIPv4CIDRHandler())

	log.Info("MCP server initialized", "name", name, "version", version)
	return s, nil
}

// Run starts the MCP server loop.
// It reads JSON-RPC requests from stdin and writes responses to stdout.
// Logs must not go to stdout while the server runs.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("Starting MCP server")
	if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		s.log.Error(err, "MCP server failed")
		return err
	}
	return nil
}

// Connect serves a single session over the given transport and returns
// without waiting for it to end.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}
