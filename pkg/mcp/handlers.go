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

package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	providerv1 "github.com/alexandremahdhaoui/vtds-provider-mock/api/provider/v1"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/provider"
)

// errorResult creates a standardized MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// toMCPResult converts a provider OperationResult to an MCP CallToolResult.
// The OperationResult is serialized as JSON in the text content for both
// successes and failures, so clients can read the error code.
func toMCPResult(result *providerv1.OperationResult) *mcp.CallToolResult {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return errorResult("failed to serialize result: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(resultJSON)},
		},
		IsError: !result.Success,
	}
}

// respond builds the tool response for an operation outcome and logs failures.
func (s *Server) respond(tool string, resource any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		s.log.Info("Tool call failed", "tool", tool, "error", err.Error())
	}
	return toMCPResult(providerv1.ResultOf(resource, err)), nil, nil
}

func (s *Server) makePrepareHandler() func(context.Context, *mcp.CallToolRequest, providerv1.EmptyRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.EmptyRequest) (*mcp.CallToolResult, any, error) {
		s.log.V(1).Info("prepare called")
		if err := s.layer.Prepare(); err != nil {
			return s.respond("prepare", nil, err)
		}
		return s.respond("prepare", s.layer.Status(), nil)
	}
}

// makeLifecycleHandler creates the handler for a lifecycle tool that takes
// no input and reports the resulting status.
func (s *Server) makeLifecycleHandler(tool string, op func() error) func(context.Context, *mcp.CallToolRequest, providerv1.EmptyRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.EmptyRequest) (*mcp.CallToolResult, any, error) {
		s.log.V(1).Info("lifecycle tool called", "tool", tool)
		if err := op(); err != nil {
			return s.respond(tool, nil, err)
		}
		return s.respond(tool, s.layer.Status(), nil)
	}
}

// makePowerHandler creates the handler for shutdown and startup.
func (s *Server) makePowerHandler(tool string, op func([]string) error) func(context.Context, *mcp.CallToolRequest, providerv1.BladeNamesRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.BladeNamesRequest) (*mcp.CallToolResult, any, error) {
		s.log.V(1).Info("power tool called", "tool", tool, "blades", input.Blades)
		return s.respond(tool, nil, op(input.Blades))
	}
}

func (s *Server) makeStatusHandler() func(context.Context, *mcp.CallToolRequest, providerv1.EmptyRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.EmptyRequest) (*mcp.CallToolResult, any, error) {
		return s.respond("status", s.layer.Status(), nil)
	}
}

func (s *Server) makeBladeTypesHandler() func(context.Context, *mcp.CallToolRequest, providerv1.EmptyRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.EmptyRequest) (*mcp.CallToolResult, any, error) {
		return s.respond("blade_types", s.layer.VirtualBlades().BladeTypes(), nil)
	}
}

func (s *Server) makeBladeCountHandler() func(context.Context, *mcp.CallToolRequest, providerv1.BladeTypeRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.BladeTypeRequest) (*mcp.CallToolResult, any, error) {
		count, err := s.layer.VirtualBlades().BladeCount(input.BladeType)
		return s.respond("blade_count", count, err)
	}
}

func (s *Server) makeBladeInterconnectsHandler() func(context.Context, *mcp.CallToolRequest, providerv1.BladeTypeRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.BladeTypeRequest) (*mcp.CallToolResult, any, error) {
		names, err := s.layer.VirtualBlades().BladeInterconnects(input.BladeType)
		return s.respond("blade_interconnects", names, err)
	}
}

func (s *Server) makeBladeHostnameHandler() func(context.Context, *mcp.CallToolRequest, providerv1.BladeInstanceRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.BladeInstanceRequest) (*mcp.CallToolResult, any, error) {
		hostname, err := s.layer.VirtualBlades().BladeHostname(input.BladeType, input.Instance)
		return s.respond("blade_hostname", hostname, err)
	}
}

func (s *Server) makeBladeIPHandler() func(context.Context, *mcp.CallToolRequest, providerv1.BladeInstanceRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.BladeInstanceRequest) (*mcp.CallToolResult, any, error) {
		ip, err := s.layer.VirtualBlades().BladeIP(input.BladeType, input.Instance, input.Interconnect)
		return s.respond("blade_ip", ip, err)
	}
}

// makeConnectBladesHandler connects to the requested blades, records each
// connection while it is open and releases them all before responding.
func (s *Server) makeConnectBladesHandler() func(context.Context, *mcp.CallToolRequest, providerv1.ConnectBladesRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.ConnectBladesRequest) (*mcp.CallToolResult, any, error) {
		s.log.V(1).Info("connect_blades called", "remotePort", input.RemotePort, "bladeTypes", input.BladeTypes)

		var states []providerv1.ConnectionState
		err := s.layer.VirtualBlades().ConnectBlades(input.RemotePort, input.BladeTypes, func(conns []provider.BladeConnection) error {
			states = make([]providerv1.ConnectionState, 0, len(conns))
			for _, c := range conns {
				states = append(states, providerv1.ConnectionState{
					BladeType:     c.BladeType(),
					BladeHostname: c.BladeHostname(),
					RemotePort:    c.RemotePort(),
					LocalIP:       c.LocalIP(),
					LocalPort:     c.LocalPort(),
				})
			}
			return nil
		})
		return s.respond("connect_blades", states, err)
	}
}

func (s *Server) makeInterconnectNamesHandler() func(context.Context, *mcp.CallToolRequest, providerv1.EmptyRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.EmptyRequest) (*mcp.CallToolResult, any, error) {
		names, err := s.layer.BladeInterconnects().InterconnectNames()
		return s.respond("interconnect_names", names, err)
	}
}

func (s *Server) makeIPv4CIDRHandler() func(context.Context, *mcp.CallToolRequest, providerv1.InterconnectRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input providerv1.InterconnectRequest) (*mcp.CallToolResult, any, error) {
		cidr, err := s.layer.BladeInterconnects().IPv4CIDR(input.Name)
		return s.respond("ipv4_cidr", cidr, err)
	}
}
