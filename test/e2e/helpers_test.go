//go:build e2e

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

// Package e2e_test provides end-to-end tests for vtds-provider-mock.
// These tests drive the provider layer through an MCP client session the
// way an external test harness would.
package e2e_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	providerv1 "github.com/alexandremahdhaoui/vtds-provider-mock/api/provider/v1"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/config"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/layer"
	mcpserver "github.com/alexandremahdhaoui/vtds-provider-mock/pkg/mcp"
)

// TestEnv wraps a connected client session and the layer it drives.
type TestEnv struct {
	// Layer is the provider layer served by the MCP server.
	Layer *layer.LayerAPI
	// Session is the client side of the MCP session.
	Session *mcp.ClientSession
	// BuildDir is the scratch build directory of the layer.
	BuildDir string
}

// toolResult is the decoded OperationResult of a tool call.
type toolResult struct {
	Success  bool                       `json:"success"`
	Error    *providerv1.OperationError `json:"error,omitempty"`
	Resource json.RawMessage            `json:"resource,omitempty"`
	IsError  bool                       `json:"-"`
}

// setupTestEnv serves a layer built from cfg and connects a client to it.
// A nil cfg selects the packaged test configuration.
func setupTestEnv(t *testing.T, cfg map[string]any) *TestEnv {
	t.Helper()

	if cfg == nil {
		var err error
		cfg, err = config.TestConfig()
		require.NoError(t, err, "failed to load test configuration")
	}

	buildDir := t.TempDir()
	l, err := layer.New(nil, cfg, buildDir, layer.WithLogger(logr.Discard()))
	require.NoError(t, err, "failed to create provider layer")

	server, err := mcpserver.NewServer(l, "vtds-provider-mock", "e2e", logr.Discard())
	require.NoError(t, err, "failed to create MCP server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport)
	require.NoError(t, err, "failed to connect server")
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "e2e-client", Version: "e2e"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "failed to connect client")
	t.Cleanup(func() { _ = session.Close() })

	return &TestEnv{
		Layer:    l,
		Session:  session,
		BuildDir: buildDir,
	}
}

// call invokes a tool and decodes its OperationResult.
func (e *TestEnv) call(t *testing.T, tool string, args map[string]any) toolResult {
	t.Helper()

	if args == nil {
		args = map[string]any{}
	}
	result, err := e.Session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	require.NoError(t, err, "tool %s failed at the protocol level", tool)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "tool %s returned %T", tool, result.Content[0])

	var out toolResult
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out), "tool %s returned %q", tool, text.Text)
	out.IsError = result.IsError
	return out
}

// mustCall invokes a tool, requires success and decodes the resource into v.
func (e *TestEnv) mustCall(t *testing.T, tool string, args map[string]any, v any) {
	t.Helper()

	out := e.call(t, tool, args)
	require.True(t, out.Success, "tool %s failed: %v", tool, out.Error)
	require.False(t, out.IsError)
	if v != nil {
		require.NoError(t, json.Unmarshal(out.Resource, v))
	}
}

// requireErrorCode invokes a tool and requires it to fail with code.
func (e *TestEnv) requireErrorCode(t *testing.T, tool string, args map[string]any, code string) *providerv1.OperationError {
	t.Helper()

	out := e.call(t, tool, args)
	require.False(t, out.Success, "tool %s succeeded, want %s", tool, code)
	require.True(t, out.IsError)
	require.NotNil(t, out.Error)
	require.Equal(t, code, out.Error.Code, "tool %s: %s", tool, out.Error.Message)
	return out.Error
}
