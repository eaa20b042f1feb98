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

package e2e_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	providerv1 "github.com/alexandremahdhaoui/vtds-provider-mock/api/provider/v1"
)

func TestToolsListed(t *testing.T) {
	env := setupTestEnv(t, nil)

	result, err := env.Session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"prepare", "validate", "deploy", "dismantle", "restore", "remove",
		"shutdown", "startup", "status",
		"blade_types", "blade_count", "blade_interconnects", "blade_hostname", "blade_ip", "connect_blades",
		"interconnect_names", "ipv4_cidr",
	}, names)
}

func TestFullLifecycle(t *testing.T) {
	env := setupTestEnv(t, nil)

	// Lifecycle operations are refused until prepare.
	for _, tool := range []string{"validate", "deploy", "dismantle", "restore", "remove"} {
		e := env.requireErrorCode(t, tool, nil, providerv1.ErrCodePrecondition)
		assert.Contains(t, e.Message, "call Prepare() first")
	}

	var status providerv1.LifecycleStatus
	env.mustCall(t, "prepare", nil, &status)
	assert.True(t, status.Prepared)
	assert.False(t, status.Deployed)
	assert.Equal(t, env.BuildDir, status.BuildDir)

	env.mustCall(t, "validate", nil, nil)
	env.mustCall(t, "deploy", nil, &status)
	assert.True(t, status.Deployed)

	env.mustCall(t, "shutdown", map[string]any{"blades": []string{"host-blade"}}, nil)
	env.mustCall(t, "startup", nil, nil)
	env.mustCall(t, "dismantle", nil, nil)
	env.mustCall(t, "restore", nil, nil)

	env.mustCall(t, "remove", nil, &status)
	assert.True(t, status.Prepared)
	assert.False(t, status.Deployed)

	env.mustCall(t, "status", nil, &status)
	assert.False(t, status.Deployed)
}

func TestBladeQueries(t *testing.T) {
	env := setupTestEnv(t, nil)

	var types []string
	env.mustCall(t, "blade_types", nil, &types)
	assert.Equal(t, []string{"gateway-blade", "host-blade"}, types)

	tests := []struct {
		bladeType string
		count     int
		hostnames []string
		ips       []string
	}{
		{"host-blade", 2, []string{"test-host-001", "test-host-002"}, []string{"10.100.0.1", "10.100.0.2"}},
		{"gateway-blade", 1, []string{"test-gateway-001"}, []string{"10.100.1.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.bladeType, func(t *testing.T) {
			var count int
			env.mustCall(t, "blade_count", map[string]any{"bladeType": tt.bladeType}, &count)
			assert.Equal(t, tt.count, count)

			for i := 0; i < count; i++ {
				args := map[string]any{"bladeType": tt.bladeType, "instance": i, "interconnect": "test-interconnect"}

				var hostname, ip string
				env.mustCall(t, "blade_hostname", args, &hostname)
				env.mustCall(t, "blade_ip", args, &ip)
				assert.Equal(t, tt.hostnames[i], hostname)
				assert.Equal(t, tt.ips[i], ip)
			}

			env.requireErrorCode(t, "blade_hostname",
				map[string]any{"bladeType": tt.bladeType, "instance": count}, providerv1.ErrCodeInvalidArgument)
		})
	}

	env.requireErrorCode(t, "blade_count", map[string]any{"bladeType": "base-blade"}, providerv1.ErrCodeNotFound)
	env.requireErrorCode(t, "blade_count", map[string]any{"bladeType": "no-such-blade"}, providerv1.ErrCodeNotFound)
}

func TestInterconnectQueries(t *testing.T) {
	env := setupTestEnv(t, nil)

	var names []string
	env.mustCall(t, "interconnect_names", nil, &names)
	assert.Equal(t, []string{"blade-interconnect", "test-interconnect"}, names)

	var cidr string
	env.mustCall(t, "ipv4_cidr", map[string]any{"name": "test-interconnect"}, &cidr)
	assert.Equal(t, "10.100.0.0/16", cidr)

	env.requireErrorCode(t, "ipv4_cidr", map[string]any{"name": "no-such-net"}, providerv1.ErrCodeNotFound)
}

func TestMisconfiguredInterconnect(t *testing.T) {
	env := setupTestEnv(t, map[string]any{
		"provider": map[string]any{
			"blade_interconnects": map[string]any{
				"bare": map[string]any{"network_name": "bare"},
			},
		},
	})

	e := env.requireErrorCode(t, "ipv4_cidr", map[string]any{"name": "bare"}, providerv1.ErrCodeConfiguration)
	assert.Contains(t, e.Message, "ipv4_cidr")
	assert.Contains(t, e.Message, "bare")
}

func TestConnectBlades(t *testing.T) {
	env := setupTestEnv(t, nil)

	var states []providerv1.ConnectionState
	env.mustCall(t, "connect_blades", map[string]any{"remotePort": 22}, &states)

	require.Len(t, states, 3)
	hostnames := make([]string, 0, len(states))
	for _, s := range states {
		hostnames = append(hostnames, s.BladeHostname)
		assert.Equal(t, 22, s.RemotePort)
		assert.Equal(t, "127.0.0.1", s.LocalIP)
		assert.Equal(t, 12345, s.LocalPort)
	}
	assert.ElementsMatch(t, []string{"test-gateway-001", "test-host-001", "test-host-002"}, hostnames)
	assert.Equal(t, 0, env.Layer.OpenConnections())

	env.requireErrorCode(t, "connect_blades",
		map[string]any{"remotePort": 22, "bladeTypes": []string{"host-blade", "no-such-blade"}},
		providerv1.ErrCodeNotFound)
	assert.Equal(t, 0, env.Layer.OpenConnections())
}
