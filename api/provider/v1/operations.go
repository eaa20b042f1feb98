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
// This file contains operation types for provider request/response handling.
package providerv1

// OperationResult is the standard response for all provider operations
// exposed over MCP.
type OperationResult struct {
	// Success indicates if the operation completed successfully.
	Success bool `json:"success"`
	// Error contains error details if Success is false.
	Error *OperationError `json:"error,omitempty"`
	// Resource contains the operation output if Success is true.
	Resource any `json:"resource,omitempty"`
}

// OperationError provides structured error information.
// It implements the error interface so the same value is returned by the Go
// API and serialized on the MCP surface.
type OperationError struct {
	// Code is a machine-readable error code.
	Code string `json:"code"`
	// Message is a human-readable error description.
	Message string `json:"message"`
	// Details contains additional error context.
	Details map[string]any `json:"details,omitempty"`
}

// Standard error codes.
const (
	ErrCodeConfiguration   = "CONFIGURATION_ERROR" // Required configuration missing or malformed
	ErrCodeNotFound        = "NOT_FOUND"           // Unknown blade type or interconnect
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"    // Instance index out of range
	ErrCodePrecondition    = "PRECONDITION_FAILED" // Lifecycle operation before prepare
)

// LifecycleStatus reports the lifecycle flags mirrored by the layer API.
type LifecycleStatus struct {
	Prepared bool   `json:"prepared"`
	Deployed bool   `json:"deployed"`
	BuildDir string `json:"buildDir,omitempty"`
}

// EmptyRequest is the input for operations that take no arguments.
type EmptyRequest struct{}

// BladeNamesRequest is the input for shutdown and startup.
// An empty Blades list selects every blade.
type BladeNamesRequest struct {
	Blades []string `json:"blades,omitempty"`
}

// BladeTypeRequest is the input for operations on a blade type.
type BladeTypeRequest struct {
	BladeType string `json:"bladeType"`
}

// BladeInstanceRequest is the input for operations on a single blade instance.
type BladeInstanceRequest struct {
	BladeType string `json:"bladeType"`
	Instance  int    `json:"instance"`
	// Interconnect is only used by blade_ip.
	Interconnect string `json:"interconnect,omitempty"`
}

// InterconnectRequest is the input for operations on a blade interconnect.
type InterconnectRequest struct {
	Name string `json:"name"`
}

// ConnectBladesRequest is the input for connect_blades.
// An empty BladeTypes list selects every non-base blade type.
type ConnectBladesRequest struct {
	RemotePort int      `json:"remotePort"`
	BladeTypes []string `json:"bladeTypes,omitempty"`
}

// ConnectionState is a snapshot of a blade connection taken while it was
// connected.
type ConnectionState struct {
	BladeType     string `json:"bladeType"`
	BladeHostname string `json:"bladeHostname"`
	RemotePort    int    `json:"remotePort"`
	LocalIP       string `json:"localIP"`
	LocalPort     int    `json:"localPort"`
}
