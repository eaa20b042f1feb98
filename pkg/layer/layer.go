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

// Package layer is the public entry point of the mock provider layer.
// Callers construct a LayerAPI from the merged vTDS configuration and use it
// for every provider operation; the implementation behind it stays private.
package layer

import (
	"log"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	providerv1 "github.com/alexandremahdhaoui/vtds-provider-mock/api/provider/v1"
	"github.com/alexandremahdhaoui/vtds-provider-mock/internal/providers/mock"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/config"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/provider"
)

// Stack is the caller's handle on the full stack of vTDS layers. The
// provider layer keeps it for its lifetime without interpreting it.
type Stack = any

// Option configures a LayerAPI.
type Option func(*LayerAPI)

// WithLogger sets the logger simulated actions are reported through.
// The default logger writes to standard output.
func WithLogger(log logr.Logger) Option {
	return func(l *LayerAPI) {
		l.log = log
	}
}

// LayerAPI presents the provider API to callers.
type LayerAPI struct {
	stack    Stack
	buildDir string
	log      logr.Logger
	private  *mock.Provider

	mu       sync.RWMutex
	prepared bool
	deployed bool
}

// Compile-time check that LayerAPI implements provider.Provider
var _ provider.Provider = (*LayerAPI)(nil)

// New constructs the provider layer API from the full stack of vTDS layers,
// the merged configuration and an absolute path to a scratch build directory.
// It fails with a configuration error if the configuration has no provider
// subtree or the subtree cannot be decoded.
func New(stack Stack, cfg map[string]any, buildDir string, opts ...Option) (*LayerAPI, error) {
	l := &LayerAPI{
		stack:    stack,
		buildDir: buildDir,
		log:      stdr.New(log.New(os.Stdout, "", log.LstdFlags)),
	}
	for _, opt := range opts {
		opt(l)
	}

	providerCfg, err := config.ProviderConfig(cfg)
	if err != nil {
		return nil, err
	}
	l.private = mock.NewProvider(providerCfg, l.log)
	return l, nil
}

// Stack returns the stack handle the layer was constructed with.
func (l *LayerAPI) Stack() Stack { return l.stack }

// BuildDir returns the scratch build directory.
func (l *LayerAPI) BuildDir() string { return l.buildDir }

// Prepared reports whether Prepare has completed.
func (l *LayerAPI) Prepared() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.prepared
}

// Deployed reports whether Deploy has completed and Remove has not run since.
func (l *LayerAPI) Deployed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.deployed
}

// Status returns the lifecycle flags of the layer.
func (l *LayerAPI) Status() providerv1.LifecycleStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return providerv1.LifecycleStatus{
		Prepared: l.prepared,
		Deployed: l.deployed,
		BuildDir: l.buildDir,
	}
}

// Prepare prepares the provider for deployment.
func (l *LayerAPI) Prepare() error {
	if err := l.private.Prepare(); err != nil {
		return err
	}
	l.mu.Lock()
	l.prepared = true
	l.mu.Unlock()
	return nil
}

// Validate runs configuration validation for the provider layer.
func (l *LayerAPI) Validate() error {
	return l.private.Validate()
}

// Deploy deploys the provider. Prepare must be called first.
func (l *LayerAPI) Deploy() error {
	if err := l.private.Deploy(); err != nil {
		return err
	}
	l.mu.Lock()
	l.deployed = true
	l.mu.Unlock()
	return nil
}

// Shutdown powers off the named Virtual Blades, or all of them when none are
// named, leaving them provisioned.
func (l *LayerAPI) Shutdown(bladeNames []string) error {
	return l.private.Shutdown(bladeNames)
}

// Startup powers on the named Virtual Blades, or all of them when none are
// named, as long as they are provisioned.
func (l *LayerAPI) Startup(bladeNames []string) error {
	return l.private.Startup(bladeNames)
}

// Dismantle de-provisions all Virtual Blades in the provider.
func (l *LayerAPI) Dismantle() error {
	return l.private.Dismantle()
}

// Restore re-provisions de-provisioned Virtual Blades in the provider.
func (l *LayerAPI) Restore() error {
	return l.private.Restore()
}

// Remove removes all resources provisioned for the provider layer.
func (l *LayerAPI) Remove() error {
	if err := l.private.Remove(); err != nil {
		return err
	}
	l.mu.Lock()
	l.deployed = false
	l.mu.Unlock()
	return nil
}

// VirtualBlades returns the Virtual Blades of the provider.
func (l *LayerAPI) VirtualBlades() provider.VirtualBlades {
	return l.private.VirtualBlades()
}

// BladeInterconnects returns the Blade Interconnects of the provider.
func (l *LayerAPI) BladeInterconnects() provider.BladeInterconnects {
	return l.private.BladeInterconnects()
}

// OpenConnections returns the number of blade connections not yet released.
func (l *LayerAPI) OpenConnections() int {
	return l.private.OpenConnections()
}
