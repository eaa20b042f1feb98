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

// Package mock provides a mock provider layer that answers structural queries
// from static configuration and simulates lifecycle operations and blade
// connections without touching real infrastructure. Simulated actions are
// reported through the provider's logger.
package mock

import (
	"sync"

	"github.com/go-logr/logr"

	providerv1 "github.com/alexandremahdhaoui/vtds-provider-mock/api/provider/v1"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/provider"
)

// Name is the name the mock provider layer reports itself under.
const Name = "vtds-provider-mock"

// Provider is the mock provider layer.
// Validate, Deploy, Dismantle, Restore and Remove fail until Prepare has been
// called. Nothing resets the prepared state.
type Provider struct {
	mu       sync.RWMutex
	prepared bool

	log           logr.Logger
	blades        *VirtualBlades
	interconnects *BladeInterconnects
}

// Compile-time check that Provider implements provider.Provider
var _ provider.Provider = (*Provider)(nil)

// NewProvider creates a mock provider over a decoded provider configuration.
// The configuration is only read, never modified.
func NewProvider(cfg *providerv1.ProviderConfig, log logr.Logger) *Provider {
	log = log.WithName(Name)
	return &Provider{
		log:           log,
		blades:        NewVirtualBlades(cfg, log),
		interconnects: NewBladeInterconnects(cfg),
	}
}

// Prepared reports whether Prepare has been called.
func (p *Provider) Prepared() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.prepared
}

// requirePrepared returns a precondition error naming operation if the
// provider has not been prepared.
func (p *Provider) requirePrepared(operation string) error {
	if !p.Prepared() {
		return providerv1.NewPreconditionError(operation)
	}
	return nil
}

// Prepare marks the provider as prepared. Calling it again only re-announces.
func (p *Provider) Prepare() error {
	p.mu.Lock()
	p.prepared = true
	p.mu.Unlock()

	p.log.Info("Preparing " + Name)
	return nil
}

// Validate implements provider.Lifecycle.
func (p *Provider) Validate() error {
	if err := p.requirePrepared("validate"); err != nil {
		return err
	}
	p.log.Info("Validating " + Name)
	return nil
}

// Deploy implements provider.Lifecycle.
func (p *Provider) Deploy() error {
	if err := p.requirePrepared("deploy"); err != nil {
		return err
	}
	p.log.Info("Deploying " + Name)
	return nil
}

// Shutdown implements provider.Lifecycle.
func (p *Provider) Shutdown(bladeNames []string) error {
	p.log.Info("Shutting down nodes in "+Name, "blades", bladeSelection(bladeNames))
	return nil
}

// Startup implements provider.Lifecycle.
func (p *Provider) Startup(bladeNames []string) error {
	p.log.Info("Starting up nodes in "+Name, "blades", bladeSelection(bladeNames))
	return nil
}

// Dismantle implements provider.Lifecycle.
func (p *Provider) Dismantle() error {
	if err := p.requirePrepared("dismantle"); err != nil {
		return err
	}
	p.log.Info("Dismantling " + Name)
	return nil
}

// Restore implements provider.Lifecycle.
func (p *Provider) Restore() error {
	if err := p.requirePrepared("restore"); err != nil {
		return err
	}
	p.log.Info("Restoring " + Name)
	return nil
}

// Remove implements provider.Lifecycle.
func (p *Provider) Remove() error {
	if err := p.requirePrepared("remove"); err != nil {
		return err
	}
	p.log.Info("Removing " + Name)
	return nil
}

// VirtualBlades implements provider.Provider.
func (p *Provider) VirtualBlades() provider.VirtualBlades {
	return p.blades
}

// BladeInterconnects implements provider.Provider.
func (p *Provider) BladeInterconnects() provider.BladeInterconnects {
	return p.interconnects
}

// OpenConnections returns the number of blade connections not yet released.
func (p *Provider) OpenConnections() int {
	return p.blades.OpenConnections()
}

func bladeSelection(bladeNames []string) any {
	if len(bladeNames) == 0 {
		return "all"
	}
	return bladeNames
}
