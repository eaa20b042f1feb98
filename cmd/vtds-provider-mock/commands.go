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

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/alexandremahdhaoui/vtds-provider-mock/internal/providers/mock"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/config"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/layer"
	"github.com/alexandremahdhaoui/vtds-provider-mock/pkg/mcp"
)

// mcpOptions holds the flags of the mcp command.
type mcpOptions struct {
	configFile string
	buildDir   string
	baseOnly   bool
	verbosity  string
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           mock.Name,
		Short:         "Mock vTDS provider layer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(mcpCmd())
	cmd.AddCommand(configCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func mcpCmd() *cobra.Command {
	opts := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the provider layer as an MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMCPServer(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "YAML overlay merged onto the packaged configuration")
	cmd.Flags().StringVar(&opts.buildDir, "build-dir", getEnvOrDefault("VTDS_BUILD_DIR", os.TempDir()), "Scratch build directory")
	cmd.Flags().BoolVar(&opts.baseOnly, "base", false, "Start from the base configuration instead of the test configuration")
	cmd.Flags().StringVarP(&opts.verbosity, "verbosity", "v",
		getEnvOrDefault("VTDS_PROVIDER_MOCK_VERBOSITY", "0"), "Log verbosity (env VTDS_PROVIDER_MOCK_VERBOSITY)")

	return cmd
}

// loadConfig composes the configuration the mcp command serves.
func loadConfig(opts *mcpOptions) (map[string]any, error) {
	var (
		cfg map[string]any
		err error
	)
	if opts.baseOnly {
		cfg, err = config.BaseConfig()
	} else {
		cfg, err = config.TestConfig()
	}
	if err != nil {
		return nil, err
	}

	if opts.configFile == "" {
		return cfg, nil
	}
	overlay, err := config.ParseFile(opts.configFile)
	if err != nil {
		return nil, err
	}
	return config.Merge(cfg, overlay)
}

// parseVerbosity parses a log verbosity, which must be a non-negative integer.
func parseVerbosity(value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid verbosity %q: must be a non-negative integer", value)
	}
	return v, nil
}

func runMCPServer(cmd *cobra.Command, opts *mcpOptions) error {
	verbosity, err := parseVerbosity(opts.verbosity)
	if err != nil {
		return err
	}

	// stdout carries JSON-RPC, logs go to stderr.
	stdr.SetVerbosity(verbosity)
	logger := stdr.New(log.New(cmd.ErrOrStderr(), "", log.LstdFlags))

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := layer.New(nil, cfg, opts.buildDir, layer.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create provider layer: %w", err)
	}

	server, err := mcp.NewServer(l, mock.Name, Version, logger.WithName("mcp"))
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	logger.Info("Starting vtds-provider-mock MCP server", "version", Version)
	return server.Run(cmd.Context())
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the packaged configuration files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "base",
		Short: "Print the base configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.BaseConfigText())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "overlay",
		Short: "Print the test overlay",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.TestOverlayText())
		},
	})

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", mock.Name, Version)
		},
	}
}
