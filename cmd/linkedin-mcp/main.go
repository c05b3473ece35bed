package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vadim/linkedin-mcp/internal/app"
	"github.com/vadim/linkedin-mcp/internal/config"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "linkedin-mcp",
		Short:         "LinkedIn content tool server for MCP clients",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Bare invocation serves stdio so MCP clients can launch the binary directly
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, "")
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default: environment only)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio or streamable HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, transport)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "", "stdio|http (overrides MCP_TRANSPORT)")

	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the post store schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := app.Migrate(cmd.Context(), cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s store is up to date\n", cfg.Storage.Driver)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "linkedin-mcp %s\n", version)
			return nil
		},
	}
}

func serve(cmd *cobra.Command, transport string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if transport != "" {
		cfg.MCP.Transport = transport
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	application, err := app.NewApp(cmd.Context(), cfg, version)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Run application (blocks until shutdown)
	return application.Run(cmd.Context())
}

func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
