// Package main is the entry point for the portal-cli application.
// It registers the administrative sub-commands that run against the same
// database and configuration as the REST API.
package main

import (
	"fmt"
	"log"
	"os"

	// Europe/Berlin must resolve in minimal containers
	_ "time/tzdata"

	commands "github.com/sommertheater/portal/cmd/portal-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rt := commands.NewRuntime()
	defer func() {
		if err := rt.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	rootCmd := &cobra.Command{
		Use:   "portal-cli",
		Short: "Administration tool for the Sommertheater member portal",
		Long: `portal-cli runs maintenance tasks against the portal database:
schema migration, the first admin account, invites, holiday sync,
the role permission matrix and show posters.

The configuration is read from CONFIG_PATH (default ./configs/rest-app.yaml)
with PORTAL_* environment overrides.`,
		SilenceUsage: true,
	}

	if err := initializeCommands(rootCmd, rt); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command, rt *commands.Runtime) error {
	if err := commands.InitAdminCommands(rootCmd, rt); err != nil {
		return fmt.Errorf("failed to initialize admin commands: %w", err)
	}

	if err := commands.InitDataCommands(rootCmd, rt); err != nil {
		return fmt.Errorf("failed to initialize data commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
