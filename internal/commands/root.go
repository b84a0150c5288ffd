// Package commands implements the payplan command line interface.
package commands

import (
	"github.com/payplan/backend/internal/config"
	"github.com/payplan/backend/internal/router"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
//
// Without a subcommand, the API server is started.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "payplan",
		Short:   "Plan how your paychecks flow into your accounts",
		Version: router.Version(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if configPath == "" {
				return nil
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			return cfg.Apply()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file, e.g. payplan.yaml")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newForecastCommand())
	rootCmd.AddCommand(newRunCommand())

	return rootCmd
}
