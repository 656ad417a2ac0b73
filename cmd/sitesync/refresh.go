package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wkncstats/sitesync/internal/refresh"
)

func newRefreshCmd() *cobra.Command {
	var function string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Invoke the data-refresh function now",
		Long: `refresh synchronously invokes the deployed refresh function, the same one
the managed scheduler runs every six hours. Useful right after a deploy
instead of waiting for the next scheduled run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			name := function
			if name == "" {
				name = cfg.Refresh.Function
			}
			if name == "" {
				return fmt.Errorf("no refresh function configured; set refresh.function or --function")
			}

			ctx := cmd.Context()
			awsCfg, err := loadAWSConfig(ctx)
			if err != nil {
				return err
			}

			response, err := refresh.NewInvoker(awsCfg).Invoke(ctx, name, nil)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(response, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal response: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&function, "function", "", "Refresh function name (overrides config)")

	return cmd
}
