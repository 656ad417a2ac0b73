package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wkncstats/sitesync/internal/packager"
)

func newPackageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "package <BuildDir> <ZipPath>",
		Short: "Build the refresh function's deployment archive",
		Long: `package zips a staged build directory (handler code plus vendored
dependencies) into the archive the provisioning pipeline deploys.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			buildDir, zipPath := args[0], args[1]
			if err := packager.BuildZip(buildDir, zipPath); err != nil {
				return err
			}
			fmt.Printf("Function package created: %s\n", zipPath)
			return nil
		},
	}
}
