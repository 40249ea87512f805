package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pumlfmt/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the pumlfmt result cache",
	Long:  "Remove the on-disk cache of already-formatted document digests.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cache, err := driver.OpenResultCache(cacheAppName)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("clean: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintln(os.Stdout, "cache removed")
	}
	return nil
}
