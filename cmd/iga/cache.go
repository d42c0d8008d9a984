// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caltechlibrary/iga/internal/lookup"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the lookup cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove expired entries from the lookup cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cfg.Lookup.CachePath == "" {
			return badArgs("no cache file configured")
		}
		c, err := lookup.OpenCache(cfg.Lookup.CachePath, cfg.Lookup.CacheTTL, logger)
		if err != nil {
			return err
		}
		defer c.Close()

		n, err := c.Purge(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("removed %d expired entr%s from %s\n", n, plural(n), cfg.Lookup.CachePath)
		return nil
	},
}

func plural(n int64) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
