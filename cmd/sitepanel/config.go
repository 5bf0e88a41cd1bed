package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eringen/sitepanel/siteconfig"
)

var showFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or reset the stored site configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective site configuration",
	Long: `show prints the site configuration as the landing page sees it: the stored
record merged over the defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *siteconfig.Store) error {
			cfg := store.Load(cmd.Context())
			return writeConfig(cmd.OutOrStdout(), cfg, showFormat)
		})
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the stored site configuration with the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *siteconfig.Store) error {
			cfg, err := store.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %q to defaults.\n", cfg.SiteName)
			return nil
		})
	},
}

func init() {
	configShowCmd.Flags().StringVarP(&showFormat, "format", "f", "json", "output format: json or yaml")
	configCmd.AddCommand(configShowCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}

// withStore opens the configured database for the duration of fn.
func withStore(fn func(*siteconfig.Store) error) error {
	slot, err := siteconfig.OpenSQLite(appSettings.DatabasePath)
	if err != nil {
		return err
	}
	defer slot.Close()

	var opts []siteconfig.StoreOption
	if appSettings.ConfigKey != "" {
		opts = append(opts, siteconfig.WithKey(appSettings.ConfigKey))
	}
	return fn(siteconfig.NewStore(slot, opts...))
}

func writeConfig(w io.Writer, cfg siteconfig.SiteConfig, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
