package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/sitepanel"
)

// version is set at build time via ldflags.
var version = "dev"

var cfgFile string

// settings is the server configuration read from the config file, the
// environment (SITEPANEL_*) and flags.
type settings struct {
	URL           string        `mapstructure:"url"`
	Addr          string        `mapstructure:"addr"`
	DatabasePath  string        `mapstructure:"database_path"`
	ConfigKey     string        `mapstructure:"config_key"`
	StaticDir     string        `mapstructure:"static_dir"`
	AdminPassword string        `mapstructure:"admin_password"`
	SessionSecret string        `mapstructure:"session_secret"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
	RedirectDelay time.Duration `mapstructure:"redirect_delay"`
	LogLevel      string        `mapstructure:"log_level"`
}

func (s settings) appConfig() sitepanel.Config {
	return sitepanel.Config{
		URL:           s.URL,
		Addr:          s.Addr,
		DatabasePath:  s.DatabasePath,
		ConfigKey:     s.ConfigKey,
		AdminPassword: s.AdminPassword,
		SessionSecret: s.SessionSecret,
		CookieSecure:  s.CookieSecure,
		RedirectDelay: s.RedirectDelay,
		LogLevel:      s.LogLevel,
	}
}

var appSettings settings

var rootCmd = &cobra.Command{
	Use:   "sitepanel",
	Short: "Configurable landing page with an admin editor",
	Long: `sitepanel serves a landing page whose name, logo, banner, module links and
color palette are edited from a password-protected admin panel.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("database-path", "", "SQLite database path (default data/site.db)")
	rootCmd.PersistentFlags().String("config-key", "", "storage key of the site record")
}

// newViper returns a viper instance with every known key defaulted so that
// SITEPANEL_* environment variables are picked up by Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("addr", ":3000")
	v.SetDefault("database_path", "data/site.db")
	v.SetDefault("config_key", "")
	v.SetDefault("static_dir", "public")
	v.SetDefault("admin_password", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("redirect_delay", 2*time.Second)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("SITEPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func initializeConfig(cmd *cobra.Command) error {
	v := newViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	flags := map[string]string{
		"database_path": "database-path",
		"config_key":    "config-key",
		"addr":          "addr",
		"url":           "url",
		"static_dir":    "static-dir",
		"log_level":     "log-level",
	}
	for key, name := range flags {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.Unmarshal(&appSettings); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
