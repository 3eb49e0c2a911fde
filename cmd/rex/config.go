package main

import (
	"net/url"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/rex/pkg/config"
)

const masked = "********"

func configCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Load the dotenv file and the environment the way an application
would, then print the resulting configuration with secrets masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg config.Config
			if err := config.Load(&cfg, *envFile); err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(maskSecrets(cfg)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

// maskSecrets hides passwords and keys. URLs keep everything but the password.
func maskSecrets(cfg config.Config) config.Config {
	cfg.Log.Output = nil
	if cfg.Database.Password != "" {
		cfg.Database.Password = masked
	}
	cfg.Database.ConnectionString = redactURL(cfg.Database.ConnectionString)
	cfg.Redis.URL = redactURL(cfg.Redis.URL)
	// The DSN's user part is the project key.
	if cfg.Sentry.DSN != "" {
		cfg.Sentry.DSN = masked
	}
	return cfg
}

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return masked
	}
	return u.Redacted()
}
