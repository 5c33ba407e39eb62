package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trustdns/anchord/config"
	"github.com/trustdns/anchord/log"
)

//nolint:gochecknoglobals
var (
	version   = "undefined"
	buildTime = "undefined"

	configPath string
)

// NewRootCommand creates a new root cli command instance
func NewRootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "anchord",
		Short: "anchord is a DNSSEC trust anchor store",
		Long: `Loads DNSSEC trust anchors (*.positive files) and negative trust
anchors (*.negative files) from an ordered list of search directories
and serves them for resolver validation.`,
		RunE: dumpAnchors,
	}

	c.PersistentFlags().StringVarP(&configPath, "config", "c", "/etc/anchord/config.yml", "path to config file")

	c.AddCommand(
		newDumpCommand(),
		newServeCommand(),
		newValidateCommand(),
		newVersionCommand(),
	)

	return c
}

// loadConfig reads the configuration and applies the log options
func loadConfig(mandatory bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath, mandatory)
	if err != nil {
		return nil, err
	}

	log.ConfigureLogger(cfg.Log)

	return cfg, nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Log().Fatal(err)
	}
}
