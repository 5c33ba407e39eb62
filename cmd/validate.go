package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trustdns/anchord/log"
	"github.com/trustdns/anchord/trustanchor"
)

//nolint:gochecknoglobals
var strict bool

func newValidateCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "validate",
		Args:  cobra.NoArgs,
		Short: "Validates the configuration and all anchor files",
		RunE:  validateAnchors,
	}

	c.Flags().BoolVar(&strict, "strict", false, "fail if any anchor line had to be skipped")

	return c
}

func validateAnchors(cmd *cobra.Command, _ []string) error {
	log.Log().Infof("validating configuration file: %s", configPath)

	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}

	cfg.TrustAnchors.DumpOnLoad = false

	store := trustanchor.NewStore(cfg.TrustAnchors)
	if err := store.Load(cmd.Context()); err != nil {
		return err
	}

	if err := store.SkippedLines(); err != nil {
		if strict {
			return err
		}

		log.Log().Warnf("some anchor lines were skipped: %v", err)
	}

	log.Log().Info("configuration is valid")

	return nil
}
