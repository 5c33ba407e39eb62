package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trustdns/anchord/log"
	"github.com/trustdns/anchord/trustanchor"
)

//nolint:gochecknoglobals
var dumpDirectories []string

func newDumpCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "dump",
		Args:  cobra.NoArgs,
		Short: "Loads all trust anchors and prints the store contents",
		RunE:  dumpAnchors,
	}

	c.Flags().StringArrayVarP(&dumpDirectories, "directory", "d", nil,
		"anchor search directory, lowest to highest precedence (overrides the configured search path)")

	return c
}

func dumpAnchors(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	if len(dumpDirectories) > 0 {
		cfg.TrustAnchors.Directories = dumpDirectories
	}

	cfg.TrustAnchors.DumpOnLoad = true

	store := trustanchor.NewStore(cfg.TrustAnchors)
	if err := store.Load(cmd.Context()); err != nil {
		return err
	}

	stats := store.Stats()
	log.Log().Infof("%d positive key(s) with %d record(s), %d negative name(s), %d skipped line(s)",
		stats.PositiveKeys, stats.PositiveRecords, stats.NegativeNames, stats.SkippedLines)

	return nil
}
