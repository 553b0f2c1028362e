package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/vktec/multifinder"
	"github.com/vktec/multifinder/seeds"
)

var (
	basesQuality int
	basesWorkers int
	basesOut     string
)

func newBasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bases",
		Short: "Precompute the quad witch hut base seed file",
		Long: `Precompute every 48 bit base seed whose four witch huts lie within
quality chunks of the corner they share. The search command does this
automatically when its base seed file is missing.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runBases,
	}
	f := cmd.Flags()
	f.IntVarP(&basesQuality, "quality", "q", 1, "Maximum hut distance from the quad corner, in chunks")
	f.IntVarP(&basesWorkers, "threads", "t", runtime.GOMAXPROCS(0), "Number of concurrent workers")
	f.StringVarP(&basesOut, "output", "o", "./seeds/quadbases_Q1.txt", "Output `file`")
	return cmd
}

func runBases(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	if basesQuality < 0 || basesQuality > 11 {
		return &multifinder.ConfigError{Field: "quality", Reason: "must be between 0 and 11"}
	}
	finder := seeds.BaseFinder{Workers: basesWorkers, Quality: basesQuality}
	log.Info("computing quad bases", "quality", basesQuality, "threads", basesWorkers)
	bases := finder.Find(0, seeds.HighCount)
	if err := seeds.Save(basesOut, bases); err != nil {
		return fmt.Errorf("save base seeds: %w", err)
	}
	log.Info("base seeds written", "file", basesOut, "count", len(bases))
	return nil
}
