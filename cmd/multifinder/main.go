package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vktec/multifinder"
	"github.com/vktec/multifinder/cpu"
	"github.com/vktec/multifinder/seeds"
)

var (
	configFile string
	logLevel   string
	flagOpts   = multifinder.DefaultOptions()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multifinder",
		Short: "Search for quad witch hut seeds",
		Long: `Search the seed space for quad witch huts in swampland, optionally with an
ocean monument next to the quad, woodland mansions nearby and a world spawn
in a chosen biome group.

Examples:
  multifinder --radius 2048 --start_seed 1G --end_seed 2G
  multifinder -t 8 -o out --monument_distance 4 --spawn_biomes mushroom`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSearch,
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "YAML options `file`; flags override it")
	f.IntVarP(&flagOpts.Radius, "radius", "r", flagOpts.Radius, "Search radius in blocks, rounded up to whole structure regions")
	f.VarP(&flagOpts.StartSeed, "start_seed", "s", "First base seed (K, M, G/B and T suffixes allowed)")
	f.VarP(&flagOpts.EndSeed, "end_seed", "e", "Base seed to stop at (K, M, G/B and T suffixes allowed)")
	f.IntVarP(&flagOpts.Threads, "threads", "t", flagOpts.Threads, "Number of search workers")
	f.StringVarP(&flagOpts.OutputDir, "output_dir", "o", "", "Directory for per worker seed files (required with more than one thread)")
	f.StringVarP(&flagOpts.BaseSeedsFile, "base_seeds_file", "S", flagOpts.BaseSeedsFile, "Quad base seed `file`, created if missing")
	f.IntVar(&flagOpts.BaseQuality, "base_quality", flagOpts.BaseQuality, "Quality used when the base seed file has to be created")
	f.StringVarP(&flagOpts.SpawnBiomes, "spawn_biomes", "b", "", fmt.Sprintf("Biome group around world spawn: %v", multifinder.BiomeConfigNames()))
	f.IntVarP(&flagOpts.MonumentDistance, "monument_distance", "m", 0, "Want an ocean monument within this many chunks of the quad hut perimeter")
	f.IntVarP(&flagOpts.WoodlandMansions, "woodland_mansions", "w", 0, "Want at least this many woodland mansions within the search radius")
	cmd.PersistentFlags().StringVar(&logLevel, "log_level", "info", "Log level: debug, info, warn or error")

	cmd.AddCommand(newBasesCmd())
	return cmd
}

func newLogger() (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, &multifinder.ConfigError{Field: "log_level", Reason: err.Error()}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// loadOptions merges the config file, if any, with the flags that were set.
func loadOptions(cmd *cobra.Command) (*multifinder.Options, error) {
	opts := &flagOpts
	if configFile != "" {
		var err error
		opts, err = multifinder.LoadOptions(configFile)
		if err != nil {
			return nil, err
		}
		f := cmd.Flags()
		if f.Changed("radius") {
			opts.Radius = flagOpts.Radius
		}
		if f.Changed("start_seed") {
			opts.StartSeed = flagOpts.StartSeed
		}
		if f.Changed("end_seed") {
			opts.EndSeed = flagOpts.EndSeed
		}
		if f.Changed("threads") {
			opts.Threads = flagOpts.Threads
		}
		if f.Changed("output_dir") {
			opts.OutputDir = flagOpts.OutputDir
		}
		if f.Changed("base_seeds_file") {
			opts.BaseSeedsFile = flagOpts.BaseSeedsFile
		}
		if f.Changed("base_quality") {
			opts.BaseQuality = flagOpts.BaseQuality
		}
		if f.Changed("spawn_biomes") {
			opts.SpawnBiomes = flagOpts.SpawnBiomes
		}
		if f.Changed("monument_distance") {
			opts.MonumentDistance = flagOpts.MonumentDistance
		}
		if f.Changed("woodland_mansions") {
			opts.WoodlandMansions = flagOpts.WoodlandMansions
		}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// baseFinder precomputes a missing base seed file with the search's own
// thread count.
func baseFinder(opts *multifinder.Options) seeds.BaseFinder {
	return seeds.BaseFinder{Workers: opts.Threads, Quality: opts.BaseQuality}
}

func runSearch(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	// Fail before the base seeds are loaded or computed.
	gen, err := newGenerator()
	if err != nil {
		return err
	}
	gen.Close()

	log.Info("searching base seeds",
		"start", opts.StartSeed, "end", opts.EndSeed,
		"radius", opts.Radius, "threads", opts.Threads)
	if opts.MonumentsEnabled() {
		log.Info("want an ocean monument near the quad hut perimeter", "chunks", opts.MonumentDistance)
	}
	if opts.MansionsEnabled() {
		log.Info("want woodland mansions within the search radius", "count", opts.WoodlandMansions)
	}
	if opts.SpawnEnabled() {
		log.Info("looking for world spawn in biome group", "biomes", opts.Biomes.Name())
	}

	finder := baseFinder(opts)
	candidates, err := seeds.Ensure(opts.BaseSeedsFile, func() []int64 {
		return finder.Find(0, seeds.HighCount)
	}, log)
	if err != nil {
		return fmt.Errorf("load base seeds: %w", err)
	}

	s := cpu.NewSearcher(opts, newGenerator, log)
	reports, err := s.Search(candidates)
	if err != nil {
		return err
	}

	var total uint
	for _, r := range reports {
		total += r.Hits
	}
	log.Info("done", "bases", len(reports), "hits", total)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var cfgErr *multifinder.ConfigError
		if errors.As(err, &cfgErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
