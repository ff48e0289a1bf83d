package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-dataprep/internal/config"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	drawFile  string
	rawPath   string
	workDir   string
	name      string
	bpeID     string
	bpeMerges int

	// cfg is populated by PersistentPreRunE and shared with all subcommands.
	cfg *config.Config

	// app holds all wired dependencies; populated by PersistentPreRunE.
	app *appContext
)

var rootCmd = &cobra.Command{
	Use:   "dataprep",
	Short: "Preprocess a dataset of projects, stage by stage",
	Long: `dataprep parses raw projects, converts them to their token representation
and computes vocabularies. A stage whose results are up-to-date is skipped,
stale results are archived before the stage runs again.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "path to config file (YAML)")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	flags.StringVar(&drawFile, "draw", "", "write the stage graph to this DOT file")
	flags.StringVar(&rawPath, "raw", "", "directory of the raw projects")
	flags.StringVar(&workDir, "work-dir", "", "directory receiving the stage artifacts")
	flags.StringVar(&name, "name", "", "dataset name, defaults to the raw directory name")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load(cfgFile)
		if err != nil {
			return errors.Wrap(err, "loading config")
		}

		applyFlags(cmd, cfg)

		app, err = buildAppContext(cfg)
		if err != nil {
			return errors.Wrap(err, "building app context")
		}

		return nil
	}

	for _, stageCmd := range stageCommands() {
		rootCmd.AddCommand(stageCmd)
	}
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyFlags overrides the config with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("log-level") {
		cfg.Log.Level = logLevel
	}

	if changed("log-format") {
		cfg.Log.Format = logFormat
	}

	if changed("draw") {
		cfg.Draw = drawFile
	}

	if changed("raw") {
		cfg.Dataset.RawPath = rawPath
	}

	if changed("work-dir") {
		cfg.Dataset.WorkDir = workDir
	}

	if changed("name") {
		cfg.Dataset.Name = name
	}

	if changed("bpe-id") {
		cfg.BPE.ID = bpeID
	}

	if changed("bpe-merges") {
		cfg.BPE.Merges = bpeMerges
	}
}
