package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-dataprep/pkg/bpe"
	"github.com/askiada/go-dataprep/pkg/dataprep"
	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

type stageFn func(ctx context.Context, runner *dataprep.Runner, ds dataprep.Dataset, cfg *bpe.CustomConfig) error

func stageCommands() []*cobra.Command {
	parseCmd := newStageCommand("parse", "Parse the raw projects",
		func(ctx context.Context, runner *dataprep.Runner, ds dataprep.Dataset, _ *bpe.CustomConfig) error {
			return runner.RunParsing(ctx, ds)
		})

	preprocessCmd := newStageCommand("preprocess", "Parse, then convert to the token representation",
		func(ctx context.Context, runner *dataprep.Runner, ds dataprep.Dataset, cfg *bpe.CustomConfig) error {
			return runner.RunUntilPreprocessing(ctx, ds, cfg)
		})

	baseVocabCmd := newStageCommand("base-vocab", "Preprocess, then compute the base bpe vocabulary",
		func(ctx context.Context, runner *dataprep.Runner, ds dataprep.Dataset, cfg *bpe.CustomConfig) error {
			return runner.RunUntilBaseBPEVocab(ctx, ds, cfg)
		})

	vocabCmd := newStageCommand("vocab", "Preprocess, then compute the vocabulary",
		func(ctx context.Context, runner *dataprep.Runner, ds dataprep.Dataset, cfg *bpe.CustomConfig) error {
			return runner.RunUntilVocab(ctx, ds, cfg)
		})

	for _, cmd := range []*cobra.Command{preprocessCmd, baseVocabCmd, vocabCmd} {
		cmd.Flags().StringVar(&bpeID, "bpe-id", "", "id of the custom bpe config")
		cmd.Flags().IntVar(&bpeMerges, "bpe-merges", 0, "number of custom bpe merges, 0 for all")
	}

	return []*cobra.Command{parseCmd, preprocessCmd, baseVocabCmd, vocabCmd}
}

func newStageCommand(use, short string, fn stageFn) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := fn(ctx, app.runner, app.dataset, app.bpe)
			printReport(cmd.OutOrStdout(), app.runner.Report())

			if err != nil {
				return errors.Wrapf(err, "%s failed", use)
			}

			app.logger.InfoContext(ctx, "done", "dataset", app.dataset.Name())

			return nil
		},
	}
}

func printReport(w io.Writer, report []model.StageResult) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(map[string]any{"stages": report})
	if err != nil {
		fmt.Fprintf(w, "%v\n", report)
	}
}
