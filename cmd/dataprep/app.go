package main

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataprep/internal/config"
	"github.com/askiada/go-dataprep/internal/logging"
	"github.com/askiada/go-dataprep/internal/worker"
	"github.com/askiada/go-dataprep/pkg/bpe"
	"github.com/askiada/go-dataprep/pkg/dataprep"
	"github.com/askiada/go-dataprep/pkg/dataprep/drawer"
	"github.com/askiada/go-dataprep/pkg/dataprep/measure"
	"github.com/askiada/go-dataprep/pkg/dataprep/model"
	"github.com/askiada/go-dataprep/pkg/dataset"
)

// appContext holds the dependencies shared across subcommands.
type appContext struct {
	logger  *slog.Logger
	bpe     *bpe.CustomConfig
	dataset *dataset.Dataset
	runner  *dataprep.Runner
}

// buildAppContext constructs all dependencies from cfg:
//  1. the logger
//  2. the optional custom bpe config and the dataset
//  3. the three command workers
//  4. the runner, with a measure and, when asked, a drawer
func buildAppContext(cfg *config.Config) (*appContext, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger)

	app := &appContext{logger: logger}

	app.bpe, err = cfg.CustomBPE()
	if err != nil {
		return nil, errors.Wrap(err, "invalid custom bpe config")
	}

	app.dataset, err = dataset.New(dataset.Options{
		Name:    cfg.Dataset.Name,
		RawPath: cfg.Dataset.RawPath,
		WorkDir: cfg.Dataset.WorkDir,
		BPE:     app.bpe,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to open dataset")
	}

	parserCmd, err := worker.NewCommand("parser", cfg.Workers.Parser, logger)
	if err != nil {
		return nil, err
	}

	converterCmd, err := worker.NewCommand("converter", cfg.Workers.Converter, logger)
	if err != nil {
		return nil, err
	}

	vocabCmd, err := worker.NewCommand("vocab", cfg.Workers.Vocab, logger)
	if err != nil {
		return nil, err
	}

	msr := measure.NewDefaultMeasure()
	runOpts := []model.RunOption{measure.RunMeasure(msr)}

	if cfg.Draw != "" {
		dotDrawer := drawer.NewDOTDrawer(cfg.Draw, drawer.GraphAttribute("label", app.dataset.Name()))
		runOpts = append(runOpts, drawer.RunDrawer(dotDrawer, msr))
	}

	app.runner, err = dataprep.New(
		worker.NewParser(parserCmd),
		worker.NewConverter(converterCmd),
		worker.NewVocabCalculator(vocabCmd),
		dataprep.WithLogger(logger),
		dataprep.WithRunOptions(runOpts...),
	)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create runner")
	}

	return app, nil
}
