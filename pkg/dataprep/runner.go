package dataprep

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataprep/pkg/bpe"
	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

// Runner sequences the preprocessing stages.
// A Runner is not safe for concurrent use.
type Runner struct {
	parser    ProjectParser
	converter ReprConverter
	vocab     VocabCalculator
	logger    *slog.Logger
	opts      []model.RunOption

	parent *model.StageInfo
	report []model.StageResult
}

// New creates a new runner.
func New(parser ProjectParser, converter ReprConverter, vocab VocabCalculator, opts ...Option) (*Runner, error) {
	if parser == nil {
		return nil, ErrParserMustBeSet
	}

	if converter == nil {
		return nil, ErrConverterMustBeSet
	}

	if vocab == nil {
		return nil, ErrVocabMustBeSet
	}

	r := &Runner{
		parser:    parser,
		converter: converter,
		vocab:     vocab,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, opt := range r.opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply run option")
		}
	}

	return r, nil
}

// RunParsing ensures the parsed dataset is fresh.
func (r *Runner) RunParsing(ctx context.Context, ds Dataset) error {
	return r.run(ds, func() error {
		return r.runParsing(ctx, ds)
	})
}

// RunUntilPreprocessing ensures the dataset is parsed, then that its preprocessed representation is fresh.
func (r *Runner) RunUntilPreprocessing(ctx context.Context, ds Dataset, cfg *bpe.CustomConfig) error {
	return r.run(ds, func() error {
		return r.runUntilPreprocessing(ctx, ds, cfg)
	})
}

// RunUntilBaseBPEVocab ensures the dataset is preprocessed, then that the base bpe vocabulary is fresh.
func (r *Runner) RunUntilBaseBPEVocab(ctx context.Context, ds Dataset, cfg *bpe.CustomConfig) error {
	return r.run(ds, func() error {
		err := r.runUntilPreprocessing(ctx, ds, cfg)
		if err != nil {
			return err
		}

		return r.stage(ctx, model.BaseBPEVocabStage, ds.BaseBPEVocab(), r.calcVocab(ds.Preprocessed(), ds.BaseBPEVocab()))
	})
}

// RunUntilVocab ensures the dataset is preprocessed, then that the full vocabulary is fresh.
func (r *Runner) RunUntilVocab(ctx context.Context, ds Dataset, cfg *bpe.CustomConfig) error {
	return r.run(ds, func() error {
		err := r.runUntilPreprocessing(ctx, ds, cfg)
		if err != nil {
			return err
		}

		// Earlier versions archived the base bpe vocabulary here when the full one was outdated.
		// Only the full vocabulary that was checked is archived now.
		return r.stage(ctx, model.VocabStage, ds.Vocab(), r.calcVocab(ds.Preprocessed(), ds.Vocab()))
	})
}

// Report returns the result of every stage visited by the last operation, in execution order.
func (r *Runner) Report() []model.StageResult {
	res := make([]model.StageResult, len(r.report))
	copy(res, r.report)

	return res
}

func (r *Runner) run(ds Dataset, fn func() error) error {
	if ds == nil {
		return ErrDatasetMustBeSet
	}

	r.parent = model.StartStage
	r.report = r.report[:0]

	runErr := fn()

	var finishErr error

	for _, opt := range r.opts {
		err := opt.Finish()
		if err != nil && finishErr == nil {
			finishErr = errors.Wrap(err, "unable to finish run option")
		}
	}

	if runErr != nil {
		return runErr
	}

	return finishErr
}

func (r *Runner) runParsing(ctx context.Context, ds Dataset) error {
	return r.stage(ctx, model.ParsingStage, ds.Parsed(), func(ctx context.Context) error {
		return r.parser.Parse(ctx, ds)
	})
}

func (r *Runner) runUntilPreprocessing(ctx context.Context, ds Dataset, cfg *bpe.CustomConfig) error {
	err := r.runParsing(ctx, ds)
	if err != nil {
		return err
	}

	return r.stage(ctx, model.PreprocessStage, ds.Preprocessed(), func(ctx context.Context) error {
		return r.converter.Convert(ctx, ds, cfg)
	})
}

func (r *Runner) calcVocab(src FileSet, dest Resource) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		files, err := src.Files()
		if err != nil {
			return err
		}

		return r.vocab.Calc(ctx, src.Path(), files, dest.Path())
	}
}

func (r *Runner) stage(ctx context.Context, info *model.StageInfo, res Resource, fn func(ctx context.Context) error) error {
	for _, opt := range r.opts {
		err := opt.PrepareStage(r.parent, info)
		if err != nil {
			return errors.Wrapf(err, "unable to prepare stage %s", info.Name)
		}
	}

	r.parent = info

	logger := r.logger.With("stage", info.Name)
	logger.InfoContext(ctx, "--- "+info.Title+"...")

	start := time.Now()
	outcome, err := Ensure(ctx, res, fn)
	elapsed := time.Since(start)

	result := model.StageResult{
		Name:     info.Name,
		Outcome:  outcome,
		Duration: elapsed,
	}
	if err != nil {
		result.Outcome = model.OutcomeFailed
		result.Error = err.Error()
	}

	r.report = append(r.report, result)

	for _, opt := range r.opts {
		optErr := opt.AfterStage(info, result.Outcome, elapsed)
		if optErr != nil && err == nil {
			return errors.Wrapf(optErr, "unable to complete stage %s", info.Name)
		}
	}

	if err != nil {
		logger.ErrorContext(ctx, "stage failed", "error", err)
		return err
	}

	switch outcome {
	case model.OutcomeSkipped:
		logger.InfoContext(ctx, info.UpToDate, "path", res.Path())
	case model.OutcomeRerun:
		logger.InfoContext(ctx, "outdated results archived and recomputed", "path", res.Path(), "elapsed", elapsed)
	default:
		logger.InfoContext(ctx, "stage completed", "path", res.Path(), "elapsed", elapsed)
	}

	return nil
}
