package dataprep

import (
	"context"

	"github.com/askiada/go-dataprep/pkg/bpe"
)

// Resource is a persisted stage artifact that knows its own freshness.
type Resource interface {
	// Name identifies the resource in logs.
	Name() string
	// Path is where the artifact lives.
	Path() string
	// Ready reports whether the artifact has been completely produced.
	Ready() bool
	// IsOutdated reports whether the artifact is older than its inputs.
	IsOutdated() bool
	// Archive moves the artifact aside so it can be recomputed.
	Archive() error
}

// FileSet is a Resource made of many files.
type FileSet interface {
	Resource
	// Files lists the files of the set.
	Files() ([]string, error)
}

// Dataset exposes the artifacts of every stage for a single dataset.
type Dataset interface {
	Name() string
	// RawPath is the location of the raw projects.
	RawPath() string
	Parsed() Resource
	Preprocessed() FileSet
	BaseBPEVocab() Resource
	Vocab() Resource
}

// ProjectParser turns raw projects into the parsed artifact.
type ProjectParser interface {
	Parse(ctx context.Context, ds Dataset) error
}

// ReprConverter turns the parsed artifact into the preprocessed representation.
// A nil config selects the default representation.
type ReprConverter interface {
	Convert(ctx context.Context, ds Dataset, cfg *bpe.CustomConfig) error
}

// VocabCalculator computes a vocabulary over the files found under srcPath and writes it to destPath.
type VocabCalculator interface {
	Calc(ctx context.Context, srcPath string, files []string, destPath string) error
}
