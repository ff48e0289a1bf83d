// Package dataset stores the artifacts of the preprocessing stages on the filesystem.
//
// For a dataset named N, the artifacts live under the work directory as:
//
//	parsed/N                          parsed projects
//	repr/N/<repr id>                  preprocessed representation
//	vocab/N/base_bpe_vocab.tsv        base bpe vocabulary
//	vocab/N/<repr id>/vocab.tsv       full vocabulary
//
// A directory artifact is ready once it holds the ready marker. An artifact is outdated when one of its inputs
// changed after it became ready; stale artifacts are archived next to their path with a timestamp suffix.
package dataset

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataprep/pkg/bpe"
	"github.com/askiada/go-dataprep/pkg/dataprep"
)

const (
	BaseBPEVocabFileName = "base_bpe_vocab.tsv"
	VocabFileName        = "vocab.tsv"
)

var (
	ErrRawPathMustBeSet = errors.New("raw path must be set")
	ErrWorkDirMustBeSet = errors.New("work dir must be set")
)

// Options describes where a dataset comes from and where its artifacts go.
type Options struct {
	// Name defaults to the base name of RawPath.
	Name    string
	RawPath string
	WorkDir string
	BPE     *bpe.CustomConfig
}

// Dataset is a dataset whose stage artifacts live on the filesystem.
type Dataset struct {
	name    string
	rawPath string
	workDir string
	bpe     *bpe.CustomConfig

	parsed       *Artifact
	preprocessed *Artifact
	baseBPEVocab *Artifact
	vocab        *Artifact
}

// New creates a dataset. The raw path must be an existing directory.
func New(opts Options) (*Dataset, error) {
	if opts.RawPath == "" {
		return nil, ErrRawPathMustBeSet
	}

	if opts.WorkDir == "" {
		return nil, ErrWorkDirMustBeSet
	}

	rawPath, err := filepath.Abs(opts.RawPath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to resolve %s", opts.RawPath)
	}

	info, err := os.Stat(rawPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open raw dataset")
	}

	if !info.IsDir() {
		return nil, errors.Errorf("raw dataset %s is not a directory", rawPath)
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(rawPath)
	}

	ds := &Dataset{
		name:    name,
		rawPath: rawPath,
		workDir: opts.WorkDir,
		bpe:     opts.BPE,
	}

	reprID := opts.BPE.ReprID()

	parsedPath := filepath.Join(opts.WorkDir, "parsed", name)
	ds.parsed = NewArtifact("parsed", parsedPath, rawPath)

	reprInputs := []string{parsedPath}
	if opts.BPE != nil && opts.BPE.MergesFile != "" {
		reprInputs = append(reprInputs, opts.BPE.MergesFile)
	}

	reprPath := filepath.Join(opts.WorkDir, "repr", name, reprID)
	ds.preprocessed = NewArtifact("preprocessed", reprPath, reprInputs...)

	vocabDir := filepath.Join(opts.WorkDir, "vocab", name)
	ds.baseBPEVocab = NewArtifact("base_bpe_vocab", filepath.Join(vocabDir, BaseBPEVocabFileName), reprPath)
	ds.vocab = NewArtifact("vocab", filepath.Join(vocabDir, reprID, VocabFileName), reprPath)

	return ds, nil
}

func (ds *Dataset) Name() string { return ds.name }

func (ds *Dataset) RawPath() string { return ds.rawPath }

func (ds *Dataset) WorkDir() string { return ds.workDir }

// BPE returns the custom bpe config the dataset was created with, possibly nil.
func (ds *Dataset) BPE() *bpe.CustomConfig { return ds.bpe }

func (ds *Dataset) Parsed() dataprep.Resource { return ds.parsed }

func (ds *Dataset) Preprocessed() dataprep.FileSet { return ds.preprocessed }

func (ds *Dataset) BaseBPEVocab() dataprep.Resource { return ds.baseBPEVocab }

func (ds *Dataset) Vocab() dataprep.Resource { return ds.vocab }

var _ dataprep.Dataset = (*Dataset)(nil)
