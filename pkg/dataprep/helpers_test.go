package dataprep_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dataprep/pkg/bpe"
	"github.com/askiada/go-dataprep/pkg/dataprep"
	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

// events records every call made on the fakes, in order.
type events struct {
	list []string
}

func (e *events) add(event string) {
	e.list = append(e.list, event)
}

type fakeResource struct {
	name       string
	path       string
	ready      bool
	outdated   bool
	archiveErr error
	files      []string
	filesErr   error
	ev         *events
}

func (f *fakeResource) Name() string { return f.name }

func (f *fakeResource) Path() string { return f.path }

func (f *fakeResource) Ready() bool {
	f.ev.add("ready " + f.name)
	return f.ready
}

func (f *fakeResource) IsOutdated() bool {
	f.ev.add("outdated " + f.name)
	return f.outdated
}

func (f *fakeResource) Archive() error {
	f.ev.add("archive " + f.name)
	return f.archiveErr
}

func (f *fakeResource) Files() ([]string, error) {
	return f.files, f.filesErr
}

type fakeDataset struct {
	parsed       *fakeResource
	preprocessed *fakeResource
	baseVocab    *fakeResource
	vocab        *fakeResource
}

func (d *fakeDataset) Name() string { return "fake" }
func (d *fakeDataset) RawPath() string { return "/raw/fake" }
func (d *fakeDataset) Parsed() dataprep.Resource { return d.parsed }
func (d *fakeDataset) Preprocessed() dataprep.FileSet { return d.preprocessed }
func (d *fakeDataset) BaseBPEVocab() dataprep.Resource { return d.baseVocab }
func (d *fakeDataset) Vocab() dataprep.Resource { return d.vocab }

type state struct {
	ready    bool
	outdated bool
}

var (
	missing = state{}
	fresh   = state{ready: true}
	stale   = state{ready: true, outdated: true}
)

func newFakeDataset(ev *events, parsed, preprocessed, baseVocab, vocab state) *fakeDataset {
	return &fakeDataset{
		parsed:       &fakeResource{name: "parsed", path: "/work/parsed", ready: parsed.ready, outdated: parsed.outdated, ev: ev},
		preprocessed: &fakeResource{name: "preprocessed", path: "/work/repr", ready: preprocessed.ready, outdated: preprocessed.outdated, files: []string{"/work/repr/a", "/work/repr/b"}, ev: ev},
		baseVocab:    &fakeResource{name: "base_vocab", path: "/work/base_vocab.tsv", ready: baseVocab.ready, outdated: baseVocab.outdated, ev: ev},
		vocab:        &fakeResource{name: "vocab", path: "/work/vocab.tsv", ready: vocab.ready, outdated: vocab.outdated, ev: ev},
	}
}

type fakeParser struct {
	ev    *events
	err   error
	calls int
}

func (f *fakeParser) Parse(_ context.Context, _ dataprep.Dataset) error {
	f.calls++
	f.ev.add("parse")
	return f.err
}

type fakeConverter struct {
	ev    *events
	err   error
	calls int
	cfg   *bpe.CustomConfig
}

func (f *fakeConverter) Convert(_ context.Context, _ dataprep.Dataset, cfg *bpe.CustomConfig) error {
	f.calls++
	f.cfg = cfg
	f.ev.add("convert")
	return f.err
}

type vocabCall struct {
	src   string
	files []string
	dest  string
}

type fakeVocab struct {
	ev    *events
	err   error
	calls []vocabCall
}

func (f *fakeVocab) Calc(_ context.Context, srcPath string, files []string, destPath string) error {
	f.calls = append(f.calls, vocabCall{src: srcPath, files: files, dest: destPath})
	f.ev.add("calc " + destPath)
	return f.err
}

type fakeRunOption struct {
	name      string
	ev        *events
	finishErr error
}

func (f *fakeRunOption) New() error { return nil }

func (f *fakeRunOption) PrepareStage(_, _ *model.StageInfo) error { return nil }

func (f *fakeRunOption) AfterStage(_ *model.StageInfo, _ model.Outcome, _ time.Duration) error {
	return nil
}

func (f *fakeRunOption) Finish() error {
	f.ev.add("finish " + f.name)
	return f.finishErr
}

type fixture struct {
	ev        *events
	parser    *fakeParser
	converter *fakeConverter
	vocab     *fakeVocab
	runner    *dataprep.Runner
}

func newFixture(t *testing.T, opts ...dataprep.Option) *fixture {
	t.Helper()

	ev := &events{}
	f := &fixture{
		ev:        ev,
		parser:    &fakeParser{ev: ev},
		converter: &fakeConverter{ev: ev},
		vocab:     &fakeVocab{ev: ev},
	}

	runner, err := dataprep.New(f.parser, f.converter, f.vocab, opts...)
	require.NoError(t, err)

	f.runner = runner

	return f
}
