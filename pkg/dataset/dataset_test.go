package dataset_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dataprep/pkg/bpe"
	"github.com/askiada/go-dataprep/pkg/dataset"
)

func TestNewMissingPaths(t *testing.T) {
	t.Parallel()

	_, err := dataset.New(dataset.Options{WorkDir: t.TempDir()})
	require.ErrorIs(t, err, dataset.ErrRawPathMustBeSet)

	_, err = dataset.New(dataset.Options{RawPath: t.TempDir()})
	require.ErrorIs(t, err, dataset.ErrWorkDirMustBeSet)
}

func TestNewRawNotADirectory(t *testing.T) {
	t.Parallel()

	raw := filepath.Join(t.TempDir(), "raw.txt")
	writeFile(t, raw, "not a dir")

	_, err := dataset.New(dataset.Options{RawPath: raw, WorkDir: t.TempDir()})
	require.Error(t, err)
}

func TestNewLayout(t *testing.T) {
	t.Parallel()

	raw := filepath.Join(t.TempDir(), "allamanis")
	writeFile(t, filepath.Join(raw, "p", "A.java"), "class A {}")
	work := t.TempDir()

	ds, err := dataset.New(dataset.Options{RawPath: raw, WorkDir: work})
	require.NoError(t, err)

	assert.Equal(t, "allamanis", ds.Name())
	assert.Equal(t, raw, ds.RawPath())
	assert.Nil(t, ds.BPE())
	assert.Equal(t, filepath.Join(work, "parsed", "allamanis"), ds.Parsed().Path())
	assert.Equal(t, filepath.Join(work, "repr", "allamanis", "default"), ds.Preprocessed().Path())
	assert.Equal(t, filepath.Join(work, "vocab", "allamanis", dataset.BaseBPEVocabFileName), ds.BaseBPEVocab().Path())
	assert.Equal(t, filepath.Join(work, "vocab", "allamanis", "default", dataset.VocabFileName), ds.Vocab().Path())
	assert.False(t, ds.Parsed().Ready())
}

func TestNewCustomBPE(t *testing.T) {
	t.Parallel()

	raw := t.TempDir()
	work := t.TempDir()
	cfg, err := bpe.NewCustomConfig("java", 1000, "/merges/java.txt", "")
	require.NoError(t, err)

	ds, err := dataset.New(dataset.Options{Name: "small", RawPath: raw, WorkDir: work, BPE: cfg})
	require.NoError(t, err)

	assert.Equal(t, "small", ds.Name())
	assert.Equal(t, filepath.Join(work, "repr", "small", "bpe_java_1000"), ds.Preprocessed().Path())

	repr, ok := ds.Preprocessed().(*dataset.Artifact)
	require.True(t, ok)
	assert.Equal(t, []string{ds.Parsed().Path(), "/merges/java.txt"}, repr.Inputs())
}

func TestArtifactLifecycle(t *testing.T) {
	t.Parallel()

	raw := t.TempDir()
	writeFile(t, filepath.Join(raw, "p", "A.java"), "class A {}")
	ds, err := dataset.New(dataset.Options{RawPath: raw, WorkDir: t.TempDir()})
	require.NoError(t, err)

	parsed, ok := ds.Parsed().(*dataset.Artifact)
	require.True(t, ok)
	require.NoError(t, parsed.Prepare(true))
	writeFile(t, filepath.Join(parsed.Path(), "p.parsed"), "parsed")
	require.NoError(t, parsed.MarkReady())

	assert.True(t, parsed.Ready())
	assert.False(t, parsed.IsOutdated())

	files, err := parsed.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(parsed.Path(), "p.parsed")}, files)

	require.NoError(t, parsed.Archive())
	assert.False(t, parsed.Ready())
}
