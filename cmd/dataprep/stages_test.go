package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

// Note: t.Parallel() is omitted, the command tree and its flags are process globals.

const testConfig = `
log:
  level: error
workers:
  parser:
    command: sh
    args: ["-c", "cp \"$0\"/*.txt \"$1\"/", "{{.Src}}", "{{.Dest}}"]
  converter:
    command: sh
    args: ["-c", "cat \"$0\"/*.txt > \"$1\"/all.repr", "{{.Src}}", "{{.Dest}}"]
  vocab:
    command: sh
    args: ["-c", "cat $(cat \"$0\") | tr ' ' '\\n' | sort | uniq -c > \"$1\"", "{{.FilesList}}", "{{.Dest}}"]
`

type report struct {
	Stages []model.StageResult `json:"stages"`
}

func execute(t *testing.T, args ...string) (report, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	var got report
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	return got, err
}

func TestVocabCommand(t *testing.T) {
	root := t.TempDir()
	raw := filepath.Join(root, "small")
	require.NoError(t, os.MkdirAll(raw, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(raw, "a.txt"), []byte("a b a"), 0o600))

	cfgPath := filepath.Join(root, "dataprep.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o600))

	dotPath := filepath.Join(root, "stages.dot")
	work := filepath.Join(root, "work")

	got, err := execute(t, "vocab", "--config", cfgPath, "--raw", raw, "--work-dir", work, "--draw", dotPath)
	require.NoError(t, err)
	require.Len(t, got.Stages, 3)

	for _, stage := range got.Stages {
		assert.Equal(t, model.OutcomeRan, stage.Outcome)
	}

	assert.FileExists(t, filepath.Join(work, "vocab", "small", "default", "vocab.tsv"))
	dot, err := os.ReadFile(dotPath)
	require.NoError(t, err)
	assert.Contains(t, string(dot), `label="small";`)

	got, err = execute(t, "parse", "--config", cfgPath, "--raw", raw, "--work-dir", work)
	require.NoError(t, err)
	require.Len(t, got.Stages, 1)
	assert.Equal(t, model.OutcomeSkipped, got.Stages[0].Outcome)
}
