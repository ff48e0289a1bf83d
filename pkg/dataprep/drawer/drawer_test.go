package drawer_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dataprep/pkg/dataprep/drawer"
	"github.com/askiada/go-dataprep/pkg/dataprep/measure"
	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

func TestDOTDrawerAddStageTwice(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "stages.dot"))
	require.NoError(t, d.AddStage("parsing"))
	require.NoError(t, d.AddStage("parsing"))
	require.NoError(t, d.AddStage("preprocessing"))
	require.NoError(t, d.AddLink("parsing", "preprocessing"))
	require.NoError(t, d.AddLink("parsing", "preprocessing"))
}

func TestDOTDrawerUnknownStage(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "stages.dot"))
	require.Error(t, d.AddLink("parsing", "preprocessing"))
	require.Error(t, d.SetOutcome("parsing", model.OutcomeRan))
}

func TestDOTDrawerUnknownOutcome(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "stages.dot"))
	require.NoError(t, d.AddStage("parsing"))
	require.Error(t, d.SetOutcome("parsing", model.Outcome("unknown")))
}

func TestRunDrawer(t *testing.T) {
	t.Parallel()

	fileName := filepath.Join(t.TempDir(), "stages.dot")
	msr := measure.NewDefaultMeasure()
	opts := []model.RunOption{
		measure.RunMeasure(msr),
		drawer.RunDrawer(drawer.NewDOTDrawer(fileName, drawer.GraphAttribute("label", "java-small")), msr),
	}

	for _, opt := range opts {
		require.NoError(t, opt.New())
	}

	stages := []struct {
		parent, stage *model.StageInfo
		outcome       model.Outcome
		elapsed       time.Duration
	}{
		{model.StartStage, model.ParsingStage, model.OutcomeSkipped, time.Millisecond},
		{model.ParsingStage, model.PreprocessStage, model.OutcomeRerun, time.Second},
		{model.PreprocessStage, model.VocabStage, model.OutcomeFailed, 2 * time.Second},
	}

	for _, s := range stages {
		for _, opt := range opts {
			require.NoError(t, opt.PrepareStage(s.parent, s.stage))
			require.NoError(t, opt.AfterStage(s.stage, s.outcome, s.elapsed))
		}
	}

	for _, opt := range opts {
		require.NoError(t, opt.Finish())
	}

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)

	got := string(content)
	assert.Contains(t, got, "strict digraph")
	assert.Contains(t, got, `label="java-small";`)
	assert.Contains(t, got, `rankdir="LR";`)
	assert.Contains(t, got, `"start" -> "parsing"`)
	assert.Contains(t, got, `"parsing" -> "preprocessing"`)
	assert.Contains(t, got, `"preprocessing" -> "vocab"`)
	assert.Contains(t, got, `tooltip="failed"`)
	assert.Contains(t, got, `tooltip="skipped"`)
	assert.Contains(t, got, `label="2s"`)
	assert.Contains(t, got, `fillcolor="#ff6347"`)
}
