package model

import "time"

// RunOption defines the interface for options observing a run.
type RunOption interface {
	// New initialises the run option.
	New() error
	// PrepareStage runs before the freshness check of the stage.
	PrepareStage(parentStage, stage *StageInfo) error
	// AfterStage runs once the stage is skipped, ran or failed.
	AfterStage(stage *StageInfo, outcome Outcome, elapsed time.Duration) error
	// Finish runs after the top level operation returns.
	Finish() error
}
