package model

import "time"

// StageInfo identifies a stage of the preprocessing chain.
type StageInfo struct {
	Name string
	// Title is logged when the stage starts, UpToDate when its results are fresh.
	Title    string
	UpToDate string
}

var (
	StartStage = &StageInfo{Name: "start"}

	ParsingStage = &StageInfo{
		Name:     "parsing",
		Title:    "Parsing",
		UpToDate: "Parsed dataset is up-to-date.",
	}
	PreprocessStage = &StageInfo{
		Name:     "preprocessing",
		Title:    "Preprocessing",
		UpToDate: "Dataset is already preprocessed and up-to-date.",
	}
	BaseBPEVocabStage = &StageInfo{
		Name:     "base_bpe_vocab",
		Title:    "Computing base bpe vocab",
		UpToDate: "Vocabulary is already computed and up-to-date",
	}
	VocabStage = &StageInfo{
		Name:     "vocab",
		Title:    "Computing vocab",
		UpToDate: "Vocabulary is already computed and up-to-date",
	}
)

// Outcome is the decision taken by a freshness check.
type Outcome string

const (
	// OutcomeRan means no results existed and the stage ran.
	OutcomeRan Outcome = "ran"
	// OutcomeRerun means stale results were archived and the stage ran again.
	OutcomeRerun Outcome = "rerun"
	// OutcomeSkipped means results were fresh.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the stage was attempted and returned an error.
	OutcomeFailed Outcome = "failed"
)

// StageResult is the record of one stage of a run.
type StageResult struct {
	Name     string        `json:"name"`
	Outcome  Outcome       `json:"outcome"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}
