// Package dataprep runs the stages of the preprocessing flow and makes sure a stage is not rerun when its
// results are already available.
//
// The flow is a linear chain: projects are parsed, the parsed data is converted to its token representation,
// and vocabularies (base bpe and full) are computed from the preprocessed files. Each stage produces a persisted
// artifact, and before running a stage the runner checks that artifact:
//
//   - when the artifact is not ready, the stage runs;
//   - when it is ready but outdated relative to its inputs, it is archived and the stage runs again;
//   - otherwise the stage is skipped.
//
// Every RunUntil operation first ensures its prerequisite stage, so asking for a vocabulary on a fresh checkout
// triggers parsing, preprocessing and the vocabulary computation in that order. The work itself is delegated to a
// ProjectParser, a ReprConverter and a VocabCalculator; the runner only sequences them.
//
// Run options from the measure and drawer packages can observe each stage, and Report returns the outcome of every
// stage of the last operation.
package dataprep
