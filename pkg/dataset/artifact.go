package dataset

import (
	"github.com/askiada/go-dataprep/pkg/dataprep"
)

// Artifact is a stage output stored at a single path, compared against the paths it is computed from.
type Artifact struct {
	name   string
	path   string
	inputs []string
}

// NewArtifact creates an artifact stored at path and computed from inputs.
func NewArtifact(name, path string, inputs ...string) *Artifact {
	return &Artifact{
		name:   name,
		path:   path,
		inputs: inputs,
	}
}

func (a *Artifact) Name() string { return a.name }

func (a *Artifact) Path() string { return a.path }

func (a *Artifact) Inputs() []string { return a.inputs }

func (a *Artifact) Ready() bool { return IsPathReady(a.path) }

func (a *Artifact) IsOutdated() bool { return IsPathOutdated(a.path, a.inputs...) }

func (a *Artifact) Archive() error { return ArchivePath(a.path) }

func (a *Artifact) Files() ([]string, error) { return ListFiles(a.path) }

// MarkReady flags the artifact as complete.
func (a *Artifact) MarkReady() error { return MarkPathReady(a.path) }

// Prepare creates the directory the artifact is written into.
func (a *Artifact) Prepare(isDir bool) error { return PreparePath(a.path, isDir) }

var _ dataprep.FileSet = (*Artifact)(nil)
