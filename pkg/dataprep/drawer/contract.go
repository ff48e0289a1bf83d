package drawer

import (
	"github.com/askiada/go-dataprep/pkg/dataprep/measure"
	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

// Drawer is an interface that defines the methods for drawing the stages of a run.
type Drawer interface {
	// AddStage adds a stage to the drawer.
	AddStage(stageName string) error
	// AddLink adds a link between a prerequisite stage and the stage depending on it.
	AddLink(parentStageName, stageName string) error
	// SetOutcome records the outcome of the stage.
	SetOutcome(stageName string, outcome model.Outcome) error
	// AddMeasure adds a measure to the drawer.
	AddMeasure(measure measure.Measure) error
	// Draw creates a file with the stage graph.
	Draw() error
}
