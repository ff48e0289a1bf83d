package measure

import (
	"time"

	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

type runMeasure struct {
	Measure
}

func (rm *runMeasure) New() error {
	rm.AddMetric(model.StartStage.Name)
	return nil
}

func (rm *runMeasure) PrepareStage(_, stage *model.StageInfo) error {
	rm.AddMetric(stage.Name)
	return nil
}

func (rm *runMeasure) AfterStage(stage *model.StageInfo, outcome model.Outcome, elapsed time.Duration) error {
	mt := rm.AddMetric(stage.Name)
	mt.AddDuration(elapsed)
	mt.AddOutcome(outcome)

	return nil
}

func (rm *runMeasure) Finish() error {
	return nil
}

// RunMeasure records the duration and outcome of every stage into measure.
func RunMeasure(measure Measure) model.RunOption {
	return &runMeasure{measure}
}
