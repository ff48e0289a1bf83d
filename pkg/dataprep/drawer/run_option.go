package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataprep/pkg/dataprep/measure"
	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

type runDrawer struct {
	Drawer
	m measure.Measure
}

func (rd *runDrawer) New() error {
	err := rd.AddStage(model.StartStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start stage to drawer")
	}

	return nil
}

func (rd *runDrawer) PrepareStage(parentStage, stage *model.StageInfo) error {
	err := rd.AddStage(stage.Name)
	if err != nil {
		return err
	}

	err = rd.AddLink(parentStage.Name, stage.Name)
	if err != nil {
		return err
	}

	return nil
}

func (rd *runDrawer) AfterStage(stage *model.StageInfo, outcome model.Outcome, _ time.Duration) error {
	return rd.SetOutcome(stage.Name, outcome)
}

func (rd *runDrawer) Finish() error {
	if rd.m != nil {
		err := rd.AddMeasure(rd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := rd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw stages")
	}

	return nil
}

// RunDrawer draws the stages visited by a run once it finishes.
// When measure is not nil, stages are labelled with their durations.
func RunDrawer(drawer Drawer, measure measure.Measure) model.RunOption {
	return &runDrawer{drawer, measure}
}
