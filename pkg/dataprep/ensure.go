package dataprep

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

// Ensure makes sure res holds fresh results.
// When res is not ready, run is called. When res is ready but outdated, res is archived before run is called.
// Otherwise nothing happens and OutcomeSkipped is returned.
// An error returned by run is passed through unchanged.
func Ensure(ctx context.Context, res Resource, run func(ctx context.Context) error) (model.Outcome, error) {
	if res == nil {
		return "", ErrResourceMustBeSet
	}

	if !res.Ready() {
		return model.OutcomeRan, run(ctx)
	}

	if !res.IsOutdated() {
		return model.OutcomeSkipped, nil
	}

	err := res.Archive()
	if err != nil {
		return model.OutcomeRerun, errors.Wrapf(err, "unable to archive %s", res.Name())
	}

	return model.OutcomeRerun, run(ctx)
}
