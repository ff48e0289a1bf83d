package measure

import (
	"sync"
	"time"

	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

type DefaultMetric struct {
	outcomes    map[model.Outcome]int64
	mu          *sync.Mutex
	stepElapsed time.Duration
	total       int64
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.stepElapsed += elapsed
}

func (mt *DefaultMetric) AddOutcome(outcome model.Outcome) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.outcomes[outcome]++
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.stepElapsed
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.stepElapsed) / float64(mt.total)))
}

func (mt *DefaultMetric) Outcomes() map[model.Outcome]int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	res := make(map[model.Outcome]int64, len(mt.outcomes))
	for outcome, total := range mt.outcomes {
		res[outcome] = total
	}

	return res
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Minute)
	case d > time.Minute:
		d = d.Round(time.Second)
	case d > time.Second:
		d = d.Round(time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
