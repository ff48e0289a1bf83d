package measure

import (
	"time"

	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

type Measure interface {
	AddMetric(name string) Metric
	AllMetrics() map[string]Metric
}

type Metric interface {
	AddDuration(elapsed time.Duration)
	AddOutcome(outcome model.Outcome)
	AVGDuration() time.Duration
	GetTotalDuration() time.Duration
	Outcomes() map[model.Outcome]int64
}
