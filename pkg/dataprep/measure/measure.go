package measure

import (
	"sync"

	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

type DefaultMeasure struct {
	mu     sync.Mutex
	Stages map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Stages: make(map[string]Metric),
	}
}

// AddMetric returns the metric of the stage, creating it on first use.
func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.Stages[name]; ok {
		return mt
	}

	mt := &DefaultMetric{
		mu:       &sync.Mutex{},
		outcomes: make(map[model.Outcome]int64),
	}
	m.Stages[name] = mt

	return mt
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make(map[string]Metric, len(m.Stages))
	for name, mt := range m.Stages {
		res[name] = mt
	}

	return res
}

var _ Measure = (*DefaultMeasure)(nil)
