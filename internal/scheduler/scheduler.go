package scheduler

import (
	"github.com/SeyhmusGuler/SCIRun/internal/logger"
)

// SerialScheduler produces a single topological order.
type SerialScheduler struct {
	filter ModuleFilter
	log    *logger.Logger
}

// NewSerialScheduler creates a SerialScheduler. A nil filter schedules every
// module.
func NewSerialScheduler(filter ModuleFilter, log *logger.Logger) *SerialScheduler {
	return &SerialScheduler{filter: filter, log: log}
}

// Schedule analyzes net and returns its serial execution order.
func (s *SerialScheduler) Schedule(net NetworkView) (ModuleExecutionOrder, error) {
	analyzer, err := NewNetworkGraphAnalyzer(net, s.filter, s.log)
	if err != nil {
		return ModuleExecutionOrder{}, err
	}
	return NewModuleExecutionOrder(analyzer.TopologicalModules()), nil
}

// ParallelScheduler groups modules into levels that may run concurrently.
type ParallelScheduler struct {
	filter ModuleFilter
	log    *logger.Logger
}

// NewParallelScheduler creates a ParallelScheduler. A nil filter schedules
// every module.
func NewParallelScheduler(filter ModuleFilter, log *logger.Logger) *ParallelScheduler {
	return &ParallelScheduler{filter: filter, log: log}
}

// Schedule analyzes net and returns its level grouping.
func (s *ParallelScheduler) Schedule(net NetworkView) (ParallelModuleExecutionOrder, error) {
	analyzer, err := NewNetworkGraphAnalyzer(net, s.filter, s.log)
	if err != nil {
		return ParallelModuleExecutionOrder{}, err
	}
	order := BuildParallelOrder(analyzer)
	s.log.Component("scheduler").WithFields(map[string]any{
		"modules": order.Len(),
		"groups":  order.MaxGroup() + 1,
	}).Debug("parallel schedule computed")
	return order, nil
}
