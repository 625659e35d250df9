package schedulers

import "fmt"

// SchedulePriority runs non-preemptive priority scheduling: whenever
// the CPU is free, the arrived process with the lowest priority value
// executes to completion. Equal priorities resolve to input order.
// Every process must carry a priority; otherwise the whole run is
// rejected before any simulation happens.
func SchedulePriority(specs []ProcessSpec) (*ScheduleResult, error) {
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if spec.Priority == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingPriority, spec.ID)
		}
	}
	result := scheduleBySelection(AlgorithmPriority, specs, func(a, b ProcessSpec) bool {
		return *a.Priority < *b.Priority
	})
	return result, nil
}
