package schedulers

import "fmt"

// ParseAlgorithm maps a wire-level name onto its Algorithm value.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch algorithm := Algorithm(name); algorithm {
	case AlgorithmFCFS, AlgorithmSJF, AlgorithmPriority, AlgorithmRR:
		return algorithm, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
}

// Schedule dispatches a process set to the requested policy. quantum is
// only consulted by round-robin and ignored everywhere else.
func Schedule(algorithm Algorithm, specs []ProcessSpec, quantum int) (*ScheduleResult, error) {
	switch algorithm {
	case AlgorithmFCFS:
		return ScheduleFirstComeFirstServe(specs)
	case AlgorithmSJF:
		return ScheduleShortestJobFirst(specs)
	case AlgorithmPriority:
		return SchedulePriority(specs)
	case AlgorithmRR:
		return ScheduleRoundRobin(specs, quantum)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

func validateSpecs(specs []ProcessSpec) error {
	if len(specs) == 0 {
		return ErrEmptyInput
	}
	for _, spec := range specs {
		if spec.ArrivalTime < 0 {
			return fmt.Errorf("%w: %q has negative arrival time %d", ErrInvalidProcess, spec.ID, spec.ArrivalTime)
		}
		if spec.BurstTime <= 0 {
			return fmt.Errorf("%w: %q has non-positive burst time %d", ErrInvalidProcess, spec.ID, spec.BurstTime)
		}
	}
	return nil
}

// procState is the per-process bookkeeping row used by the simulation
// loops. Every run builds its own table, so concurrent runs over the
// same input never share state and the caller's slice is never touched.
type procState struct {
	spec      ProcessSpec
	remaining int
	started   bool
	start     int
	queued    bool
	done      bool
}

func newStateTable(specs []ProcessSpec) []procState {
	table := make([]procState, len(specs))
	for i, spec := range specs {
		table[i] = procState{spec: spec, remaining: spec.BurstTime}
	}
	return table
}

// nextArrival returns the earliest arrival time among unfinished
// processes. Callers only invoke it while at least one remains.
func nextArrival(table []procState) int {
	next := -1
	for i := range table {
		if table[i].done {
			continue
		}
		if next == -1 || table[i].spec.ArrivalTime < next {
			next = table[i].spec.ArrivalTime
		}
	}
	return next
}

// scheduleBySelection drives the non-preemptive loop shared by SJF and
// priority scheduling: at every decision point it scans the arrived,
// unfinished processes and runs the best one to completion. less
// reports whether a is a strictly better pick than b; the scan keeps
// the earlier candidate on ties, so equal keys resolve to input order.
func scheduleBySelection(algorithm Algorithm, specs []ProcessSpec, less func(a, b ProcessSpec) bool) *ScheduleResult {
	table := newStateTable(specs)
	tasks := make([]ScheduledTask, 0, len(table))
	timeline := make([]TimelineBlock, 0, len(table))
	currentTime := 0

	for len(tasks) < len(table) {
		selected := -1
		for i := range table {
			if table[i].done || table[i].spec.ArrivalTime > currentTime {
				continue
			}
			if selected == -1 || less(table[i].spec, table[selected].spec) {
				selected = i
			}
		}

		// Nothing has arrived yet: record the gap and jump to the
		// next arrival instead of ticking through it.
		if selected == -1 {
			next := nextArrival(table)
			timeline = append(timeline, TimelineBlock{Start: currentTime, End: next, Idle: true})
			currentTime = next
			continue
		}

		spec := table[selected].spec
		start := currentTime
		currentTime += spec.BurstTime
		timeline = append(timeline, TimelineBlock{ProcessID: spec.ID, Start: start, End: currentTime})
		tasks = append(tasks, completeTask(spec, start, currentTime))
		table[selected].done = true
	}

	return buildResult(algorithm, tasks, timeline)
}
