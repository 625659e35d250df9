package schedulers

import "sort"

// ScheduleFirstComeFirstServe runs the non-preemptive FCFS policy:
// processes execute to completion in arrival order. Simultaneous
// arrivals keep their input order.
func ScheduleFirstComeFirstServe(specs []ProcessSpec) (*ScheduleResult, error) {
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}

	// Sort a copy so the caller's slice is never reordered. The stable
	// sort is what preserves input order across equal arrival times.
	ordered := make([]ProcessSpec, len(specs))
	copy(ordered, specs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ArrivalTime < ordered[j].ArrivalTime
	})

	tasks := make([]ScheduledTask, 0, len(ordered))
	timeline := make([]TimelineBlock, 0, len(ordered))
	currentTime := 0

	for _, spec := range ordered {
		if currentTime < spec.ArrivalTime {
			timeline = append(timeline, TimelineBlock{Start: currentTime, End: spec.ArrivalTime, Idle: true})
			currentTime = spec.ArrivalTime
		}
		start := currentTime
		currentTime += spec.BurstTime
		timeline = append(timeline, TimelineBlock{ProcessID: spec.ID, Start: start, End: currentTime})
		tasks = append(tasks, completeTask(spec, start, currentTime))
	}

	return buildResult(AlgorithmFCFS, tasks, timeline), nil
}
