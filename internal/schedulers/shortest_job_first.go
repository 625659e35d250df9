package schedulers

// ScheduleShortestJobFirst runs non-preemptive SJF: whenever the CPU is
// free, the arrived process with the smallest burst time executes to
// completion. A shorter job arriving mid-burst never interrupts the
// running one, and equal bursts resolve to input order.
func ScheduleShortestJobFirst(specs []ProcessSpec) (*ScheduleResult, error) {
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}
	result := scheduleBySelection(AlgorithmSJF, specs, func(a, b ProcessSpec) bool {
		return a.BurstTime < b.BurstTime
	})
	return result, nil
}
