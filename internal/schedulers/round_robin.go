package schedulers

import "fmt"

// ScheduleRoundRobin runs the preemptive round-robin policy with a
// fixed time quantum. The ready queue is FIFO. When a slice expires,
// processes that arrived during it enter the queue before the preempted
// process is put back, and a process finishing exactly on the quantum
// boundary completes instead of being requeued.
func ScheduleRoundRobin(specs []ProcessSpec, timeQuantum int) (*ScheduleResult, error) {
	if timeQuantum <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantum, timeQuantum)
	}
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}

	table := newStateTable(specs)
	tasks := make([]ScheduledTask, 0, len(table))
	timeline := make([]TimelineBlock, 0, len(table))
	queue := make([]int, 0, len(table))

	// admit moves every process that has arrived by t into the ready
	// queue, scanning in input order so simultaneous arrivals keep
	// their submission order. The running process is never admitted.
	admit := func(t, running int) {
		for i := range table {
			if table[i].done || table[i].queued || i == running {
				continue
			}
			if table[i].spec.ArrivalTime <= t {
				table[i].queued = true
				queue = append(queue, i)
			}
		}
	}

	currentTime := 0

	for len(tasks) < len(table) {
		admit(currentTime, -1)

		// Empty queue with work left means nothing has arrived yet:
		// record the gap and jump to the next arrival.
		if len(queue) == 0 {
			next := nextArrival(table)
			timeline = append(timeline, TimelineBlock{Start: currentTime, End: next, Idle: true})
			currentTime = next
			continue
		}

		running := queue[0]
		queue = queue[1:]
		table[running].queued = false
		if !table[running].started {
			table[running].started = true
			table[running].start = currentTime
		}

		run := timeQuantum
		if table[running].remaining < run {
			run = table[running].remaining
		}
		timeline = append(timeline, TimelineBlock{ProcessID: table[running].spec.ID, Start: currentTime, End: currentTime + run})
		currentTime += run
		table[running].remaining -= run

		// Completion wins over quantum expiry: a process finishing
		// exactly on the boundary is never requeued.
		if table[running].remaining == 0 {
			table[running].done = true
			tasks = append(tasks, completeTask(table[running].spec, table[running].start, currentTime))
			continue
		}

		// Quantum expired. Arrivals during the slice go in ahead of
		// the preempted process.
		admit(currentTime, running)
		table[running].queued = true
		queue = append(queue, running)
	}

	return buildResult(AlgorithmRR, tasks, timeline), nil
}
