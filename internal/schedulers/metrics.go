package schedulers

// completeTask derives the timing metrics for a process that just
// finished. The priority value is cloned so results never alias the
// caller's input.
func completeTask(spec ProcessSpec, start, completion int) ScheduledTask {
	turnaround := completion - spec.ArrivalTime
	task := ScheduledTask{
		ID:             spec.ID,
		ArrivalTime:    spec.ArrivalTime,
		BurstTime:      spec.BurstTime,
		StartTime:      start,
		CompletionTime: completion,
		ResponseTime:   start - spec.ArrivalTime,
		TurnaroundTime: turnaround,
		WaitingTime:    turnaround - spec.BurstTime,
	}
	if spec.Priority != nil {
		priority := *spec.Priority
		task.Priority = &priority
	}
	return task
}

func calculateAverages(tasks []ScheduledTask) (averageTurnaround, averageWaiting, averageResponse float64) {
	var turnaroundSum float64
	var waitingSum float64
	var responseSum float64

	for _, task := range tasks {
		turnaroundSum += float64(task.TurnaroundTime)
		waitingSum += float64(task.WaitingTime)
		responseSum += float64(task.ResponseTime)
	}

	taskCount := float64(len(tasks))

	averageTurnaround = turnaroundSum / taskCount
	averageWaiting = waitingSum / taskCount
	averageResponse = responseSum / taskCount
	return
}

// buildResult assembles the aggregate view of a finished run. tasks
// arrive in completion order and the timeline in start order; both are
// kept as-is.
func buildResult(algorithm Algorithm, tasks []ScheduledTask, timeline []TimelineBlock) *ScheduleResult {
	averageTurnaround, averageWaiting, averageResponse := calculateAverages(tasks)

	totalTime := 0
	if len(timeline) > 0 {
		totalTime = timeline[len(timeline)-1].End
	}
	idleTime := 0
	for _, block := range timeline {
		if block.Idle {
			idleTime += block.End - block.Start
		}
	}

	result := &ScheduleResult{
		Algorithm:         algorithm,
		Tasks:             tasks,
		Timeline:          timeline,
		AverageTurnaround: averageTurnaround,
		AverageWaiting:    averageWaiting,
		AverageResponse:   averageResponse,
		TotalTime:         totalTime,
		IdleTime:          idleTime,
	}
	if totalTime > 0 {
		result.CPUUtilization = 1 - float64(idleTime)/float64(totalTime)
		result.Throughput = float64(len(tasks)) / float64(totalTime)
	}
	return result
}
