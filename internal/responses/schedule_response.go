package responses

import "schedsim/internal/schedulers"

// TaskResponse is one row of the per-process timing table.
type TaskResponse struct {
	ID             string `json:"id"`
	ArrivalTime    int    `json:"arrival_time"`
	BurstTime      int    `json:"burst_time"`
	Priority       *int   `json:"priority,omitempty"`
	StartTime      int    `json:"start_time"`
	CompletionTime int    `json:"completion_time"`
	ResponseTime   int    `json:"response_time"`
	TurnAroundTime int    `json:"turn_around_time"`
	WaitingTime    int    `json:"waiting_time"`
}

// TimelineBlockResponse is one Gantt interval. Idle gaps carry no
// process id.
type TimelineBlockResponse struct {
	ProcessID string `json:"process_id,omitempty"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Idle      bool   `json:"idle,omitempty"`
}

// ScheduleResponse is the full outcome of one simulation run.
type ScheduleResponse struct {
	Algorithm             string                  `json:"algorithm"`
	TimeQuantum           int                     `json:"time_quantum,omitempty"`
	TotalTime             int                     `json:"total_time"`
	IdleTime              int                     `json:"idle_time"`
	AverageWaitingTime    float64                 `json:"average_waiting_time"`
	AverageResponseTime   float64                 `json:"average_response_time"`
	AverageTurnAroundTime float64                 `json:"average_turn_around_time"`
	CpuUtilization        float64                 `json:"cpu_utilization"`
	CpuThroughput         float64                 `json:"cpu_throughput"`
	Details               []TaskResponse          `json:"details"`
	Timeline              []TimelineBlockResponse `json:"timeline"`
}

// ComparisonResponse carries one run per algorithm over the same
// process set.
type ComparisonResponse struct {
	Results []ScheduleResponse `json:"results"`
}

// FromResult shapes an engine result for the wire. The quantum is
// echoed back for round-robin runs only.
func FromResult(result *schedulers.ScheduleResult, timeQuantum int) ScheduleResponse {
	details := make([]TaskResponse, len(result.Tasks))
	for i, task := range result.Tasks {
		details[i] = TaskResponse{
			ID:             task.ID,
			ArrivalTime:    task.ArrivalTime,
			BurstTime:      task.BurstTime,
			Priority:       task.Priority,
			StartTime:      task.StartTime,
			CompletionTime: task.CompletionTime,
			ResponseTime:   task.ResponseTime,
			TurnAroundTime: task.TurnaroundTime,
			WaitingTime:    task.WaitingTime,
		}
	}

	timeline := make([]TimelineBlockResponse, len(result.Timeline))
	for i, block := range result.Timeline {
		timeline[i] = TimelineBlockResponse{
			ProcessID: block.ProcessID,
			Start:     block.Start,
			End:       block.End,
			Idle:      block.Idle,
		}
	}

	response := ScheduleResponse{
		Algorithm:             string(result.Algorithm),
		TotalTime:             result.TotalTime,
		IdleTime:              result.IdleTime,
		AverageWaitingTime:    result.AverageWaiting,
		AverageResponseTime:   result.AverageResponse,
		AverageTurnAroundTime: result.AverageTurnaround,
		CpuUtilization:        result.CPUUtilization,
		CpuThroughput:         result.Throughput,
		Details:               details,
		Timeline:              timeline,
	}
	if result.Algorithm == schedulers.AlgorithmRR {
		response.TimeQuantum = timeQuantum
	}
	return response
}
