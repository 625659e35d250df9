package schedulers

// Algorithm identifies one of the supported scheduling policies.
type Algorithm string

const (
	AlgorithmFCFS     Algorithm = "fcfs"
	AlgorithmSJF      Algorithm = "sjf"
	AlgorithmPriority Algorithm = "priority"
	AlgorithmRR       Algorithm = "rr"
)

// Algorithms returns the supported policies in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmFCFS, AlgorithmSJF, AlgorithmPriority, AlgorithmRR}
}

// ProcessSpec describes one process submitted for simulation. Times are
// abstract integer ticks, not wall-clock durations. Priority is only
// consulted by the priority policy; lower values mean more urgent.
type ProcessSpec struct {
	ID          string
	ArrivalTime int
	BurstTime   int
	Priority    *int
}

// ScheduledTask is the per-process outcome of a run. All fields are
// derived from the simulation: turnaround = completion - arrival,
// waiting = turnaround - burst, response = start - arrival.
type ScheduledTask struct {
	ID             string
	ArrivalTime    int
	BurstTime      int
	Priority       *int
	StartTime      int
	CompletionTime int
	ResponseTime   int
	TurnaroundTime int
	WaitingTime    int
}

// TimelineBlock is one contiguous interval [Start, End) of the Gantt
// timeline. Idle blocks carry no process ID. Blocks tile the whole
// makespan with no gaps and no overlaps.
type TimelineBlock struct {
	ProcessID string
	Start     int
	End       int
	Idle      bool
}

// ScheduleResult is the complete outcome of one simulation run. Tasks
// are ordered by completion time; the timeline is ordered by start.
type ScheduleResult struct {
	Algorithm         Algorithm
	Tasks             []ScheduledTask
	Timeline          []TimelineBlock
	AverageTurnaround float64
	AverageWaiting    float64
	AverageResponse   float64
	TotalTime         int
	IdleTime          int
	CPUUtilization    float64
	Throughput        float64
}
