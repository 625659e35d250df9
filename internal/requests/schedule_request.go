package requests

import "schedsim/internal/schedulers"

// Process is one process row submitted by a client. Times are integer
// ticks; priority is optional and only required by the priority policy.
type Process struct {
	ID          string `json:"id"`
	ArrivalTime int    `json:"arrival_time"`
	BurstTime   int    `json:"burst_time"`
	Priority    *int   `json:"priority,omitempty"`
}

// ScheduleRequest is the body accepted by the scheduling endpoints.
// Algorithm is only honored by the generic endpoint; TimeQuantum only
// by round-robin, falling back to the configured default when zero.
type ScheduleRequest struct {
	Algorithm   string    `json:"algorithm,omitempty"`
	TimeQuantum int       `json:"time_quantum,omitempty"`
	Processes   []Process `json:"processes"`
}

// Specs converts the submitted rows into engine process specs,
// preserving input order.
func (r *ScheduleRequest) Specs() []schedulers.ProcessSpec {
	specs := make([]schedulers.ProcessSpec, len(r.Processes))
	for i, process := range r.Processes {
		specs[i] = schedulers.ProcessSpec{
			ID:          process.ID,
			ArrivalTime: process.ArrivalTime,
			BurstTime:   process.BurstTime,
			Priority:    process.Priority,
		}
	}
	return specs
}
