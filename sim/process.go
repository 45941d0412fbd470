package sim

import "sort"

const (
	// Idle is the trace entry reported while no process occupies the CPU.
	Idle = -1
	// Unset marks a StartTime or FinishTime that has not been written yet.
	Unset int64 = -1
)

// Process is a unit of CPU work. ID, ArrivalTime and Burst are inputs; StartTime and
// FinishTime are written by the simulator, once each per run.
type Process struct {
	ID          int
	ArrivalTime int64
	Burst       int64
	StartTime   int64
	FinishTime  int64
}

// NewProcess returns a process with both result times Unset.
func NewProcess(id int, arrival, burst int64) Process {
	return Process{
		ID:          id,
		ArrivalTime: arrival,
		Burst:       burst,
		StartTime:   Unset,
		FinishTime:  Unset,
	}
}

// Started reports whether the process has been dispatched at least once.
func (p Process) Started() bool { return p.StartTime != Unset }

// SortByArrival orders processes by arrival time, keeping input order for equal arrivals.
// The simulator never sorts on its own: callers that accept unordered input opt in here.
func SortByArrival(processes []Process) {
	sort.SliceStable(processes, func(i, j int) bool {
		return processes[i].ArrivalTime < processes[j].ArrivalTime
	})
}
