package sim

import (
	"gonum.org/v1/gonum/stat"
)

// ProcessMetrics holds the timing figures of one finished process.
type ProcessMetrics struct {
	ID          int
	ArrivalTime int64
	Burst       int64
	StartTime   int64
	FinishTime  int64
	// Response is the delay between arrival and first dispatch.
	Response int64
	// Wait is the time spent ready but not running.
	Wait       int64
	Turnaround int64
}

// Metrics summarises a finished run.
type Metrics struct {
	Processes []ProcessMetrics
	// Makespan is the clock value once the last process finished.
	Makespan int64
	IdleTime int64
	BusyTime int64

	AvgResponse   float64
	AvgWait       float64
	AvgTurnaround float64
	// Throughput is completed processes per time unit.
	Throughput  float64
	Utilization float64
}

// NewMetrics computes metrics for processes that all carry start and finish times.
// makespan is the final clock and idle the total idle time of the run.
func NewMetrics(processes []Process, makespan, idle int64) Metrics {
	m := Metrics{
		Processes: make([]ProcessMetrics, len(processes)),
		Makespan:  makespan,
		IdleTime:  idle,
		BusyTime:  makespan - idle,
	}
	responses := make([]float64, len(processes))
	waits := make([]float64, len(processes))
	turnarounds := make([]float64, len(processes))
	for i, p := range processes {
		turnaround := p.FinishTime - p.ArrivalTime
		pm := ProcessMetrics{
			ID:          p.ID,
			ArrivalTime: p.ArrivalTime,
			Burst:       p.Burst,
			StartTime:   p.StartTime,
			FinishTime:  p.FinishTime,
			Response:    p.StartTime - p.ArrivalTime,
			Wait:        turnaround - p.Burst,
			Turnaround:  turnaround,
		}
		m.Processes[i] = pm
		responses[i] = float64(pm.Response)
		waits[i] = float64(pm.Wait)
		turnarounds[i] = float64(pm.Turnaround)
	}
	if len(processes) > 0 {
		m.AvgResponse = stat.Mean(responses, nil)
		m.AvgWait = stat.Mean(waits, nil)
		m.AvgTurnaround = stat.Mean(turnarounds, nil)
	}
	if makespan > 0 {
		m.Throughput = float64(len(processes)) / float64(makespan)
		m.Utilization = float64(m.BusyTime) / float64(makespan)
	}
	return m
}

// Metrics summarises the run. Call it after Run.
func (s *Simulator) Metrics() Metrics {
	return NewMetrics(s.Processes, s.Clock, s.IdleTime)
}
