// Package sim simulates preemptive Round-Robin CPU scheduling.
//
// A Simulator owns a job queue (processes that have not arrived yet, in caller order) and a
// ready queue (arrived, unfinished processes). Each call to Step performs one transition of
// the scheduler and the clock only moves forward. Run steps until both queues are empty.
//
// Results are written back onto the caller's processes (StartTime and FinishTime only) and
// the CPU occupancy is reported as a compressed, length-capped trace where Idle marks time
// with no process on the CPU.
//
// Whole Round-Robin cycles that cannot change the queue order are skipped in a single
// fast-forward transition, so long bursts with a small quantum cost time proportional to the
// number of arrivals and completions rather than to the number of quanta.
package sim
