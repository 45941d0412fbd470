package sim

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantum    = errors.New("quantum must be positive")
	ErrNegativeMaxSeqLen = errors.New("max sequence length must not be negative")
	ErrNoProcesses       = errors.New("no processes to simulate")
	ErrUnsortedArrivals  = errors.New("processes are not sorted by arrival time")
	ErrNegativeArrival   = errors.New("arrival time must not be negative")
	ErrInvalidBurst      = errors.New("burst must be positive")
	ErrReservedID        = errors.New("process id is reserved for idle")
)

// Validate checks the preconditions of a simulation run. Each violation maps to its own
// sentinel error so callers can tell them apart with errors.Is.
func Validate(quantum int64, maxSeqLen int, processes []Process) error {
	if quantum <= 0 {
		return fmt.Errorf("quantum %d: %w", quantum, ErrInvalidQuantum)
	}
	if maxSeqLen < 0 {
		return fmt.Errorf("max sequence length %d: %w", maxSeqLen, ErrNegativeMaxSeqLen)
	}
	if len(processes) == 0 {
		return ErrNoProcesses
	}
	for i, p := range processes {
		if p.ID == Idle {
			return fmt.Errorf("process[%d]: id %d: %w", i, p.ID, ErrReservedID)
		}
		if p.ArrivalTime < 0 {
			return fmt.Errorf("process[%d] (id %d): arrival %d: %w", i, p.ID, p.ArrivalTime, ErrNegativeArrival)
		}
		if p.Burst <= 0 {
			return fmt.Errorf("process[%d] (id %d): burst %d: %w", i, p.ID, p.Burst, ErrInvalidBurst)
		}
		if i > 0 && p.ArrivalTime < processes[i-1].ArrivalTime {
			return fmt.Errorf("process[%d] (id %d) arrives at %d before process[%d] at %d: %w",
				i, p.ID, p.ArrivalTime, i-1, processes[i-1].ArrivalTime, ErrUnsortedArrivals)
		}
	}
	return nil
}
