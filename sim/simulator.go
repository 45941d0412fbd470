// sim/simulator.go
package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Config holds the scalar parameters of a run.
type Config struct {
	// Quantum is the longest stretch a process runs before it is preempted.
	Quantum int64
	// MaxSeqLen caps the number of trace entries; it never affects timings.
	MaxSeqLen int
}

// State is the scheduler state, derived from which queues are empty.
type State int

const (
	// StateDone: nothing ready, nothing left to arrive.
	StateDone State = iota
	// StateSeed: nothing ready, but processes are still to arrive.
	StateSeed
	// StateSteady: processes ready and more to arrive.
	StateSteady
	// StateDrain: processes ready, nothing left to arrive.
	StateDrain
)

func (s State) String() string {
	switch s {
	case StateDone:
		return "done"
	case StateSeed:
		return "seed"
	case StateSteady:
		return "steady"
	case StateDrain:
		return "drain"
	}
	return "unknown"
}

// Transition is what a single Step did.
type Transition int

const (
	// TransitionNone is returned once the simulation is over.
	TransitionNone Transition = iota
	// TransitionIdle: the CPU sat idle until the next arrival, which was then admitted.
	TransitionIdle
	// TransitionAdmit: arrived processes joined the ready queue, no time passed.
	TransitionAdmit
	// TransitionFastForward: whole Round-Robin cycles ran in one go.
	TransitionFastForward
	// TransitionPreempt: the ready-queue head ran one quantum and went to the back.
	TransitionPreempt
	// TransitionComplete: the ready-queue head ran to completion.
	TransitionComplete
)

func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "none"
	case TransitionIdle:
		return "idle"
	case TransitionAdmit:
		return "admit"
	case TransitionFastForward:
		return "fast-forward"
	case TransitionPreempt:
		return "preempt"
	case TransitionComplete:
		return "complete"
	}
	return "unknown"
}

// Simulator holds the clock, the two queues and the per-process remaining bursts of one
// Round-Robin run. It writes StartTime and FinishTime directly into Processes.
type Simulator struct {
	Quantum int64
	Clock   int64
	// JobQ holds processes that have not arrived yet, in input order.
	JobQ *Queue
	// ReadyQ holds arrived, unfinished processes; preempted ones rejoin at the back.
	ReadyQ    *Queue
	Processes []Process
	// Remaining is indexed like Processes.
	Remaining []int64
	// IdleTime is the total time the CPU spent with nothing ready.
	IdleTime int64
	// Transitions counts every transition taken so far.
	Transitions map[Transition]int

	trace *Trace
}

// NewSimulator validates the inputs and prepares a run over processes.
// Any StartTime or FinishTime already present is reset to Unset.
func NewSimulator(cfg Config, processes []Process) (*Simulator, error) {
	if err := Validate(cfg.Quantum, cfg.MaxSeqLen, processes); err != nil {
		return nil, err
	}
	s := &Simulator{
		Quantum:     cfg.Quantum,
		JobQ:        NewQueue(),
		ReadyQ:      NewQueue(),
		Processes:   processes,
		Remaining:   make([]int64, len(processes)),
		Transitions: make(map[Transition]int),
		trace:       NewTrace(cfg.MaxSeqLen),
	}
	for i := range processes {
		processes[i].StartTime = Unset
		processes[i].FinishTime = Unset
		s.Remaining[i] = processes[i].Burst
		s.JobQ.PushBack(i)
	}
	return s, nil
}

// Simulate runs Round-Robin over processes, writing their start and finish times, and
// returns the compressed occupancy trace capped at maxSeqLen entries.
func Simulate(quantum int64, maxSeqLen int, processes []Process) ([]int, error) {
	s, err := NewSimulator(Config{Quantum: quantum, MaxSeqLen: maxSeqLen}, processes)
	if err != nil {
		return nil, err
	}
	s.Run()
	return s.Trace().Entries(), nil
}

// Trace returns the occupancy trace recorded so far.
func (s *Simulator) Trace() *Trace {
	return s.trace
}

// State reports the current scheduler state.
func (s *Simulator) State() State {
	switch {
	case s.ReadyQ.Empty() && s.JobQ.Empty():
		return StateDone
	case s.ReadyQ.Empty():
		return StateSeed
	case !s.JobQ.Empty():
		return StateSteady
	default:
		return StateDrain
	}
}

// Run steps the simulation until every process has finished.
func (s *Simulator) Run() {
	for s.Step() != TransitionNone {
	}
	logrus.Infof("[tick %07d] Simulation ended: %d processes, %d trace entries, idle %d",
		s.Clock, len(s.Processes), s.trace.Len(), s.IdleTime)
}

// Step performs exactly one transition and reports which.
func (s *Simulator) Step() Transition {
	var tr Transition
	switch s.State() {
	case StateDone:
		return TransitionNone
	case StateSeed:
		tr = s.seed()
	case StateSteady:
		tr = s.steady()
	case StateDrain:
		tr = s.drain()
	}
	s.Transitions[tr]++
	return tr
}

func (s *Simulator) seed() Transition {
	next := s.Processes[s.JobQ.Front()].ArrivalTime
	tr := TransitionAdmit
	if next > s.Clock {
		logrus.Debugf("[tick %07d] cpu idle until %d", s.Clock, next)
		s.trace.Emit(Idle, s.Clock, next)
		s.IdleTime += next - s.Clock
		s.Clock = next
		tr = TransitionIdle
	}
	s.admitArrived()
	return tr
}

func (s *Simulator) steady() Transition {
	if s.Processes[s.JobQ.Front()].ArrivalTime <= s.Clock {
		s.admitArrived()
		return TransitionAdmit
	}
	if k := s.skippableCycles(); k > 0 {
		s.fastForward(k)
		return TransitionFastForward
	}
	return s.dispatch()
}

func (s *Simulator) drain() Transition {
	if s.ReadyQ.Len() == 1 {
		s.complete()
		return TransitionComplete
	}
	if k := s.skippableCycles(); k > 0 {
		s.fastForward(k)
		return TransitionFastForward
	}
	return s.dispatch()
}

func (s *Simulator) dispatch() Transition {
	if s.Remaining[s.ReadyQ.Front()] > s.Quantum {
		s.preempt()
		return TransitionPreempt
	}
	s.complete()
	return TransitionComplete
}

// skippableCycles returns how many whole Round-Robin cycles can run without any ready
// process reaching its last quantum and without any cycle ending at or after the next
// arrival. Over such cycles the ready queue returns to the same order after every cycle.
func (s *Simulator) skippableCycles() int64 {
	minRemaining := int64(math.MaxInt64)
	for _, idx := range s.ReadyQ.Items() {
		if s.Remaining[idx] <= s.Quantum {
			return 0
		}
		minRemaining = min(minRemaining, s.Remaining[idx])
	}
	k := (minRemaining - 1) / s.Quantum
	if !s.JobQ.Empty() {
		cycle := int64(s.ReadyQ.Len()) * s.Quantum
		next := s.Processes[s.JobQ.Front()].ArrivalTime
		k = min(k, (next-s.Clock-1)/cycle)
	}
	return k
}

func (s *Simulator) fastForward(k int64) {
	items := s.ReadyQ.Items()
	n := int64(len(items))
	for i, idx := range items {
		p := &s.Processes[idx]
		if !p.Started() {
			p.StartTime = s.Clock + int64(i)*s.Quantum
		}
		s.Remaining[idx] -= k * s.Quantum
	}
	logrus.Debugf("[tick %07d] fast-forward %d cycles over %s", s.Clock, k, s.ReadyQ)

	if n == 1 {
		s.trace.Emit(s.Processes[items[0]].ID, s.Clock, s.Clock+k*s.Quantum)
	} else {
		end := s.Clock + k*n*s.Quantum
		for c := int64(0); c < k; c++ {
			before := s.trace.Len()
			for i, idx := range items {
				start := s.Clock + (c*n+int64(i))*s.Quantum
				s.trace.Emit(s.Processes[idx].ID, start, start+s.Quantum)
			}
			if s.trace.Truncated() {
				break
			}
			if s.trace.Len() == before {
				// every ready process shares the last entry's id: later cycles only extend it
				s.trace.Emit(s.Processes[items[n-1]].ID, end-s.Quantum, end)
				break
			}
		}
	}
	s.Clock += k * n * s.Quantum
}

func (s *Simulator) preempt() {
	idx := s.ReadyQ.PopFront()
	p := &s.Processes[idx]
	if !p.Started() {
		p.StartTime = s.Clock
	}
	s.trace.Emit(p.ID, s.Clock, s.Clock+s.Quantum)
	s.Clock += s.Quantum
	s.Remaining[idx] -= s.Quantum
	logrus.Debugf("[tick %07d] preempt process %d, %d remaining", s.Clock, p.ID, s.Remaining[idx])
	// arrivals at this exact tick queue ahead of the preempted process
	s.admitArrived()
	s.ReadyQ.PushBack(idx)
}

func (s *Simulator) complete() {
	idx := s.ReadyQ.PopFront()
	p := &s.Processes[idx]
	if !p.Started() {
		p.StartTime = s.Clock
	}
	run := s.Remaining[idx]
	s.trace.Emit(p.ID, s.Clock, s.Clock+run)
	s.Clock += run
	s.Remaining[idx] = 0
	p.FinishTime = s.Clock
	logrus.Debugf("[tick %07d] process %d finished", s.Clock, p.ID)
	s.admitArrived()
}

// admitArrived moves every job that has arrived by now to the back of the ready queue.
func (s *Simulator) admitArrived() {
	for !s.JobQ.Empty() && s.Processes[s.JobQ.Front()].ArrivalTime <= s.Clock {
		idx := s.JobQ.PopFront()
		s.ReadyQ.PushBack(idx)
		logrus.Debugf("[tick %07d] admit process %d (arrived %d)", s.Clock, s.Processes[idx].ID, s.Processes[idx].ArrivalTime)
	}
}
