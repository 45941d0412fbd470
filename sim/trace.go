package sim

// TimeSlice is one trace entry: PID occupied the CPU over [Start, Stop).
type TimeSlice struct {
	PID   int
	Start int64
	Stop  int64
}

// Trace is the compressed, capped record of CPU occupancy.
// Consecutive occupancy by the same PID extends the last slice instead of adding an entry.
type Trace struct {
	maxLen int
	slices []TimeSlice
	// last occupant offered to Emit, recorded or not
	lastPID   int
	hasLast   bool
	truncated bool
}

// NewTrace returns an empty trace holding at most maxLen entries.
func NewTrace(maxLen int) *Trace {
	return &Trace{maxLen: maxLen}
}

// Emit records that pid ran over [start, stop).
func (t *Trace) Emit(pid int, start, stop int64) {
	if t.hasLast && t.lastPID == pid {
		if !t.truncated {
			t.slices[len(t.slices)-1].Stop = stop
		}
		return
	}
	t.lastPID, t.hasLast = pid, true
	if t.Full() {
		t.truncated = true
		return
	}
	t.slices = append(t.slices, TimeSlice{PID: pid, Start: start, Stop: stop})
}

// Truncated reports whether an entry was dropped because the trace was full.
func (t *Trace) Truncated() bool {
	return t.truncated
}

// Full reports whether the trace reached its cap.
func (t *Trace) Full() bool {
	return len(t.slices) >= t.maxLen
}

// Len returns the number of entries.
func (t *Trace) Len() int {
	return len(t.slices)
}

// Entries returns the PIDs of all entries, Idle for gaps.
func (t *Trace) Entries() []int {
	entries := make([]int, len(t.slices))
	for i, s := range t.slices {
		entries[i] = s.PID
	}
	return entries
}

// Slices returns a copy of the recorded time slices.
func (t *Trace) Slices() []TimeSlice {
	out := make([]TimeSlice, len(t.slices))
	copy(out, t.slices)
	return out
}
