package lambda

// TraceEvent records one beta reduction performed by a Reducer.
type TraceEvent struct {
	// Step counts beta reductions from 1.
	Step  uint64
	Param *Binding
	// Renames is the number of binders renamed to avoid capture while
	// substituting the argument.
	Renames int
	Weak    bool
}

type traceBuffer struct {
	events []TraceEvent
	cap    int
	on     bool
}

// EnableTrace makes the reducer record its first capacity beta reductions.
// Later reductions are counted in Stats but not recorded.
func (r *Reducer[V]) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	r.trace = traceBuffer{events: make([]TraceEvent, 0, capacity), cap: capacity, on: true}
}

// DisableTrace stops recording. Events already recorded are kept.
func (r *Reducer[V]) DisableTrace() {
	r.trace.on = false
}

// TraceSnapshot returns a copy of the recorded events, or nil if tracing was
// never enabled.
func (r *Reducer[V]) TraceSnapshot() []TraceEvent {
	if r.trace.events == nil {
		return nil
	}
	res := make([]TraceEvent, len(r.trace.events))
	copy(res, r.trace.events)
	return res
}

func (t *traceBuffer) record(ev TraceEvent) {
	if !t.on || len(t.events) >= t.cap {
		return
	}
	t.events = append(t.events, ev)
}
