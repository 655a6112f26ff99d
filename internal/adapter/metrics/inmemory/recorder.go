package inmemory

import "sync"

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionRejected uint64            `json:"action_rejected"`
	ActionFailure  uint64            `json:"action_failure"`
	ByKind         map[string]uint64 `json:"by_kind"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	rejected uint64
	failure  uint64
	byKind   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byKind[kind]++
}

func (r *Recorder) RecordRejected(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byKind[kind]++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionRejected: r.rejected,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.rejected + r.failure,
		ByKind:         make(map[string]uint64, len(r.byKind)),
	}
	for k, v := range r.byKind {
		out.ByKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
