// Package transfer implements the download core: discovery of files under a
// remote directory, chunked download workers, the orchestrator that launches
// them under an admission policy, and the tracker that folds their progress
// events into displayable state.
package transfer

import "sync/atomic"

// Phase is the lifecycle stage of a download task
type Phase int

const (
	PhaseQueued Phase = iota
	PhaseStarted
	PhaseInProgress
	PhaseCompleted
	PhaseFailed
)

// String returns a short label for the phase
func (p Phase) String() string {
	switch p {
	case PhaseQueued:
		return "queued"
	case PhaseStarted:
		return "started"
	case PhaseInProgress:
		return "in progress"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further events follow this phase
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// Task tracks one file download from request to terminal phase
type Task struct {
	ID          int
	RemotePath  string
	DisplayName string
	TotalBytes  int64
	BytesDone   int64
	Phase       Phase
	Reason      string // failure reason, set when Phase is PhaseFailed
}

var taskSeq atomic.Int64

// NewTask creates a queued task with a fresh id
func NewTask(remotePath, displayName string, totalBytes int64) Task {
	return Task{
		ID:          int(taskSeq.Add(1)),
		RemotePath:  remotePath,
		DisplayName: displayName,
		TotalBytes:  totalBytes,
		Phase:       PhaseQueued,
	}
}

// Event is one progress update emitted by a worker. Events for a single task
// arrive in emit order with non-decreasing BytesDone until a terminal phase;
// nothing is guaranteed about interleaving across tasks.
type Event struct {
	TaskID      int
	DisplayName string
	Phase       Phase
	BytesDone   int64
	TotalBytes  int64
	Reason      string
}
