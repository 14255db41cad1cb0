package transfer

import "fmt"

// Tracker folds the multiplexed event stream into the state the display
// shows: a keyed set of live tasks, the single most-recently-updated visible
// task, and session totals. It is owned by the interaction loop and must only
// be used from that loop; workers reach it exclusively through events.
type Tracker struct {
	active       map[int]*Task
	visibleID    int
	sessionFiles int64
	sessionBytes int64
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{active: make(map[int]*Task)}
}

// Track registers a task the orchestrator just accepted
func (tr *Tracker) Track(task Task) {
	t := task
	tr.active[t.ID] = &t
}

// Apply folds one event in and returns the log line to surface: a start line
// when the task begins, a completion or failure line when it ends, "" for
// progress. The visible slot follows the most recent event (last-event-wins)
// and is cleared by a terminal event for its task.
func (tr *Tracker) Apply(ev Event) string {
	name := ev.DisplayName
	if t, ok := tr.active[ev.TaskID]; ok && name == "" {
		name = t.DisplayName
	}

	if ev.Phase.Terminal() {
		tr.drop(ev.TaskID)
		if ev.Phase == PhaseFailed {
			return fmt.Sprintf("Download failed for %s: %s", name, ev.Reason)
		}
		tr.sessionFiles++
		tr.sessionBytes += ev.BytesDone
		return fmt.Sprintf("Download complete: %s", name)
	}

	t, ok := tr.active[ev.TaskID]
	if !ok {
		t = &Task{ID: ev.TaskID, DisplayName: ev.DisplayName, TotalBytes: ev.TotalBytes}
		tr.active[ev.TaskID] = t
	}
	t.Phase = ev.Phase
	t.BytesDone = ev.BytesDone
	if ev.TotalBytes > 0 {
		t.TotalBytes = ev.TotalBytes
	}
	tr.visibleID = ev.TaskID

	if ev.Phase == PhaseStarted {
		return fmt.Sprintf("Starting download for '%s'", name)
	}
	return ""
}

// drop removes a finished task and clears the visible slot if it held it
func (tr *Tracker) drop(taskID int) {
	delete(tr.active, taskID)
	if tr.visibleID == taskID {
		tr.visibleID = 0
	}
}

// Visible returns the task currently shown in the transfer bar, or nil
func (tr *Tracker) Visible() *Task {
	if tr.visibleID == 0 {
		return nil
	}
	return tr.active[tr.visibleID]
}

// ActiveCount returns the number of tasks not yet terminal
func (tr *Tracker) ActiveCount() int {
	return len(tr.active)
}

// SessionTotals returns completed file count and byte count for this session
func (tr *Tracker) SessionTotals() (files, bytes int64) {
	return tr.sessionFiles, tr.sessionBytes
}
