package transfer

import (
	"context"
	"path"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/lumipallolabs/sftpdive/internal/remote"
)

const (
	// DefaultMaxConcurrent bounds the number of simultaneously open
	// remote streams.
	DefaultMaxConcurrent = 4

	// DefaultLaunchDelay spaces successive worker launches for a
	// directory download.
	DefaultLaunchDelay = 100 * time.Millisecond

	// eventBuffer sizes the worker-to-display channel
	eventBuffer = 128
)

// Orchestrator turns download requests into running workers and multiplexes
// all worker progress into a single event stream. Worker lifetimes are
// independent: one failure never cancels the others, and nothing cancels a
// started worker.
type Orchestrator struct {
	port    remote.Port
	destDir string
	events  chan Event
	limiter *rate.Limiter
	sem     chan struct{}
	wg      sync.WaitGroup
}

// NewOrchestrator creates an orchestrator writing downloads into destDir.
// maxConcurrent and launchDelay fall back to the defaults when zero.
func NewOrchestrator(port remote.Port, destDir string, maxConcurrent int, launchDelay time.Duration) *Orchestrator {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if launchDelay <= 0 {
		launchDelay = DefaultLaunchDelay
	}
	return &Orchestrator{
		port:    port,
		destDir: destDir,
		events:  make(chan Event, eventBuffer),
		limiter: rate.NewLimiter(rate.Every(launchDelay), 1),
		sem:     make(chan struct{}, maxConcurrent),
	}
}

// Events returns the multiplexed progress stream. Events from one task keep
// their emit order; tasks interleave arbitrarily.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// DownloadFile spawns one worker for a single file immediately
func (o *Orchestrator) DownloadFile(remotePath, displayName string, size int64) Task {
	task := NewTask(remotePath, displayName, size)
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.sem <- struct{}{}
		defer func() { <-o.sem }()
		runTask(o.port, task, o.destDir, o.events)
	}()
	return task
}

// DownloadAll queues one task per discovered file and launches workers with
// the inter-launch pacing applied, under the concurrency bound
func (o *Orchestrator) DownloadAll(files []FileRef) []Task {
	tasks := make([]Task, 0, len(files))
	for _, f := range files {
		tasks = append(tasks, NewTask(f.Path, path.Base(f.Path), f.Size))
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for _, task := range tasks {
			_ = o.limiter.Wait(context.Background())
			o.sem <- struct{}{}
			o.wg.Add(1)
			go func(task Task) {
				defer o.wg.Done()
				defer func() { <-o.sem }()
				runTask(o.port, task, o.destDir, o.events)
			}(task)
		}
	}()

	return tasks
}

// Wait blocks until every launched worker has emitted its terminal event
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}
