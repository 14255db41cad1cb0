package transfer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/sftpdive/internal/remote"
)

// ChunkSize is the fixed transfer read size. Progress is reported once per
// chunk, so it also sets the event granularity.
const ChunkSize = 8192

// runTask streams one remote file into destDir, emitting Started, one
// InProgress per chunk, and exactly one terminal event. The worker never
// retries; a failure leaves the partial local file in place.
func runTask(port remote.Port, task Task, destDir string, events chan<- Event) {
	emit := func(phase Phase, done int64, reason string) {
		events <- Event{
			TaskID:      task.ID,
			DisplayName: task.DisplayName,
			Phase:       phase,
			BytesDone:   done,
			TotalBytes:  task.TotalBytes,
			Reason:      reason,
		}
	}

	emit(PhaseStarted, 0, "")

	src, err := port.Open(task.RemotePath)
	if err != nil {
		emit(PhaseFailed, 0, err.Error())
		return
	}
	defer src.Close()

	// Only the base of the listing-supplied name picks the local file
	dst, err := os.Create(filepath.Join(destDir, filepath.Base(task.DisplayName)))
	if err != nil {
		emit(PhaseFailed, 0, err.Error())
		return
	}

	buf := make([]byte, ChunkSize)
	var done int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				dst.Close()
				emit(PhaseFailed, done, werr.Error())
				return
			}
			done += int64(n)
			emit(PhaseInProgress, done, "")
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			dst.Close()
			emit(PhaseFailed, done, err.Error())
			return
		}
	}

	if err := dst.Close(); err != nil {
		emit(PhaseFailed, done, err.Error())
		return
	}
	emit(PhaseCompleted, done, "")
}
