package tree

import (
	"sync"
	"time"
)

// Progress is a point-in-time snapshot of a running transfer.
type Progress struct {
	// HasStarted is whether the transfer has started.
	HasStarted bool

	// HasFinished is whether the transfer has finished.
	HasFinished bool

	// StartTime is the time the transfer started.
	StartTime time.Time

	// FinishTime is the time the transfer finished.
	FinishTime time.Time

	// ProgressPct is the byte progress in percent (0 to 100).
	ProgressPct float64

	// TotalFiles is the number of files the transfer covers.
	TotalFiles int

	// DoneFiles is the number of files already transferred.
	DoneFiles int

	// TotalBytes is the byte total the transfer covers.
	TotalBytes int64

	// DoneBytes is the amount of bytes already transferred.
	DoneBytes int64

	// CurrentPath is the path of the file currently transferring.
	CurrentPath string

	// ETA is the estimated completion time.
	ETA time.Time

	// TimeLeft is the estimated time remaining.
	TimeLeft time.Duration

	// TransferSpeed is the transfer speed in [Progress.TransferSpeedUnit].
	TransferSpeed float64

	// TransferSpeedUnit is the unit of [Progress.TransferSpeed].
	TransferSpeedUnit string
}

// TransferState accumulates the progress of a transfer for concurrent
// polling. The zero value is ready for use; a nil *TransferState is a
// valid no-op receiver, so untracked transfers carry no state at all.
type TransferState struct {
	sync.RWMutex

	hasStarted  bool
	hasFinished bool
	startTime   time.Time
	finishTime  time.Time

	totalFiles int
	doneFiles  int
	totalBytes int64
	doneBytes  int64

	currentPath string
}

// begin arms the state with the expected transfer totals.
func (t *TransferState) begin(totalFiles int, totalBytes int64) {
	if t == nil {
		return
	}

	t.Lock()
	defer t.Unlock()

	t.hasStarted = true
	t.hasFinished = false
	t.startTime = time.Now()
	t.finishTime = time.Time{}

	t.totalFiles = totalFiles
	t.totalBytes = totalBytes
	t.doneFiles = 0
	t.doneBytes = 0

	t.currentPath = ""
}

// setCurrent publishes the path of the file transferring next.
func (t *TransferState) setCurrent(path string) {
	if t == nil {
		return
	}

	t.Lock()
	defer t.Unlock()

	t.currentPath = path
}

// addBytes adds transferred bytes to the running total.
func (t *TransferState) addBytes(n int64) {
	if t == nil {
		return
	}

	t.Lock()
	defer t.Unlock()

	t.doneBytes += n
}

// fileDone marks one file as fully transferred.
func (t *TransferState) fileDone() {
	if t == nil {
		return
	}

	t.Lock()
	defer t.Unlock()

	t.doneFiles++
}

// finish marks the transfer as finished.
func (t *TransferState) finish() {
	if t == nil {
		return
	}

	t.Lock()
	defer t.Unlock()

	t.hasFinished = true
	t.finishTime = time.Now()
}

// Progress returns the [Progress] of the [TransferState].
func (t *TransferState) Progress() Progress {
	if t == nil {
		return Progress{}
	}

	t.RLock()
	defer t.RUnlock()

	var progressPct float64
	if t.totalBytes > 0 {
		progressPct = float64(t.doneBytes) / float64(t.totalBytes) * 100 //nolint:mnd
		progressPct = max(float64(0), min(progressPct, float64(100)))    //nolint:mnd
	} else if t.hasFinished {
		progressPct = 100
	}

	var eta time.Time
	var timeLeft time.Duration

	var transferSpeed float64
	transferSpeedUnit := "bytes/sec"

	if t.hasStarted && !t.hasFinished && t.doneBytes > 0 && t.doneBytes < t.totalBytes {
		elapsed := time.Since(t.startTime)
		bytesPerSec := float64(t.doneBytes) / max(elapsed.Seconds(), 1)

		if bytesPerSec > 0 {
			remainingBytes := t.totalBytes - t.doneBytes
			remainingSeconds := float64(remainingBytes) / bytesPerSec
			timeLeft = time.Duration(remainingSeconds * float64(time.Second))
			eta = time.Now().Add(timeLeft)
			transferSpeed = bytesPerSec
		}
	}

	return Progress{
		HasStarted:        t.hasStarted,
		HasFinished:       t.hasFinished,
		StartTime:         t.startTime,
		FinishTime:        t.finishTime,
		ProgressPct:       progressPct,
		TotalFiles:        t.totalFiles,
		DoneFiles:         t.doneFiles,
		TotalBytes:        t.totalBytes,
		DoneBytes:         t.doneBytes,
		CurrentPath:       t.currentPath,
		ETA:               eta,
		TimeLeft:          timeLeft,
		TransferSpeed:     transferSpeed,
		TransferSpeedUnit: transferSpeedUnit,
	}
}
