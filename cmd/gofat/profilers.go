package main

import (
	"context"
	"log/slog"
	"os"
	"runtime/pprof"
)

// startProfilers activates the profilers requested through the profile
// flags. They run until [stopProfilers] at the end of the invocation.
func startProfilers(ctx context.Context) {
	cpuProf = newCPUProfiler(ctx, cpuProfileFlag)
	allocProf = newAllocProfiler(ctx, memProfileFlag)
}

// stopProfilers flushes and stops any running profilers. Safe to call
// when none were started.
func stopProfilers() {
	if cpuProf != nil {
		cpuProf.Stop()
		cpuProf = nil
	}

	if allocProf != nil {
		allocProf.Stop()
		allocProf = nil
	}
}

// cpuProfiler streams a CPU profile to a file for the lifetime of the
// invocation.
//
//nolint:containedctx
type cpuProfiler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	doneChan chan struct{}
}

func newCPUProfiler(ctx context.Context, path string) *cpuProfiler {
	prof := &cpuProfiler{}
	prof.ctx, prof.cancel = context.WithCancel(ctx)
	prof.doneChan = make(chan struct{})

	go prof.profile(path)

	return prof
}

func (prof *cpuProfiler) profile(path string) {
	defer close(prof.doneChan)

	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		slog.Error("Failed to create CPU profile.", "err", err)

		return
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		slog.Error("Failed to start CPU profile.", "err", err)

		return
	}
	defer pprof.StopCPUProfile()

	<-prof.ctx.Done()
}

func (prof *cpuProfiler) Stop() {
	prof.cancel()
	<-prof.doneChan
}

// allocProfiler writes an allocation profile when the invocation ends.
//
//nolint:containedctx
type allocProfiler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	doneChan chan struct{}
}

func newAllocProfiler(ctx context.Context, path string) *allocProfiler {
	prof := &allocProfiler{}
	prof.ctx, prof.cancel = context.WithCancel(ctx)
	prof.doneChan = make(chan struct{})

	go prof.profile(path)

	return prof
}

func (prof *allocProfiler) profile(path string) {
	defer close(prof.doneChan)

	if path == "" {
		return
	}

	<-prof.ctx.Done()

	f, err := os.Create(path)
	if err != nil {
		slog.Error("Failed to create allocation profile.", "err", err)

		return
	}
	defer f.Close()

	if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
		slog.Error("Failed to write allocation profile.", "err", err)
	}
}

func (prof *allocProfiler) Stop() {
	prof.cancel()
	<-prof.doneChan
}
