// Package batchrun runs many memory images through independent CDP1802
// machines concurrently. It adapts the worker-pool-with-progress-ticker
// pattern used for parallel candidate search: a bounded goroutine pool
// drains a channel of tasks and a single ticker goroutine reports
// aggregate progress while workers run.
//
// Each image still executes as the single-threaded cooperative fetch/
// decode/execute loop; only the dispatching of independent runs across
// images is concurrent. No machine.State is ever touched by more than
// one goroutine.
package batchrun

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsalvino/emu1802/pkg/cpu"
	"github.com/jsalvino/emu1802/pkg/ioport"
	"github.com/jsalvino/emu1802/pkg/machine"
	"github.com/jsalvino/emu1802/pkg/tracer"
)

// Image is one unit of batch work: a named memory image and the step
// budget to run it for.
type Image struct {
	Name     string
	Data     []byte
	MaxSteps int
}

// Outcome is the result of running one Image to completion or exhaustion.
type Outcome struct {
	Name    string
	Steps   int
	Halted  bool
	Err     error
	Elapsed time.Duration
}

// Runner drains a channel of Images across a bounded pool of workers,
// running each on its own machine.State with a fresh Console port (bound
// to the process's stdout and stdin) and a discarding trace sink.
type Runner struct {
	NumWorkers int

	mu       sync.Mutex
	outcomes []Outcome
	ran      atomic.Int64
	halted   atomic.Int64
	failed   atomic.Int64
}

// NewRunner builds a Runner with the given worker count. A count <= 0
// uses runtime.NumCPU.
func NewRunner(numWorkers int) *Runner {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Runner{NumWorkers: numWorkers}
}

// Stats returns the running totals: images completed, images that
// halted cleanly, and images that errored.
func (r *Runner) Stats() (ran, halted, failed int64) {
	return r.ran.Load(), r.halted.Load(), r.failed.Load()
}

// Run executes every Image, distributing them across the worker pool, and
// returns one Outcome per image in the order tasks were submitted. A
// progress line is printed to report every reportEvery; reportEvery <= 0
// disables progress reporting.
func (r *Runner) Run(images []Image, reportEvery time.Duration) []Outcome {
	total := len(images)
	ch := make(chan indexed, total)
	for i, img := range images {
		ch <- indexed{i, img}
	}
	close(ch)

	r.outcomes = make([]Outcome, total)

	done := make(chan struct{})
	start := time.Now()
	if reportEvery > 0 {
		go r.reportProgress(done, start, int64(total), reportEvery)
	}

	var wg sync.WaitGroup
	for w := 0; w < r.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range ch {
				r.runOne(task)
			}
		}()
	}
	wg.Wait()
	close(done)

	return r.outcomes
}

type indexed struct {
	index int
	image Image
}

func (r *Runner) runOne(task indexed) {
	start := time.Now()
	s := machine.New(task.image.Data)
	port := ioport.NewConsole()
	sink := tracer.Discard

	steps := 0
	var runErr error
	halted := false
	budget := task.image.MaxSteps
	if budget <= 0 {
		budget = 1_000_000
	}
	for steps < budget {
		var h bool
		h, runErr = cpu.Step(s, port, sink)
		steps++
		if runErr != nil {
			break
		}
		if h {
			halted = true
			break
		}
	}

	outcome := Outcome{
		Name:    task.image.Name,
		Steps:   steps,
		Halted:  halted,
		Err:     runErr,
		Elapsed: time.Since(start),
	}

	r.mu.Lock()
	r.outcomes[task.index] = outcome
	r.mu.Unlock()

	r.ran.Add(1)
	if halted {
		r.halted.Add(1)
	}
	if runErr != nil {
		r.failed.Add(1)
	}
}

func (r *Runner) reportProgress(done <-chan struct{}, start time.Time, total int64, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			ran, halted, failed := r.Stats()
			elapsed := time.Since(start).Round(time.Second)
			pct := float64(ran) / float64(total) * 100
			fmt.Printf("  [%s] %d/%d images (%.1f%%) | %d halted | %d failed\n",
				elapsed, ran, total, pct, halted, failed)
		}
	}
}
