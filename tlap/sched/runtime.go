// Copyright 2026 go-tlapack Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sched

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// ErrShutdown is returned by Submit after the runtime has been shut down.
var ErrShutdown = errors.New("sched: runtime is shut down")

// Runtime owns the dependency tracker and the worker pool. A Runtime is
// safe for concurrent use by multiple goroutines.
type Runtime struct {
	mu       sync.Mutex
	idle     *sync.Cond // signaled when inflight drops to zero
	inflight int
	nextID   uint64
	closed   bool

	pool *pool
	log  zerolog.Logger
}

// Option configures a Runtime.
type Option func(*runtimeConfig)

type runtimeConfig struct {
	workers int
	pin     bool
	log     zerolog.Logger
}

// WithWorkers sets the number of pool workers. Values <= 0 select
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *runtimeConfig) { c.workers = n }
}

// WithPinning binds each worker to a CPU on platforms that support it.
func WithPinning() Option {
	return func(c *runtimeConfig) { c.pin = true }
}

// WithLogger installs a logger for task-lifecycle tracing. The default
// logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *runtimeConfig) { c.log = l }
}

// New creates a runtime and spawns its workers.
func New(opts ...Option) *Runtime {
	cfg := runtimeConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	rt := &Runtime{log: cfg.log}
	rt.idle = sync.NewCond(&rt.mu)
	rt.pool = newPool(cfg.workers, cfg.pin, rt.execute)
	rt.log.Debug().Int("workers", rt.pool.workers()).Msg("runtime started")
	return rt
}

// NumWorkers returns the size of the worker pool.
func (rt *Runtime) NumWorkers() int { return rt.pool.workers() }

// Submit hands a task to the runtime. It installs the dependency edges
// implied by the task's handles and access modes and returns without
// waiting for execution. Submitting to a shut-down runtime returns
// ErrShutdown; malformed tasks are contract violations and panic.
func (rt *Runtime) Submit(t *Task) error {
	cl := t.Codelet
	if cl == nil {
		panic("sched: task without codelet")
	}
	if cl.NumBuffers < 0 || cl.NumBuffers > len(t.Handles) {
		panic("sched: invalid buffer count")
	}
	for k := 0; k < cl.NumBuffers; k++ {
		if t.Handles[k] == nil {
			panic("sched: task names fewer buffers than its codelet")
		}
	}

	rt.mu.Lock()
	if rt.closed {
		rt.mu.Unlock()
		return ErrShutdown
	}
	rt.inflight++
	rt.nextID++
	t.id = rt.nextID
	// Guard edge so dependents settled below cannot start the task
	// before every handle has been walked.
	t.pending = 1
	for k := 0; k < cl.NumBuffers; k++ {
		h := t.Handles[k]
		if h.rt != rt {
			panic("sched: handle belongs to a different runtime")
		}
		switch mode := cl.Modes[k]; {
		case mode == ModeR:
			t.addDep(h.lastWriter)
			h.readers = append(h.readers, t)
		case mode.writes():
			for _, r := range h.readers {
				t.addDep(r)
			}
			t.addDep(h.lastWriter)
			h.lastWriter = t
			h.readers = h.readers[:0]
		default:
			panic("sched: invalid access mode")
		}
	}
	rt.mu.Unlock()

	if e := rt.log.Trace(); e.Enabled() {
		e.Uint64("task", t.id).Str("codelet", cl.Name).Msg("task submitted")
	}
	rt.settle(t, 1)
	return nil
}

// MustSubmit is Submit for callers with no recovery path: a failed
// submission would leave the dependency graph incomplete and silently
// corrupt later reads, so the failure is reported and the process
// terminates.
func (rt *Runtime) MustSubmit(t *Task) {
	if err := rt.Submit(t); err != nil {
		rt.log.Error().Err(err).Str("codelet", t.Codelet.Name).Msg("task submission failed")
		fmt.Fprintf(os.Stderr, "sched: task submission failed: %v\n", err)
		os.Exit(1)
	}
}

// settle removes n pending edges from t and enqueues it once none remain.
func (rt *Runtime) settle(t *Task, n int) {
	rt.mu.Lock()
	t.pending -= n
	ready := t.pending == 0
	rt.mu.Unlock()
	if ready {
		rt.pool.enqueue(t)
	}
}

// execute runs on a pool worker once a task has no pending dependencies.
func (rt *Runtime) execute(t *Task) {
	cl := t.Codelet
	if cl.Func != nil {
		buffers := make([]any, cl.NumBuffers)
		for k := range buffers {
			buffers[k] = t.Handles[k].data
		}
		cl.Func(buffers, t.Arg)
	}
	if t.hold {
		// Acquire hold: wake the waiter; completion is deferred to
		// Release so the handle stays blocked against later tasks.
		close(t.acquired)
		return
	}
	rt.complete(t)
}

// complete finishes a task: runs its callback, marks it done, and
// releases its dependents.
func (rt *Runtime) complete(t *Task) {
	// The callback may hand the codelet's memory back to a pool for
	// reuse by the next submission, so the codelet must not be read
	// after it runs.
	name := t.Codelet.Name
	id := t.id
	if t.Callback != nil {
		t.Callback()
	}
	var ready []*Task
	rt.mu.Lock()
	t.done = true
	for _, s := range t.succs {
		s.pending--
		if s.pending == 0 {
			ready = append(ready, s)
		}
	}
	t.succs = nil
	rt.inflight--
	if rt.inflight == 0 {
		rt.idle.Broadcast()
	}
	rt.mu.Unlock()

	if e := rt.log.Trace(); e.Enabled() {
		e.Uint64("task", id).Str("codelet", name).Msg("task complete")
	}
	for _, s := range ready {
		rt.pool.enqueue(s)
	}
}

// Acquire blocks until every earlier task conflicting with mode on h has
// completed, then holds h against later conflicting tasks until Release.
func (rt *Runtime) Acquire(h *Handle, mode AccessMode) {
	t := &Task{
		Codelet:  acquireCodelet(mode),
		hold:     true,
		acquired: make(chan struct{}),
	}
	t.Handles[0] = h
	if err := rt.Submit(t); err != nil {
		panic("sched: acquire on a shut-down runtime")
	}
	<-t.acquired
	rt.mu.Lock()
	h.holds = append(h.holds, t)
	rt.mu.Unlock()
}

// Release ends the most recent hold on h installed by Acquire.
func (rt *Runtime) Release(h *Handle) {
	rt.mu.Lock()
	n := len(h.holds)
	if n == 0 {
		rt.mu.Unlock()
		panic("sched: release without a matching acquire")
	}
	t := h.holds[n-1]
	h.holds = h.holds[:n-1]
	rt.mu.Unlock()
	rt.complete(t)
}

var acquireCodeletR = &Codelet{Name: "acquire_r", NumBuffers: 1, Modes: [2]AccessMode{ModeR}}
var acquireCodeletW = &Codelet{Name: "acquire_w", NumBuffers: 1, Modes: [2]AccessMode{ModeW}}
var acquireCodeletRW = &Codelet{Name: "acquire_rw", NumBuffers: 1, Modes: [2]AccessMode{ModeRW}}

func acquireCodelet(mode AccessMode) *Codelet {
	switch mode {
	case ModeR:
		return acquireCodeletR
	case ModeW:
		return acquireCodeletW
	case ModeRW:
		return acquireCodeletRW
	}
	panic("sched: invalid access mode")
}

// Wait blocks until no task is in flight. Active holds installed by
// Acquire count as in flight until their Release.
func (rt *Runtime) Wait() {
	rt.mu.Lock()
	for rt.inflight > 0 {
		rt.idle.Wait()
	}
	rt.mu.Unlock()
}

// Shutdown quiesces the runtime and stops the workers. Further Submit
// calls return ErrShutdown. Shutdown is idempotent.
func (rt *Runtime) Shutdown() {
	rt.Wait()
	rt.mu.Lock()
	if rt.closed {
		rt.mu.Unlock()
		return
	}
	rt.closed = true
	rt.mu.Unlock()
	rt.pool.close()
	rt.log.Debug().Msg("runtime stopped")
}
