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

// Persistent worker pool executing ready tasks. Workers are spawned once
// when the runtime is created and reused for every task, so submission
// cost does not include goroutine spawning. The ready queue is unbounded:
// completions enqueue newly released dependents from worker goroutines,
// and a bounded queue could make every worker block on a full channel at
// once.

package sched

import (
	"runtime"
	"sync"
)

type pool struct {
	numWorkers int

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*Task
	closed bool

	wg sync.WaitGroup
}

// newPool spawns numWorkers persistent workers running run for each
// dequeued task. numWorkers <= 0 selects GOMAXPROCS.
func newPool(numWorkers int, pin bool, run func(*Task)) *pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &pool{numWorkers: numWorkers}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i, pin, run)
	}
	return p
}

// worker is the main loop of each persistent worker goroutine.
func (p *pool) worker(id int, pin bool, run func(*Task)) {
	defer p.wg.Done()
	if pin {
		pinWorker(id)
	}
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()
		run(t)
	}
}

// enqueue hands a ready task to the workers. Never blocks.
func (p *pool) enqueue(t *Task) {
	p.mu.Lock()
	p.queue = append(p.queue, t)
	p.mu.Unlock()
	p.cond.Signal()
}

// workers returns the number of workers in the pool.
func (p *pool) workers() int { return p.numWorkers }

// close drains remaining queued tasks and stops the workers. Calling
// close more than once is safe.
func (p *pool) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}
