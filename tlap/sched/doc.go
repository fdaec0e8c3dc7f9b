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

// Package sched is the task-scheduling runtime behind the tiled matrix
// in package tile. It registers caller-owned data as handles, partitions
// handles into trees via caller-supplied filters, and executes submitted
// tasks on a persistent worker pool while tracking data dependencies per
// handle.
//
// The dependency contract is the whole of the synchronization model:
// two tasks are ordered relative to each other if and only if they name
// the same handle, with the usual read/write semantics (reads on one
// handle run concurrently with each other; a write waits for earlier
// readers and writers; a read waits for the last earlier writer). Tasks
// naming disjoint handles may run concurrently in any order. Two writes
// to one handle are serialized, but which one runs last is whatever the
// submission interleaving produced; callers must not depend on it.
//
// Reads from application code go through Acquire/Release, which block
// the caller until the handle's outstanding writers have finished and
// then hold the handle against later conflicting tasks until Release.
// Writes never block the submitting goroutine: Submit installs the
// dependency edges and returns.
//
// Usage:
//
//	rt := sched.New(sched.WithWorkers(4))
//	defer rt.Shutdown()
//
//	h := rt.Register(payload)
//	rt.MustSubmit(&sched.Task{Codelet: cl, Handles: [2]*sched.Handle{h}})
//	rt.Wait() // quiesce
//	rt.Unregister(h)
package sched
