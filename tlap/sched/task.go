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

// AccessMode declares how a task uses one of the buffers it names.
type AccessMode uint8

const (
	// ModeR declares read-only access.
	ModeR AccessMode = iota + 1
	// ModeW declares write-only access.
	ModeW
	// ModeRW declares read-write access.
	ModeRW
)

// String returns the mode name for tracing.
func (m AccessMode) String() string {
	switch m {
	case ModeR:
		return "R"
	case ModeW:
		return "W"
	case ModeRW:
		return "RW"
	}
	return "invalid"
}

// writes reports whether the mode can modify the buffer.
func (m AccessMode) writes() bool { return m == ModeW || m == ModeRW }

// Codelet names the function a task executes and describes the buffers
// it expects. Codelets are passive descriptors; the same codelet may be
// shared by many tasks, or built per submission and reclaimed by the
// task's completion callback.
type Codelet struct {
	// Name identifies the codelet in traces.
	Name string
	// NumBuffers is the number of handles the task must name (0 to 2).
	NumBuffers int
	// Modes declares the access mode of each named buffer.
	Modes [2]AccessMode
	// Func is the CPU implementation. It receives the payloads of the
	// named handles, in order, plus the task argument. A nil Func is a
	// synchronization-only task.
	Func func(buffers []any, arg any)
}

// Task is one unit of work submitted to the runtime. The exported fields
// must be populated before Submit; after Submit the task belongs to the
// runtime and must not be reused.
type Task struct {
	// Codelet selects what the task does.
	Codelet *Codelet
	// Handles are the buffers the task names, Codelet.NumBuffers of
	// which must be non-nil. Dependencies are derived from these.
	Handles [2]*Handle
	// Arg is passed through to Codelet.Func.
	Arg any
	// Callback, if non-nil, runs exactly once after Codelet.Func has
	// finished, before dependent tasks are released. It is the hook for
	// reclaiming a per-submission codelet.
	Callback func()

	// Scheduling state, guarded by the runtime mutex.
	id      uint64
	pending int
	succs   []*Task
	done    bool

	// Hold tasks (Acquire) signal the waiter instead of completing.
	hold     bool
	acquired chan struct{}
}

// addDep installs an edge pred -> t. Runtime mutex held.
func (t *Task) addDep(pred *Task) {
	if pred == nil || pred == t || pred.done {
		return
	}
	pred.succs = append(pred.succs, t)
	t.pending++
}
