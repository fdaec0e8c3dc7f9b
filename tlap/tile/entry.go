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

package tile

import (
	"sync"

	"github.com/ajroetker/go-tlapack/tlap"
	"github.com/ajroetker/go-tlapack/tlap/sched"
)

// Operation selects the arithmetic kind of an asynchronous update.
type Operation uint8

const (
	OpAssign Operation = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// String returns the operation name used in codelet names and traces.
func (op Operation) String() string {
	switch op {
	case OpAssign:
		return "assign"
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	}
	return "unknown"
}

// targetMode is the access mode of the updated element: a plain
// assignment overwrites it, every other operation reads it first.
func (op Operation) targetMode() sched.AccessMode {
	if op == OpAssign {
		return sched.ModeW
	}
	return sched.ModeRW
}

// descriptor is the transient record generated for one asynchronous
// operation: the codelet plus, for value-arity operations, the boxed
// scalar operand. Ownership transfers to the runtime at submission; the
// task's completion callback returns it to the pool, so it is reclaimed
// exactly once.
type descriptor struct {
	cl    sched.Codelet
	value any
}

var descriptorPool = sync.Pool{New: func() any { return new(descriptor) }}

func (d *descriptor) release() {
	d.cl = sched.Codelet{}
	d.value = nil
	descriptorPool.Put(d)
}

// opValueFunc returns the CPU implementation of "x op= v" for a picked
// variable x and a boxed scalar argument v.
func opValueFunc[T tlap.Scalar](op Operation) func([]any, any) {
	return func(buffers []any, arg any) {
		x := buffers[0].(*variable[T])
		v := arg.(T)
		switch op {
		case OpAssign:
			x.set(v)
		case OpAdd:
			x.set(x.get() + v)
		case OpSubtract:
			x.set(x.get() - v)
		case OpMultiply:
			x.set(x.get() * v)
		case OpDivide:
			x.set(x.get() / v)
		}
	}
}

// opEntryFunc returns the CPU implementation of "x op= y" for two picked
// variables.
func opEntryFunc[T tlap.Scalar](op Operation) func([]any, any) {
	return func(buffers []any, arg any) {
		x := buffers[0].(*variable[T])
		y := buffers[1].(*variable[T])
		switch op {
		case OpAssign:
			x.set(y.get())
		case OpAdd:
			x.set(x.get() + y.get())
		case OpSubtract:
			x.set(x.get() - y.get())
		case OpMultiply:
			x.set(x.get() * y.get())
		case OpDivide:
			x.set(x.get() / y.get())
		}
	}
}

// Entry is a single-use proxy bound to one element of a mutable view.
// Constructing it isolates the element in a singleton partition of its
// tile; the assignment methods queue one asynchronous task and then
// release the partition. An entry that performed an assignment cannot be
// used again; take a fresh Entry for the next access.
type Entry[T tlap.Scalar] struct {
	m    *Matrix[T]
	tile *sched.Handle
	sub  *sched.Handle

	used   bool
	closed bool
}

// Entry returns the write proxy for element (i, j).
func (A *Matrix[T]) Entry(i, j int) *Entry[T] {
	if !A.mutable {
		panic("tile: write access on a read-only view")
	}
	th, pi, pj := A.tileHandle(i, j)
	sub := th.PickVariable(pi, pj, pickVariableFilter[T](pi, pj))
	return &Entry[T]{m: A, tile: th, sub: sub}
}

// Close releases the entry's singleton partition. The assignment methods
// close the entry themselves; Close is for entries that were only read
// or never used. Close is idempotent.
func (e *Entry[T]) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.tile.CleanPlan(e.sub)
}

// Value reads the element synchronously, waiting out queued writers.
// Reading does not consume the entry.
func (e *Entry[T]) Value() T {
	if e.closed {
		panic("tile: entry used after close")
	}
	e.m.rt.Acquire(e.sub, sched.ModeR)
	v := e.sub.Data().(*variable[T]).get()
	e.m.rt.Release(e.sub)
	return v
}

func (e *Entry[T]) consume() {
	if e.used {
		panic("tile: entry already consumed")
	}
	if e.closed {
		panic("tile: entry used after close")
	}
	e.used = true
}

// submitValue queues "target op= v" with the scalar boxed into the
// descriptor, and returns without waiting.
func (e *Entry[T]) submitValue(op Operation, v T) {
	e.consume()
	d := descriptorPool.Get().(*descriptor)
	d.cl = sched.Codelet{
		Name:       op.String() + "_value",
		NumBuffers: 1,
		Modes:      [2]sched.AccessMode{op.targetMode()},
		Func:       opValueFunc[T](op),
	}
	d.value = v
	t := &sched.Task{Codelet: &d.cl, Arg: d.value, Callback: d.release}
	t.Handles[0] = e.sub
	e.m.rt.MustSubmit(t)
	e.Close()
}

// submitEntry queues "target op= source" naming the source element's
// sub-handle directly, and returns without waiting. Both entries are
// consumed.
func (e *Entry[T]) submitEntry(op Operation, x *Entry[T]) {
	if x.m.rt != e.m.rt {
		panic("tile: entries belong to different runtimes")
	}
	e.consume()
	x.consume()
	d := descriptorPool.Get().(*descriptor)
	d.cl = sched.Codelet{
		Name:       op.String() + "_data",
		NumBuffers: 2,
		Modes:      [2]sched.AccessMode{op.targetMode(), sched.ModeR},
		Func:       opEntryFunc[T](op),
	}
	t := &sched.Task{Codelet: &d.cl, Callback: d.release}
	t.Handles[0] = e.sub
	t.Handles[1] = x.sub
	e.m.rt.MustSubmit(t)
	e.Close()
	x.Close()
}

// Assign queues "element = v".
func (e *Entry[T]) Assign(v T) { e.submitValue(OpAssign, v) }

// Add queues "element += v".
func (e *Entry[T]) Add(v T) { e.submitValue(OpAdd, v) }

// Sub queues "element -= v".
func (e *Entry[T]) Sub(v T) { e.submitValue(OpSubtract, v) }

// Mul queues "element *= v".
func (e *Entry[T]) Mul(v T) { e.submitValue(OpMultiply, v) }

// Div queues "element /= v".
func (e *Entry[T]) Div(v T) { e.submitValue(OpDivide, v) }

// AssignEntry queues "element = other".
func (e *Entry[T]) AssignEntry(x *Entry[T]) { e.submitEntry(OpAssign, x) }

// AddEntry queues "element += other".
func (e *Entry[T]) AddEntry(x *Entry[T]) { e.submitEntry(OpAdd, x) }

// SubEntry queues "element -= other".
func (e *Entry[T]) SubEntry(x *Entry[T]) { e.submitEntry(OpSubtract, x) }

// MulEntry queues "element *= other".
func (e *Entry[T]) MulEntry(x *Entry[T]) { e.submitEntry(OpMultiply, x) }

// DivEntry queues "element /= other".
func (e *Entry[T]) DivEntry(x *Entry[T]) { e.submitEntry(OpDivide, x) }
