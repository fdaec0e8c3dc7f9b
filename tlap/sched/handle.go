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

// Handle is a unit of data known to the dependency tracker. A root
// handle is produced by Register and wraps a caller-owned payload; child
// handles are produced by partitioning and alias parts of the root's
// data through payloads derived by a Filter.
type Handle struct {
	rt     *Runtime
	data   any
	parent *Handle

	// Partition tree. Children are one level below this handle; the
	// tile layer builds exactly two levels (row blocks, then column
	// blocks per row block).
	children []*Handle

	// Singleton variable plans keyed by position, shared between all
	// accessors of the same variable so that same-element operations
	// are ordered. Guarded by rt.mu.
	plans map[planKey]*plan
	key   planKey // position of this handle within its parent's plans
	plan  bool    // whether this handle is a variable plan

	// Dependency state, guarded by rt.mu.
	lastWriter *Task
	readers    []*Task
	holds      []*Task
}

type planKey struct{ i, j int }

type plan struct {
	sub  *Handle
	refs int
}

// Filter derives the payload of child i out of nparts children from a
// parent payload. Filters are supplied by the data's owner; the runtime
// never interprets payloads.
type Filter func(parent any, i, nparts int) any

// Register creates a root handle for a caller-owned payload. The caller
// keeps ownership of the underlying memory; the runtime only tracks it.
func (rt *Runtime) Register(data any) *Handle {
	if data == nil {
		panic("sched: register with nil data")
	}
	rt.log.Trace().Msg("handle registered")
	return &Handle{rt: rt, data: data}
}

// Unregister releases the runtime's bookkeeping for a root handle.
// The handle must be unpartitioned and must have no live variable plans;
// violating either is a programmer error.
func (rt *Runtime) Unregister(h *Handle) {
	if h.parent != nil {
		panic("sched: unregister of a derived handle")
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if len(h.children) > 0 {
		panic("sched: unregister of a partitioned handle")
	}
	if h.livePlans() > 0 {
		panic("sched: unregister with live variable plans")
	}
	h.data = nil
	rt.log.Trace().Msg("handle unregistered")
}

// Data returns the payload the handle was registered or derived with.
func (h *Handle) Data() any { return h.data }

// IsPartitioned reports whether the handle has children.
func (h *Handle) IsPartitioned() bool { return len(h.children) > 0 }

// NumChildren returns the number of direct children.
func (h *Handle) NumChildren() int { return len(h.children) }

// Child returns direct child i.
func (h *Handle) Child(i int) *Handle {
	if i < 0 || i >= len(h.children) {
		panic("sched: child index out of bounds")
	}
	return h.children[i]
}

// Sub returns the depth-2 child (i, j), i.e. Child(i).Child(j).
func (h *Handle) Sub(i, j int) *Handle { return h.Child(i).Child(j) }

// Partition splits the handle into nparts children whose payloads are
// derived by f. A handle may be partitioned at most once; partitioning
// an already-partitioned handle is a contract violation.
func (h *Handle) Partition(nparts int, f Filter) {
	if nparts <= 0 {
		panic("sched: non-positive partition count")
	}
	h.rt.mu.Lock()
	defer h.rt.mu.Unlock()
	if len(h.children) > 0 {
		panic("sched: handle already partitioned")
	}
	if h.livePlans() > 0 {
		panic("sched: partition with live variable plans")
	}
	h.children = make([]*Handle, nparts)
	for i := range h.children {
		h.children[i] = &Handle{rt: h.rt, data: f(h.data, i, nparts), parent: h}
	}
}

// MapBlocks applies the two-level block partition: rowF splits the
// handle into nx row blocks, then colF splits each row block into ny
// column blocks, producing nx*ny leaf tiles.
func (h *Handle) MapBlocks(nx, ny int, rowF, colF Filter) {
	h.Partition(nx, rowF)
	for _, c := range h.children {
		c.Partition(ny, colF)
	}
}

// Unpartition collapses the partition tree. Every descendant must have
// released its variable plans and holds first.
func (h *Handle) Unpartition() {
	h.rt.mu.Lock()
	defer h.rt.mu.Unlock()
	if len(h.children) == 0 {
		panic("sched: handle is not partitioned")
	}
	for _, c := range h.children {
		c.checkCollapsible()
	}
	h.children = nil
}

// checkCollapsible panics if the subtree still has live plans or holds.
// Runtime mutex held.
func (h *Handle) checkCollapsible() {
	if h.livePlans() > 0 {
		panic("sched: unpartition with live variable plans")
	}
	if len(h.holds) > 0 {
		panic("sched: unpartition with an active acquire")
	}
	for _, c := range h.children {
		c.checkCollapsible()
	}
}

// livePlans returns the number of outstanding plan references.
// Runtime mutex held.
func (h *Handle) livePlans() int {
	n := 0
	for _, p := range h.plans {
		n += p.refs
	}
	return n
}

// PickVariable returns the singleton sub-handle isolating one variable
// of h, creating it on first use via mk. Plans for the same position
// share a single handle, which is what orders same-element tasks; the
// dependency state of a position survives CleanPlan so that ordering
// extends across accessor lifetimes.
func (h *Handle) PickVariable(i, j int, mk func(parent any) any) *Handle {
	h.rt.mu.Lock()
	defer h.rt.mu.Unlock()
	if len(h.children) > 0 {
		panic("sched: pick variable on a partitioned handle")
	}
	if h.plans == nil {
		h.plans = make(map[planKey]*plan)
	}
	key := planKey{i, j}
	p := h.plans[key]
	if p == nil {
		p = &plan{sub: &Handle{rt: h.rt, data: mk(h.data), parent: h, key: key, plan: true}}
		h.plans[key] = p
	}
	p.refs++
	return p.sub
}

// CleanPlan releases one reference to a variable plan obtained from
// PickVariable.
func (h *Handle) CleanPlan(sub *Handle) {
	h.rt.mu.Lock()
	defer h.rt.mu.Unlock()
	if !sub.plan || sub.parent != h {
		panic("sched: clean of a foreign plan")
	}
	p := h.plans[sub.key]
	if p == nil || p.refs == 0 {
		panic("sched: plan released twice")
	}
	p.refs--
}
