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

//go:build linux

package sched

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinWorker binds the calling worker to one CPU so the OS does not
// migrate task execution between cores mid-kernel. Best effort: a failed
// affinity call leaves the worker unpinned.
func pinWorker(id int) {
	runtime.LockOSThread()
	var set unix.CPUSet
	set.Zero()
	set.Set(id % runtime.NumCPU())
	_ = unix.SchedSetaffinity(0, &set)
}
