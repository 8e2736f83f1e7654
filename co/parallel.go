// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"runtime"
)

// Enqueue queues a work item.
type Enqueue func(work func())

// Parallel runs the works queued by cb on one worker per CPU and returns when all are done.
func Parallel(cb func(Enqueue)) {
	ParallelN(runtime.NumCPU(), cb)
}

// ParallelN is like Parallel with the given number of workers.
func ParallelN(workers int, cb func(Enqueue)) {
	workers = max(workers, 1)

	var goes Goes
	ch := make(chan func(), workers*2)
	for range workers {
		goes.Go(func() {
			for work := range ch {
				work()
			}
		})
	}
	cb(func(work func()) { ch <- work })
	close(ch)
	goes.Wait()
}
