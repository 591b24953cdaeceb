// Copyright 2024 The Vanikeys Authors
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

/*
Package search is the worker-pool caller spec.md §5 describes sitting on top
of the core's pure derivation/fingerprint/match pipeline: any number of
threads may call into the core concurrently over disjoint index ranges,
cooperating through an externally-owned stop flag rather than a
cancellation primitive the core itself would have to expose.
*/
package search

import (
	"sync"
	"sync/atomic"

	"github.com/vanikeys/core/derivation"
	"github.com/vanikeys/core/pattern"
	"github.com/vanikeys/core/proof"
)

// Result is the first winning proof an aggregator observes. Per spec.md §5,
// there are no ordering guarantees between workers: if two find a match at
// nearly the same time, whichever the aggregator sees first wins, and both
// are equally valid proofs.
type Result struct {
	Proof *proof.Proof
	Tried uint64
}

// Run partitions [0, indexCount) across workerCount goroutines and searches
// for the first child key matching p. It returns the winning proof, or
// ok=false if the whole range was exhausted without a match. Workers check
// a shared stop flag between attempts so the whole pool tears down quickly
// once any worker wins.
func Run(seed derivation.Seed, p *pattern.Pattern, indexCount uint64, workerCount int) (Result, bool) {
	if workerCount < 1 {
		workerCount = 1
	}

	var (
		stop   atomic.Bool
		tried  atomic.Uint64
		once   sync.Once
		winner Result
		found  bool
		wg     sync.WaitGroup
	)

	chunk := indexCount / uint64(workerCount)
	if chunk == 0 {
		chunk = 1
	}

	for w := 0; w < workerCount; w++ {
		start := uint64(w) * chunk
		end := start + chunk
		if w == workerCount-1 || end > indexCount {
			end = indexCount
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end uint64) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if stop.Load() {
					return
				}
				tried.Add(1)

				pr, err := proof.Generate(seed, i, p)
				if err != nil {
					continue
				}

				once.Do(func() {
					winner = Result{Proof: pr, Tried: tried.Load()}
					found = true
					stop.Store(true)
				})
				return
			}
		}(start, end)
	}

	wg.Wait()
	return winner, found
}
