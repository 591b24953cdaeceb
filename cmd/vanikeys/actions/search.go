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

package actions

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/vanikeys/core/difficulty"
	"github.com/vanikeys/core/proof"
	"github.com/vanikeys/core/search"
)

var SearchFlags = append(append([]cli.Flag{}, PatternFlags...),
	&cli.Uint64Flag{
		Name:  "index-count",
		Value: 1_000_000,
		Usage: "size of the index range to search, starting at 0",
	},
	&cli.IntFlag{
		Name:  "workers",
		Value: runtime.NumCPU(),
		Usage: "number of worker goroutines",
	},
)

// SearchDemoCommand runs the worker-pool search over a bounded index range
// and prints the first matching proof, or reports the range was exhausted.
// It prints a difficulty estimate up front so the caller knows what to
// expect before committing CPU time.
func SearchDemoCommand(c *cli.Context) error {
	seed, err := ReadSeedHex(c.String("seed"))
	if err != nil {
		return err
	}
	defer seed.Zero()

	p, err := PatternFromContext(c)
	if err != nil {
		return err
	}

	estimate := difficulty.Estimate(p, difficulty.DefaultThroughput())
	fmt.Printf("difficulty: %s (expected %s, ~%s)\n",
		estimate.Tier, difficulty.ProbabilityString(estimate), difficulty.DurationString(estimate))

	workers := c.Int("workers")
	indexCount := c.Uint64("index-count")

	log.Info().Int("workers", workers).Uint64("index_count", indexCount).Msg("searching")

	result, ok := search.Run(seed, p, indexCount, workers)
	if !ok {
		return cli.Exit(fmt.Sprintf("no match found in [0, %d)", indexCount), NoMatchFound)
	}

	fp := result.Proof.Fingerprint
	fmt.Printf("found at index %d (%d keys tried)\n", result.Proof.Index, result.Tried)
	fmt.Printf("fingerprint: %s\n", fp)

	wire, err := proof.ToBytes(result.Proof)
	if err != nil {
		return cli.Exit(err.Error(), OperationFailed)
	}
	fmt.Printf("proof: %s\n", string(wire))

	return nil
}
