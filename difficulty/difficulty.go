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
Package difficulty estimates how many derivation attempts a pattern is expected
to take against a random SSH fingerprint body, and classifies that into a
human-facing tier and duration. All arithmetic is pure; nothing here touches
the network, a clock, or a key.
*/
package difficulty

import (
	"fmt"

	"github.com/klauspost/cpuid/v2"
	"github.com/shopspring/decimal"
	"github.com/vanikeys/core/pattern"
)

const (
	// Charset is the number of symbols a fingerprint body position is drawn
	// from (the standard base64 alphabet).
	Charset = 64

	// BodyLength is the fixed length of a fingerprint's searchable view.
	BodyLength = 43

	// DefaultThroughputPerCore is the assumed derive+fingerprint+match rate
	// of a single CPU core, in keys per second (spec.md §4.4).
	DefaultThroughputPerCore = 100_000
)

// Tier buckets expected search time into a human-facing difficulty class.
type Tier string

const (
	TierEasy    Tier = "easy"
	TierMedium  Tier = "medium"
	TierHard    Tier = "hard"
	TierExtreme Tier = "extreme"
)

// Result is the outcome of evaluating a pattern's search difficulty.
type Result struct {
	// ExpectedAttempts is nil when the pattern is a regex (spec.md §4.4: the
	// estimator returns "unknown" for regex mode).
	ExpectedAttempts *decimal.Decimal
	Tier             Tier
	ThroughputPerSec int64
	DurationSeconds  *decimal.Decimal
}

// DefaultThroughput returns the assumed per-core throughput, nudged upward
// when the running CPU advertises the vector extensions a SHA-256/Ed25519
// search loop benefits from. This is a display default only; callers doing
// real capacity planning should pass their own measured rate to Estimate.
func DefaultThroughput() int64 {
	rate := int64(DefaultThroughputPerCore)
	if cpuid.CPU.Supports(cpuid.AVX2) {
		rate = rate * 3 / 2
	}
	if cpuid.CPU.Supports(cpuid.SHA) {
		rate *= 2
	}
	return rate
}

// Estimate computes the expected number of derivation attempts to find a
// fingerprint satisfying p, the resulting tier, and the expected duration at
// the given throughput (keys/sec). Pass throughput <= 0 to use DefaultThroughput.
func Estimate(p *pattern.Pattern, throughput int64) Result {
	if throughput <= 0 {
		throughput = DefaultThroughput()
	}

	if p.Mode() == pattern.ModeRegex {
		return Result{ExpectedAttempts: nil, Tier: TierExtreme, ThroughputPerSec: throughput}
	}

	base := baseExpectedAttempts(p)
	adjusted := base.Div(fuzzyFactor(p)).Div(caseFactor(p))

	durationSeconds := adjusted.Div(decimal.NewFromInt(throughput))
	tier := tierFor(durationSeconds)

	return Result{
		ExpectedAttempts: &adjusted,
		Tier:             tier,
		ThroughputPerSec: throughput,
		DurationSeconds:  &durationSeconds,
	}
}

func baseExpectedAttempts(p *pattern.Pattern) decimal.Decimal {
	switch p.Mode() {
	case pattern.ModePrefix, pattern.ModeSuffix:
		return pow64(len(p.Text()))
	case pattern.ModeContains:
		l := len(p.Text())
		denom := decimal.NewFromInt(int64(BodyLength - l + 1))
		return pow64(l).Div(denom)
	case pattern.ModeMultiSubstring:
		total := 0
		for _, s := range p.Substrings() {
			total += len(s)
		}
		k := len(p.Substrings())
		n := BodyLength - total + k
		denom := decimal.NewFromInt(combinations(n, k))
		return pow64(total).Div(denom)
	default:
		return decimal.Zero
	}
}

func pow64(exp int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	base := decimal.NewFromInt(Charset)
	for i := 0; i < exp; i++ {
		result = result.Mul(base)
	}
	return result
}

// combinations computes C(n, k) for the small values (n <= a few hundred)
// difficulty estimation ever sees; n < k (over-constrained pattern) yields 1
// so division never blows up into a negative or undefined result.
func combinations(n, k int) int64 {
	if k <= 0 || n <= 0 || n < k {
		return 1
	}
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := 0; i < k; i++ {
		result = result * int64(n-i) / int64(i+1)
	}
	return result
}

// fuzzyFactor is the product, across every character the pattern requires,
// of that character's equivalence-class size under the pattern's fuzzy mode
// (1 for a character with no class). spec.md §4.4's "divide by m^f" is the
// special case where every fuzzable position shares the same class size m.
func fuzzyFactor(p *pattern.Pattern) decimal.Decimal {
	factor := decimal.NewFromInt(1)
	if p.Fuzzy() == pattern.FuzzyNone {
		return factor
	}

	texts := p.Substrings()
	if p.Mode() != pattern.ModeMultiSubstring {
		texts = []string{p.Text()}
	}
	for _, s := range texts {
		for _, n := range FuzzyClassSizes(s, p.Fuzzy()) {
			factor = factor.Mul(decimal.NewFromInt(int64(n)))
		}
	}
	return factor
}

// caseFactor accounts for case-insensitive matching: each alphabetic
// character in the pattern's text doubles the chance a random position
// satisfies it, so expected attempts divide by 2 per such character.
func caseFactor(p *pattern.Pattern) decimal.Decimal {
	factor := decimal.NewFromInt(1)
	if p.CaseSensitive() {
		return factor
	}

	texts := p.Substrings()
	if p.Mode() != pattern.ModeMultiSubstring {
		texts = []string{p.Text()}
	}
	for _, s := range texts {
		for _, r := range s {
			if isAlpha(r) {
				factor = factor.Mul(decimal.NewFromInt(2))
			}
		}
	}
	return factor
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func tierFor(durationSeconds decimal.Decimal) Tier {
	switch {
	case durationSeconds.LessThan(decimal.NewFromInt(1)):
		return TierEasy
	case durationSeconds.LessThan(decimal.NewFromInt(60)):
		return TierMedium
	case durationSeconds.LessThan(decimal.NewFromInt(3600)):
		return TierHard
	default:
		return TierExtreme
	}
}

// ProbabilityString renders expected attempts as "1 in <N>" with a scaled
// suffix (K/M/B/T), e.g. "1 in 4.2B".
func ProbabilityString(e Result) string {
	if e.ExpectedAttempts == nil {
		return "unknown"
	}
	return fmt.Sprintf("1 in %s", scaledString(*e.ExpectedAttempts))
}

// DurationString renders the expected search duration as a coarse
// human-facing string, e.g. "42 seconds", "6 hours", "centuries".
func DurationString(e Result) string {
	if e.DurationSeconds == nil {
		return "unknown"
	}
	s := *e.DurationSeconds
	switch {
	case s.LessThan(decimal.NewFromInt(60)):
		return s.Round(0).String() + " seconds"
	case s.LessThan(decimal.NewFromInt(3600)):
		return s.Div(decimal.NewFromInt(60)).Round(0).String() + " minutes"
	case s.LessThan(decimal.NewFromInt(86400)):
		return s.Div(decimal.NewFromInt(3600)).Round(0).String() + " hours"
	case s.LessThan(decimal.NewFromInt(86400 * 365)):
		return s.Div(decimal.NewFromInt(86400)).Round(0).String() + " days"
	case s.LessThan(decimal.NewFromInt(86400 * 365 * 100)):
		return s.Div(decimal.NewFromInt(86400 * 365)).Round(0).String() + " years"
	default:
		return "centuries"
	}
}

func scaledString(d decimal.Decimal) string {
	units := []struct {
		suffix string
		factor decimal.Decimal
	}{
		{"T", decimal.NewFromInt(1_000_000_000_000)},
		{"B", decimal.NewFromInt(1_000_000_000)},
		{"M", decimal.NewFromInt(1_000_000)},
		{"K", decimal.NewFromInt(1_000)},
	}
	for _, u := range units {
		if d.GreaterThanOrEqual(u.factor) {
			scaled := d.Div(u.factor)
			return scaled.Round(1).String() + u.suffix
		}
	}
	return d.Round(0).String()
}
