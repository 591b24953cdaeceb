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

package difficulty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanikeys/core/difficulty"
	"github.com/vanikeys/core/pattern"
)

// S6 from spec.md §8: "lab1234" as a case-insensitive contains pattern is
// extreme at the default 100K/s throughput; "lab" alone is medium.
func TestEstimate_GoldenVector_Lab1234IsExtreme(t *testing.T) {
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "lab1234"})
	require.NoError(t, err)

	result := difficulty.Estimate(p, 100_000)
	require.NotNil(t, result.ExpectedAttempts)
	assert.True(t, result.ExpectedAttempts.GreaterThan(decimal.New(1, 9)),
		"expected attempts %s should exceed 1e9", result.ExpectedAttempts)
	assert.Equal(t, difficulty.TierExtreme, result.Tier)
}

// The second half of S6 gives no modifiers for "lab", unlike "lab1234"'s
// explicit "contains, case-insensitive" — read here as the plain
// case-sensitive prefix match a caller would mean by a bare pattern.
func TestEstimate_GoldenVector_LabIsMedium(t *testing.T) {
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModePrefix, Text: "lab", CaseSensitive: true})
	require.NoError(t, err)

	result := difficulty.Estimate(p, 100_000)
	assert.Equal(t, difficulty.TierMedium, result.Tier)
}

func TestEstimate_RegexIsUnknown(t *testing.T) {
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeRegex, Text: "[0-9]{3}"})
	require.NoError(t, err)

	result := difficulty.Estimate(p, 100_000)
	assert.Nil(t, result.ExpectedAttempts)
	assert.Equal(t, "unknown", difficulty.ProbabilityString(result))
}

func TestEstimate_LongerPrefixHasMoreExpectedAttempts(t *testing.T) {
	short, err := pattern.Compile(pattern.Spec{Mode: pattern.ModePrefix, Text: "ab", CaseSensitive: true})
	require.NoError(t, err)
	long, err := pattern.Compile(pattern.Spec{Mode: pattern.ModePrefix, Text: "abcd", CaseSensitive: true})
	require.NoError(t, err)

	shortResult := difficulty.Estimate(short, 100_000)
	longResult := difficulty.Estimate(long, 100_000)
	assert.True(t, longResult.ExpectedAttempts.GreaterThan(*shortResult.ExpectedAttempts))
}

func TestEstimate_FuzzyReducesExpectedAttempts(t *testing.T) {
	exact, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "boom", CaseSensitive: true})
	require.NoError(t, err)
	fuzzy, err := pattern.Compile(pattern.Spec{
		Mode: pattern.ModeContains, Text: "boom", CaseSensitive: true, Fuzzy: pattern.FuzzyLeetspeak,
	})
	require.NoError(t, err)

	exactResult := difficulty.Estimate(exact, 100_000)
	fuzzyResult := difficulty.Estimate(fuzzy, 100_000)
	assert.True(t, fuzzyResult.ExpectedAttempts.LessThan(*exactResult.ExpectedAttempts))
}

func TestEstimate_CaseInsensitiveReducesExpectedAttempts(t *testing.T) {
	sensitive, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "boom", CaseSensitive: true})
	require.NoError(t, err)
	insensitive, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "boom", CaseSensitive: false})
	require.NoError(t, err)

	sensitiveResult := difficulty.Estimate(sensitive, 100_000)
	insensitiveResult := difficulty.Estimate(insensitive, 100_000)
	assert.True(t, insensitiveResult.ExpectedAttempts.LessThan(*sensitiveResult.ExpectedAttempts))
}

func TestEstimate_MultiSubstringAccountsForEachPiece(t *testing.T) {
	p, err := pattern.Compile(pattern.Spec{
		Mode:          pattern.ModeMultiSubstring,
		Substrings:    []string{"go", "be"},
		CaseSensitive: true,
	})
	require.NoError(t, err)

	result := difficulty.Estimate(p, 100_000)
	require.NotNil(t, result.ExpectedAttempts)
	assert.True(t, result.ExpectedAttempts.GreaterThan(decimal.Zero))
}

func TestDefaultThroughput_IsPositive(t *testing.T) {
	assert.Greater(t, difficulty.DefaultThroughput(), int64(0))
}

func TestProbabilityString_FormatsWithScale(t *testing.T) {
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModePrefix, Text: "abcdef", CaseSensitive: true})
	require.NoError(t, err)

	result := difficulty.Estimate(p, 100_000)
	s := difficulty.ProbabilityString(result)
	assert.Contains(t, s, "1 in")
}

func TestDurationString_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", difficulty.DurationString(difficulty.Result{}))
}
