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

package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// leetspeakClasses is the normative table from spec.md §4.3: canonical letter
// first, digit counterpart second. Frozen; do not extend without a protocol
// version bump, since it feeds the difficulty estimator's 2^f adjustment.
var leetspeakClasses = []string{
	"O0",
	"I1",
	"E3",
	"A4",
	"S5",
	"T7",
	"B8",
}

// homoglyphClasses is the frozen visual-similarity table (spec.md §9 Q1):
// the exact set is part of the protocol and MUST match across implementations
// for reproducible results.
var homoglyphClasses = []string{
	"0OQ",
	"1Il",
}

func classesFor(fuzzy FuzzyMode) []string {
	switch fuzzy {
	case FuzzyLeetspeak:
		return leetspeakClasses
	case FuzzyHomoglyph:
		return homoglyphClasses
	default:
		return nil
	}
}

// equivalentsOf returns every character equivalent to r under fuzzy (including
// r itself), or nil if r participates in no equivalence class.
func equivalentsOf(r rune, fuzzy FuzzyMode) []rune {
	for _, class := range classesFor(fuzzy) {
		if strings.ContainsRune(class, unicode.ToUpper(r)) || strings.ContainsRune(class, r) {
			runes := make([]rune, 0, len(class))
			for _, c := range class {
				if unicode.IsLower(r) && c == unicode.ToUpper(r) {
					c = r
				}
				runes = append(runes, c)
			}
			return runes
		}
	}
	return nil
}

// fuzzablePositions returns, for each rune in s, the number of equivalent
// characters (including itself) contributed by fuzzy. A character with no
// equivalence class contributes a factor of 1.
func fuzzablePositions(s string, fuzzy FuzzyMode) []int {
	factors := make([]int, 0, len(s))
	for _, r := range s {
		eq := equivalentsOf(r, fuzzy)
		if eq == nil {
			factors = append(factors, 1)
		} else {
			factors = append(factors, len(eq))
		}
	}
	return factors
}

// FuzzyClassSizes exposes fuzzablePositions to other packages (the difficulty
// estimator's per-character m^f adjustment, spec.md §4.4).
func FuzzyClassSizes(s string, fuzzy FuzzyMode) []int {
	return fuzzablePositions(s, fuzzy)
}

// canonicalForm maps every fuzzy-equivalent character back to its canonical
// (first) member of its class — e.g. leetspeak "B00M" -> "BOOM" (spec.md §4.3,
// §8 S4). Characters outside any class pass through unchanged.
func canonicalForm(s string, fuzzy FuzzyMode) string {
	var b strings.Builder
	for _, r := range s {
		canon := r
		for _, class := range classesFor(fuzzy) {
			if strings.ContainsRune(strings.ToUpper(class), unicode.ToUpper(r)) {
				canon = rune(class[0])
				if unicode.IsLower(r) {
					canon = unicode.ToLower(canon)
				}
				break
			}
		}
		b.WriteRune(canon)
	}
	return b.String()
}

// compileFuzzyRegex expands s into a regex with a character class at each
// fuzzy-equivalent position, anchored to neither side so it can be located
// anywhere in the remaining search window.
func compileFuzzyRegex(s string, fuzzy FuzzyMode, caseSensitive bool) (*regexp2.Regexp, error) {
	var b strings.Builder
	for _, r := range s {
		eq := equivalentsOf(r, fuzzy)
		if eq == nil {
			b.WriteString(regexp.QuoteMeta(string(r)))
			continue
		}
		b.WriteString("[")
		for _, c := range eq {
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
		b.WriteString("]")
	}

	opts := regexp2.None
	if !caseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(b.String(), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
	}
	return re, nil
}
