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
Package pattern classifies and evaluates a pattern against an SSH fingerprint's
searchable 43-character body: prefix, suffix, contains, regex, and ordered
multi-substring matching, with optional fuzzy character-class equivalence.
*/
package pattern

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Mode is the match strategy. It is a closed set: Compile is the only way to
// produce a *Pattern, and it rejects any (mode, fuzzy) combination that isn't
// representable, so a caller can never hold a Pattern in an invalid state
// (spec.md §9 — e.g. regex with fuzzy never exists as a value).
type Mode string

const (
	ModePrefix         Mode = "prefix"
	ModeSuffix         Mode = "suffix"
	ModeContains       Mode = "contains"
	ModeRegex          Mode = "regex"
	ModeMultiSubstring Mode = "multi-substring"
)

// FuzzyMode is the character-equivalence class applied to substrings before
// matching. FuzzyNone disables fuzzy matching entirely.
type FuzzyMode string

const (
	FuzzyNone      FuzzyMode = ""
	FuzzyLeetspeak FuzzyMode = "leetspeak"
	FuzzyHomoglyph FuzzyMode = "homoglyph"
	FuzzyPhonetic  FuzzyMode = "phonetic"
)

// base64Alphabet is the standard (not URL-safe) alphabet fingerprint bodies
// are drawn from; Compile rejects non-regex patterns containing any other
// character.
const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var (
	ErrEmptyPattern          = fmt.Errorf("pattern: text or substrings must not be empty")
	ErrEmptySubstring        = fmt.Errorf("pattern: substrings must not be empty")
	ErrSubstringTooLong      = fmt.Errorf("pattern: substrings must be at most 20 characters")
	ErrInvalidCharacter      = fmt.Errorf("pattern: contains a character outside the base64 alphabet")
	ErrUnrecognizedMode      = fmt.Errorf("pattern: unrecognized match mode")
	ErrUnsupportedFuzzyMode  = fmt.Errorf("pattern: fuzzy mode not supported")
	ErrFuzzyIncompatibleMode = fmt.Errorf("pattern: regex mode does not support fuzzy matching")
	ErrInvalidRegex          = fmt.Errorf("pattern: regex does not compile")
)

// Spec is the caller-facing, dynamically-shaped request to build a Pattern —
// the JSON/CLI-facing record named in spec.md §6's compile_pattern. Compile
// turns it into the closed Pattern union or rejects it.
type Spec struct {
	Text          string
	Substrings    []string
	Mode          Mode
	Fuzzy         FuzzyMode
	CaseSensitive bool
}

// MatchPosition is one (substring, start, end) entry in a MatchRecord, using
// searchable-view coordinates (0 = first character after "SHA256:").
type MatchPosition struct {
	SubstringIndex int
	Start          int
	End            int
}

// Pattern is an immutable, validated match specification.
type Pattern struct {
	mode          Mode
	text          string
	substrings    []string
	fuzzy         FuzzyMode
	caseSensitive bool

	regex      *regexp2.Regexp   // ModeRegex
	subRegexes []*regexp2.Regexp // fuzzy-expanded regex per substring, else nil
}

func (p *Pattern) Mode() Mode           { return p.mode }
func (p *Pattern) Text() string         { return p.text }
func (p *Pattern) Substrings() []string { return p.substrings }
func (p *Pattern) Fuzzy() FuzzyMode     { return p.fuzzy }
func (p *Pattern) CaseSensitive() bool  { return p.caseSensitive }

// CanonicalForm reports the letter-form normalization of the pattern's literal
// text/substrings under its fuzzy class (e.g. leetspeak "B00M" -> "BOOM",
// spec.md §4.3, §8 S4). With no fuzzy class the text passes through unchanged.
func (p *Pattern) CanonicalForm() []string {
	if p.mode == ModeMultiSubstring {
		out := make([]string, len(p.substrings))
		for i, s := range p.substrings {
			out[i] = canonicalForm(s, p.fuzzy)
		}
		return out
	}
	if p.mode == ModeRegex {
		return []string{p.text}
	}
	return []string{canonicalForm(p.text, p.fuzzy)}
}

// MatchedLength is the sum of the lengths of every literal substring/text the
// pattern requires to appear; it drives both the validation warnings below
// and the difficulty estimator.
func (p *Pattern) MatchedLength() int {
	if p.mode == ModeMultiSubstring {
		total := 0
		for _, s := range p.substrings {
			total += len(s)
		}
		return total
	}
	return len(p.text)
}

// ValidationWarnings reports non-fatal concerns about an otherwise-valid
// pattern: total matched length thresholds correlated with expected search
// time (spec.md §4.3).
func (p *Pattern) ValidationWarnings() []string {
	var warnings []string
	l := p.MatchedLength()
	if p.mode == ModeRegex {
		return warnings
	}
	if l >= 7 {
		warnings = append(warnings, "pattern is likely infeasible to search for at typical CPU throughput")
	} else if l >= 6 {
		warnings = append(warnings, "pattern is expected to take on the order of an hour or more to find")
	}
	return warnings
}

// Compile validates spec and builds the corresponding closed-union Pattern,
// or returns a descriptive validation error.
func Compile(spec Spec) (*Pattern, error) {
	switch spec.Mode {
	case ModePrefix, ModeSuffix, ModeContains, ModeRegex, ModeMultiSubstring:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedMode, spec.Mode)
	}

	if spec.Mode == ModeRegex && spec.Fuzzy != FuzzyNone {
		return nil, ErrFuzzyIncompatibleMode
	}

	if spec.Fuzzy == FuzzyPhonetic {
		return nil, ErrUnsupportedFuzzyMode
	}
	if spec.Fuzzy != FuzzyNone && spec.Fuzzy != FuzzyLeetspeak && spec.Fuzzy != FuzzyHomoglyph {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFuzzyMode, spec.Fuzzy)
	}

	p := &Pattern{
		mode:          spec.Mode,
		fuzzy:         spec.Fuzzy,
		caseSensitive: spec.CaseSensitive,
	}

	if spec.Mode == ModeMultiSubstring {
		if len(spec.Substrings) == 0 {
			return nil, ErrEmptyPattern
		}
		for _, s := range spec.Substrings {
			if s == "" {
				return nil, ErrEmptySubstring
			}
			if len(s) > 20 {
				return nil, ErrSubstringTooLong
			}
			if err := validateCharset(s); err != nil {
				return nil, err
			}
		}
		p.substrings = append([]string(nil), spec.Substrings...)
	} else {
		if spec.Text == "" {
			return nil, ErrEmptyPattern
		}
		if len(spec.Text) > 20 && spec.Mode != ModeRegex {
			return nil, ErrSubstringTooLong
		}
		if spec.Mode != ModeRegex {
			if err := validateCharset(spec.Text); err != nil {
				return nil, err
			}
		}
		p.text = spec.Text
	}

	if spec.Mode == ModeRegex {
		opts := regexp2.None
		if !spec.CaseSensitive {
			opts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(spec.Text, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
		}
		p.regex = re
		return p, nil
	}

	if spec.Fuzzy != FuzzyNone {
		var subs []string
		if spec.Mode == ModeMultiSubstring {
			subs = p.substrings
		} else {
			subs = []string{p.text}
		}
		regexes := make([]*regexp2.Regexp, len(subs))
		for i, s := range subs {
			re, err := compileFuzzyRegex(s, spec.Fuzzy, spec.CaseSensitive)
			if err != nil {
				return nil, err
			}
			regexes[i] = re
		}
		p.subRegexes = regexes
	}

	return p, nil
}

func validateCharset(s string) error {
	for _, r := range s {
		if !strings.ContainsRune(base64Alphabet, r) {
			return fmt.Errorf("%w: %q", ErrInvalidCharacter, r)
		}
	}
	return nil
}
