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

import "strings"

// MatchRecord is the full result of a successful Match call: the ordered,
// non-overlapping positions that satisfied the pattern, in searchable-view
// coordinates.
type MatchRecord struct {
	Positions []MatchPosition
}

// Match evaluates p against an SSH fingerprint's searchable view (the
// 43-character body, without the "SHA256:" prefix — callers get one from
// fingerprint.SearchableView). It returns (record, true) on success, or
// (nil, false) if the pattern does not match.
func Match(p *Pattern, view string) (*MatchRecord, bool) {
	switch p.mode {
	case ModePrefix:
		return matchAnchored(p, view, true)
	case ModeSuffix:
		return matchAnchored(p, view, false)
	case ModeContains:
		return matchContains(p, view)
	case ModeRegex:
		return matchRegex(p, view)
	case ModeMultiSubstring:
		return matchMultiSubstring(p, view)
	default:
		return nil, false
	}
}

func normalize(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

func matchAnchored(p *Pattern, view string, prefix bool) (*MatchRecord, bool) {
	if p.fuzzy != FuzzyNone {
		re := p.subRegexes[0]
		if prefix {
			m, _ := re.FindStringMatch(view)
			if m != nil && m.Index == 0 {
				return &MatchRecord{Positions: []MatchPosition{{0, m.Index, m.Index + m.Length}}}, true
			}
			return nil, false
		}
		// Suffix: the fuzzy regex has one character class per pattern
		// character, so a suffix match can only start len(text) characters
		// before the end of the view; try the regex there alone.
		start := len(view) - len(p.text)
		if start < 0 {
			return nil, false
		}
		m, _ := re.FindStringMatch(view[start:])
		if m != nil && m.Index == 0 && m.Length == len(p.text) {
			return &MatchRecord{Positions: []MatchPosition{{0, start, start + m.Length}}}, true
		}
		return nil, false
	}

	view = normalize(view, p.caseSensitive)
	text := normalize(p.text, p.caseSensitive)

	if prefix {
		if strings.HasPrefix(view, text) {
			return &MatchRecord{Positions: []MatchPosition{{0, 0, len(text)}}}, true
		}
		return nil, false
	}
	if strings.HasSuffix(view, text) {
		start := len(view) - len(text)
		return &MatchRecord{Positions: []MatchPosition{{0, start, start + len(text)}}}, true
	}
	return nil, false
}

func matchContains(p *Pattern, view string) (*MatchRecord, bool) {
	if p.fuzzy != FuzzyNone {
		re := p.subRegexes[0]
		m, _ := re.FindStringMatch(view)
		if m == nil {
			return nil, false
		}
		return &MatchRecord{Positions: []MatchPosition{{0, m.Index, m.Index + m.Length}}}, true
	}

	normView := normalize(view, p.caseSensitive)
	text := normalize(p.text, p.caseSensitive)
	idx := strings.Index(normView, text)
	if idx == -1 {
		return nil, false
	}
	return &MatchRecord{Positions: []MatchPosition{{0, idx, idx + len(text)}}}, true
}

func matchRegex(p *Pattern, view string) (*MatchRecord, bool) {
	m, err := p.regex.FindStringMatch(view)
	if err != nil || m == nil {
		return nil, false
	}
	return &MatchRecord{Positions: []MatchPosition{{0, m.Index, m.Index + m.Length}}}, true
}

// matchMultiSubstring implements spec.md §4.3's ordered, non-overlapping,
// greedy-leftmost semantics: each substring is searched for starting right
// after the previous substring's match ends, and the first successful
// assignment found is returned (not the set of all possible assignments).
func matchMultiSubstring(p *Pattern, view string) (*MatchRecord, bool) {
	positions := make([]MatchPosition, 0, len(p.substrings))
	cursor := 0

	for i, sub := range p.substrings {
		window := view[cursor:]

		var start, length int
		if p.fuzzy != FuzzyNone {
			re := p.subRegexes[i]
			m, err := re.FindStringMatch(window)
			if err != nil || m == nil {
				return nil, false
			}
			start, length = m.Index, m.Length
		} else {
			normWindow := normalize(window, p.caseSensitive)
			normSub := normalize(sub, p.caseSensitive)
			idx := strings.Index(normWindow, normSub)
			if idx == -1 {
				return nil, false
			}
			start, length = idx, len(normSub)
		}

		absStart := cursor + start
		absEnd := absStart + length
		positions = append(positions, MatchPosition{SubstringIndex: i, Start: absStart, End: absEnd})
		cursor = absEnd
	}

	return &MatchRecord{Positions: positions}, true
}
