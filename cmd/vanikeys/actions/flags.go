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
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/vanikeys/core/pattern"
)

// PatternFlags describes the match pattern a command searches or proves
// against. Shared by the search-demo and verify commands.
var PatternFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "mode",
		Value: "contains",
		Usage: "match mode: prefix, suffix, contains, regex, multi-substring",
	},
	&cli.StringFlag{
		Name:  "text",
		Usage: "pattern text (all modes except multi-substring)",
	},
	&cli.StringFlag{
		Name:  "substrings",
		Usage: "comma-separated substrings (multi-substring mode only)",
	},
	&cli.StringFlag{
		Name:  "fuzzy",
		Usage: "fuzzy mode: leetspeak, homoglyph (omit for exact matching)",
	},
	&cli.BoolFlag{
		Name:  "case-sensitive",
		Usage: "require exact case (default: case-insensitive)",
	},
	&cli.StringFlag{
		Name:  "seed",
		Usage: "seed as 64 hex characters (prompted if omitted)",
	},
}

// PatternFromContext builds and compiles a pattern.Pattern from PatternFlags.
func PatternFromContext(c *cli.Context) (*pattern.Pattern, error) {
	spec := pattern.Spec{
		Mode:          pattern.Mode(c.String("mode")),
		Text:          c.String("text"),
		Fuzzy:         pattern.FuzzyMode(c.String("fuzzy")),
		CaseSensitive: c.Bool("case-sensitive"),
	}
	if raw := c.String("substrings"); raw != "" {
		parts := strings.Split(raw, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		spec.Substrings = parts
	}

	p, err := pattern.Compile(spec)
	if err != nil {
		return nil, cli.Exit(err.Error(), InvalidParameter)
	}
	return p, nil
}
