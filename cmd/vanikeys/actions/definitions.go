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

import "github.com/urfave/cli/v2"

// StandardSet is the full vanikeys command tree.
var StandardSet = []*cli.Command{
	{
		Name:   "generate-seed",
		Usage:  "generate a new random seed and print it as hex and mnemonic",
		Action: GenerateSeedCommand,
	},
	{
		Name:      "mnemonic-to-hex",
		Usage:     "recover a seed's hex form from its mnemonic",
		ArgsUsage: "\"word1 word2 ... word24\"",
		Action:    MnemonicToHexCommand,
	},
	{
		Name:   "derive",
		Usage:  "derive a single child keypair and print its fingerprint",
		Action: DeriveCommand,
		Flags:  DeriveFlags,
	},
	{
		Name:   "search-demo",
		Usage:  "search an index range with a worker pool for a pattern match",
		Action: SearchDemoCommand,
		Flags:  SearchFlags,
	},
	{
		Name:   "verify",
		Usage:  "fully verify a stored proof against a seed and pattern",
		Action: VerifyCommand,
		Flags:  VerifyFlags,
	},
}
