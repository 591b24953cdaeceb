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
	"os"

	"github.com/urfave/cli/v2"

	"github.com/vanikeys/core/proof"
	"github.com/vanikeys/core/utils/jsonw"
)

var VerifyFlags = append(append([]cli.Flag{}, PatternFlags...),
	&cli.StringFlag{
		Name:     "proof-file",
		Required: true,
		Usage:    "path to a proof previously written by search-demo",
	},
)

// VerifyCommand re-derives everything from the supplied seed and checks it
// against a stored proof. This is the full verification path spec.md §4.5
// requires to run immediately before any private-key derivation a caller
// intends to rely on.
func VerifyCommand(c *cli.Context) error {
	seed, err := ReadSeedHex(c.String("seed"))
	if err != nil {
		return err
	}
	defer seed.Zero()

	p, err := PatternFromContext(c)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(c.String("proof-file"))
	if err != nil {
		return cli.Exit(err.Error(), InvalidParameter)
	}
	pr, err := proof.FromBytes(raw)
	if err != nil {
		return cli.Exit(err.Error(), InvalidParameter)
	}

	result := proof.Verify(pr, seed, p)

	out, err := jsonw.MarshalIndent(result, "", "  ")
	if err != nil {
		return cli.Exit(err.Error(), OperationFailed)
	}
	fmt.Println(string(out))

	if !result.Valid {
		return cli.Exit("proof did not verify", OperationFailed)
	}
	return nil
}
