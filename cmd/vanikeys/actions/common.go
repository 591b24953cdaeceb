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
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/vanikeys/core/derivation"
)

const (
	InvalidParameter = 1
	OperationFailed  = 2
	NoMatchFound     = 3

	VanikeysVersion = "0.1.0"
)

// ReadCredential returns val if set, otherwise prompts on stderr and reads a
// line (masked, if requested) from stdin. Grounded on the same pattern the
// account CLI uses for passwords and API secrets.
func ReadCredential(val, prompt string, mask bool) string {
	if val != "" {
		return val
	}

	fmt.Fprint(os.Stderr, prompt)

	if mask {
		byteVal, err := term.ReadPassword(syscall.Stdin)
		if err != nil {
			panic("error when reading seed")
		}
		val = string(byteVal)
	} else {
		reader := bufio.NewReader(os.Stdin)
		val, _ = reader.ReadString('\n')
	}

	fmt.Fprintln(os.Stderr)

	return strings.TrimSpace(val)
}

// ReadSeedHex reads a 32-byte seed encoded as 64 hex characters, either from
// the given flag value or interactively if empty.
func ReadSeedHex(val string) (derivation.Seed, error) {
	hexSeed := ReadCredential(val, "Enter seed (hex): ", true)
	raw, err := hex.DecodeString(hexSeed)
	if err != nil {
		return derivation.Seed{}, cli.Exit(fmt.Sprintf("invalid seed hex: %v", err), InvalidParameter)
	}
	seed, err := derivation.SeedFromBytes(raw)
	if err != nil {
		return derivation.Seed{}, cli.Exit(err.Error(), InvalidParameter)
	}
	return seed, nil
}
