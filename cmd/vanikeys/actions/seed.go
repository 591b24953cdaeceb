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
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/vanikeys/core/derivation"
	"github.com/vanikeys/core/seedphrase"
)

// GenerateSeedCommand creates a fresh random seed and prints it as hex and
// as a 24-word mnemonic. Nothing is written to disk: storage is the
// caller's responsibility.
func GenerateSeedCommand(c *cli.Context) error {
	seed, err := derivation.GenerateSeed()
	if err != nil {
		return cli.Exit(err.Error(), OperationFailed)
	}
	defer seed.Zero()

	mnemonic, err := seedphrase.Encode(seed)
	if err != nil {
		return cli.Exit(err.Error(), OperationFailed)
	}

	fmt.Printf("seed (hex):     %s\n", hex.EncodeToString(seed[:]))
	fmt.Printf("seed (mnemonic): %s\n", mnemonic)
	log.Warn().Msg("this seed is shown once; store it securely before closing this terminal")

	return nil
}

// MnemonicToHexCommand converts a 24-word mnemonic back into hex, for
// customers restoring a seed they wrote down on paper.
func MnemonicToHexCommand(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return cli.Exit("please supply the mnemonic as a single quoted argument", InvalidParameter)
	}
	mnemonic := c.Args().Get(0)

	seed, err := seedphrase.Decode(mnemonic)
	if err != nil {
		return cli.Exit(err.Error(), InvalidParameter)
	}
	defer seed.Zero()

	fmt.Println(hex.EncodeToString(seed[:]))
	return nil
}
