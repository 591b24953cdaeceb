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

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/urfave/cli/v2"

	"github.com/vanikeys/core/derivation"
	"github.com/vanikeys/core/fingerprint"
)

var DeriveFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "seed",
		Usage: "seed as 64 hex characters (prompted if omitted)",
	},
	&cli.Uint64Flag{
		Name:  "index",
		Value: 0,
		Usage: "child index to derive",
	},
	&cli.BoolFlag{
		Name:  "export-pem",
		Usage: "also print the OpenSSH private key PEM block",
	},
	&cli.StringFlag{
		Name:  "comment",
		Usage: "comment to attach to the authorized_keys line",
	},
}

// DeriveCommand derives a single child keypair and prints its fingerprint,
// authorized_keys line, and legacy MD5 fingerprint. With --export-pem it
// also prints the private key; treat that output as sensitive.
func DeriveCommand(c *cli.Context) error {
	seed, err := ReadSeedHex(c.String("seed"))
	if err != nil {
		return err
	}
	defer seed.Zero()

	index := c.Uint64("index")

	child, err := derivation.DeriveChildKeyPair(seed, index)
	if err != nil {
		return cli.Exit(err.Error(), InvalidParameter)
	}
	defer child.Zero()

	fp, err := fingerprint.SSHFingerprint(child.Public)
	if err != nil {
		return cli.Exit(err.Error(), OperationFailed)
	}

	authLine, err := fingerprint.AuthorizedKeysLine(child.Public, c.String("comment"))
	if err != nil {
		return cli.Exit(err.Error(), OperationFailed)
	}

	legacyMD5, err := fingerprint.LegacyMD5(child.Public)
	if err != nil {
		return cli.Exit(err.Error(), OperationFailed)
	}

	fmt.Printf("index:       %d\n", index)
	fmt.Printf("fingerprint: %s\n", fp)
	fmt.Printf("legacy md5:  %s\n", legacyMD5)
	fmt.Printf("public key:  %s\n", authLine)
	fmt.Printf("pubkey b58:  %s\n", base58.Encode(child.Public))

	if c.Bool("export-pem") {
		pemBytes, err := fingerprint.PrivateKeyPEM(child.Private)
		if err != nil {
			return cli.Exit(err.Error(), OperationFailed)
		}
		fmt.Println(string(pemBytes))
	}

	return nil
}
