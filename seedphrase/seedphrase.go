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
Package seedphrase renders a 32-byte vanikeys seed as a BIP-39 mnemonic and
back, so a customer can write their seed down on paper instead of a raw hex
blob. This is a display/backup convenience only: the mnemonic's entropy IS
the seed bytes, not a passphrase-derived key — Decode recovers the exact
seed Encode was given, bit for bit.
*/
package seedphrase

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
	"github.com/vanikeys/core/derivation"
)

// Encode renders seed as a 24-word BIP-39 mnemonic over its raw 32 bytes of
// entropy (32 bytes of entropy maps to 24 words at the standard checksum
// ratio).
func Encode(seed derivation.Seed) (string, error) {
	mnemonic, err := bip39.NewMnemonic(seed[:])
	if err != nil {
		return "", fmt.Errorf("seedphrase: encode: %w", err)
	}
	return mnemonic, nil
}

// Decode recovers the exact seed bytes a mnemonic previously produced by
// Encode was built from. It rejects a mnemonic whose checksum doesn't
// validate or whose entropy isn't exactly derivation.SeedSize bytes.
func Decode(mnemonic string) (derivation.Seed, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return derivation.Seed{}, fmt.Errorf("seedphrase: invalid mnemonic")
	}
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return derivation.Seed{}, fmt.Errorf("seedphrase: decode: %w", err)
	}
	return derivation.SeedFromBytes(entropy)
}
