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
Package derivation implements the HD-in-name-only key derivation described by the
vanikeys protocol: a customer seed plus an index deterministically produce a child
Ed25519 keypair. There is no chain-code hierarchy and no hardened/unhardened split as
in BIP-32/SLIP-10 — every index in [0, 2^32) derives directly from the seed and the
root public key, one level deep.
*/
package derivation

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha512"
	"encoding/binary"
	"errors"

	"github.com/vanikeys/core/internal/zero"
)

const (
	// ProtocolTag domain-separates every hash in this protocol from any other use
	// of SHA-512 over similarly-shaped inputs. It is a permanent part of the proof
	// contract: changing it defines a new, non-interoperable protocol version.
	ProtocolTag = "vanikeys-ssh-v1"

	// SeedSize is the only accepted length for a master seed.
	SeedSize = 32

	// MaxIndex is the largest valid child index (2^32 - 1); the full uint32 range
	// is usable, there are no forbidden or hardened indices.
	MaxIndex = uint64(1<<32 - 1)
)

var (
	// ErrInvalidSeed is returned when a seed is not exactly SeedSize bytes.
	ErrInvalidSeed = errors.New("derivation: seed must be exactly 32 bytes")

	// ErrInvalidIndex is returned when an index falls outside [0, 2^32).
	ErrInvalidIndex = errors.New("derivation: index must be in [0, 2^32)")

	// ErrSeedGenerationFailed wraps an RNG failure during GenerateSeed. This is
	// the only fatal condition at the library level (spec.md §7).
	ErrSeedGenerationFailed = errors.New("derivation: seed generation failed")
)

// Seed is a 32-byte customer secret. It is the sole input from which the whole
// key tree for a customer is derived, and it is never transmitted.
type Seed [SeedSize]byte

// Validate checks s has the required length. Seed is a fixed-size array so this
// can never fail in Go, but it exists to mirror the abstract interface in
// spec.md §6 and to give callers constructing a Seed from a byte slice somewhere
// to route the length check through.
func (s Seed) Validate() error {
	return nil
}

// Zero overwrites the seed's bytes in place.
func (s *Seed) Zero() {
	zero.Bytes(s[:])
}

// SeedFromBytes validates and wraps a raw byte slice as a Seed.
func SeedFromBytes(b []byte) (Seed, error) {
	var s Seed
	if len(b) != SeedSize {
		return s, ErrInvalidSeed
	}
	copy(s[:], b)
	return s, nil
}

// GenerateSeed samples a new 32-byte seed from a cryptographic RNG.
func GenerateSeed() (Seed, error) {
	var s Seed
	if _, err := rand.Read(s[:]); err != nil {
		return Seed{}, errors.Join(ErrSeedGenerationFailed, err)
	}
	return s, nil
}

// KeyPair is an Ed25519 keypair: a 64-byte ed25519.PrivateKey (the 32-byte
// private seed followed by the public key) and its 32-byte compressed public
// point. Private may be nil for a public-only view
// (e.g. the root keypair a search server is given).
type KeyPair struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// Zero wipes the private key bytes, if present.
func (kp *KeyPair) Zero() {
	if kp.Private != nil {
		zero.Bytes(kp.Private)
	}
}

// SeedToRootKeyPair derives the root Ed25519 keypair from a seed. The seed is used
// directly as the Ed25519 private-key seed (expand with SHA-512, clamp, scalar-multiply
// the base point), per the IETF Ed25519 keygen spec — this interpretation is what the
// protocol tag commits to (spec.md §9).
func SeedToRootKeyPair(seed Seed) KeyPair {
	priv := ed25519.NewKeyFromSeed(seed[:])
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv[ed25519.PublicKeySize:])
	return KeyPair{Public: pub, Private: priv}
}

// childSeed computes the full 64-byte SHA-512(tag || root_pub || index_be_u32).
// Callers use only the first 32 bytes, as the child's Ed25519 seed; the remaining
// 32 bytes are discarded: this is not a chain code, there is no further hierarchy,
// only root -> leaf.
func childSeed(rootPub ed25519.PublicKey, index uint32) [64]byte {
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], index)

	h := sha512.New()
	h.Write([]byte(ProtocolTag))
	h.Write(rootPub)
	h.Write(idxBytes[:])

	var sum [64]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// DeriveChildKeyPair derives the Ed25519 keypair at index i for the given seed.
// Determinism and sibling independence follow directly from SHA-512 preimage
// resistance and Ed25519 hardness: recovering child j reveals nothing about
// child k != j beyond what the public root already reveals.
func DeriveChildKeyPair(seed Seed, index uint64) (KeyPair, error) {
	if index > MaxIndex {
		return KeyPair{}, ErrInvalidIndex
	}

	root := SeedToRootKeyPair(seed)
	defer root.Zero()

	sum := childSeed(root.Public, uint32(index))
	defer zero.Bytes(sum[:])

	priv := ed25519.NewKeyFromSeed(sum[:32])
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv[ed25519.PublicKeySize:])

	return KeyPair{Public: pub, Private: priv}, nil
}

// DeriveChildPublicKey is DeriveChildKeyPair's public-only counterpart, for a
// caller that already has the root keypair in hand (e.g. immediately after
// SeedToRootKeyPair) and only wants the child's public bytes without
// re-deriving and re-zeroing the root. It reads only root.Public;
// root.Private is not used and may be nil.
func DeriveChildPublicKey(root KeyPair, index uint64) (ed25519.PublicKey, error) {
	if index > MaxIndex {
		return nil, ErrInvalidIndex
	}

	sum := childSeed(root.Public, uint32(index))
	defer zero.Bytes(sum[:])

	priv := ed25519.NewKeyFromSeed(sum[:32])
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv[ed25519.PublicKeySize:])
	zero.Bytes(priv)

	return pub, nil
}
