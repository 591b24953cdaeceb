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

package proof_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanikeys/core/derivation"
	"github.com/vanikeys/core/pattern"
	"github.com/vanikeys/core/proof"
)

func mustSeed(t *testing.T, b byte) derivation.Seed {
	t.Helper()
	var raw [32]byte
	for i := range raw {
		raw[i] = b
	}
	seed, err := derivation.SeedFromBytes(raw[:])
	require.NoError(t, err)
	return seed
}

// findMatchingIndex brute-forces a small index range for a pattern loose
// enough to hit quickly, keeping the test deterministic and fast.
func findMatchingIndex(t *testing.T, seed derivation.Seed, p *pattern.Pattern) (uint64, *proof.Proof) {
	t.Helper()
	for i := uint64(0); i < 5000; i++ {
		pr, err := proof.Generate(seed, i, p)
		if err == nil {
			return i, pr
		}
	}
	t.Fatal("no matching index found in search range")
	return 0, nil
}

func TestGenerate_ProducesVerifiableProof(t *testing.T) {
	seed := mustSeed(t, 0x42)
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "a"})
	require.NoError(t, err)

	_, pr := findMatchingIndex(t, seed, p)

	result := proof.Verify(pr, seed, p)
	assert.True(t, result.Valid)
	assert.True(t, result.RootMatch)
	assert.True(t, result.DerivationMatch)
	assert.True(t, result.HashMatch)
	assert.True(t, result.FingerprintMatch)
	assert.True(t, result.PatternMatch)
}

// S2 from spec.md §8: with the all-zero seed, a case-insensitive "contains
// a" pattern matches within the first 100 indices.
func TestGenerate_GoldenVector_ZeroSeedMatchesWithin100(t *testing.T) {
	var zeroSeed derivation.Seed
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "a"})
	require.NoError(t, err)

	for i := uint64(0); i <= 100; i++ {
		pr, err := proof.Generate(zeroSeed, i, p)
		if err == nil {
			result := proof.Verify(pr, zeroSeed, p)
			assert.True(t, result.Valid)
			return
		}
	}
	t.Fatal("expected a match within the first 100 indices of the all-zero seed")
}

func TestGenerate_NoMatchFails(t *testing.T) {
	seed := mustSeed(t, 0x01)
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModePrefix, Text: "zzzzzzzzzzzzzzzzzzzz", CaseSensitive: true})
	require.NoError(t, err)

	_, err = proof.Generate(seed, 0, p)
	assert.ErrorIs(t, err, proof.ErrNoMatch)
}

// S5 from spec.md §8: flipping a bit in child_pub_hex must be caught as a
// tampered proof, with both DerivationMismatch and TamperedProof set.
func TestVerify_TamperedChildPub(t *testing.T) {
	seed := mustSeed(t, 0x42)
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "a"})
	require.NoError(t, err)

	_, pr := findMatchingIndex(t, seed, p)

	tampered := *pr
	tampered.ChildPub[0] ^= 0x01

	result := proof.Verify(&tampered, seed, p)
	assert.False(t, result.Valid)
	assert.True(t, result.DerivationMismatch)
	assert.True(t, result.TamperedProof)
}

func TestVerify_WrongSeedIsRootMismatch(t *testing.T) {
	seed := mustSeed(t, 0x42)
	other := mustSeed(t, 0x43)
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "a"})
	require.NoError(t, err)

	_, pr := findMatchingIndex(t, seed, p)

	result := proof.Verify(pr, other, p)
	assert.False(t, result.Valid)
	assert.True(t, result.RootMismatch)
}

func TestVerify_TamperedMatchPositionsIsPatternMismatch(t *testing.T) {
	seed := mustSeed(t, 0x42)
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "a"})
	require.NoError(t, err)

	_, pr := findMatchingIndex(t, seed, p)

	tampered := *pr
	tampered.MatchPositions = append([]pattern.MatchPosition(nil), pr.MatchPositions...)
	tampered.MatchPositions[0].Start += 1
	tampered.MatchPositions[0].End += 1

	result := proof.Verify(&tampered, seed, p)
	assert.False(t, result.Valid)
	assert.True(t, result.PatternMismatch)
}

func TestVerifyPasswordless_IsInformationalOnly(t *testing.T) {
	seed := mustSeed(t, 0x42)
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "a"})
	require.NoError(t, err)

	_, pr := findMatchingIndex(t, seed, p)

	result := proof.VerifyPasswordless(pr, pr.RootPub, p)
	assert.True(t, result.Informational)
	assert.True(t, result.RootMatch)
	assert.True(t, result.PatternMatch)
	assert.True(t, result.HashStructureValid)
}

func TestVerifyPasswordless_CannotDetectForgedChildPub(t *testing.T) {
	seed := mustSeed(t, 0x42)
	p, err := pattern.Compile(pattern.Spec{Mode: pattern.ModeContains, Text: "a"})
	require.NoError(t, err)

	_, pr := findMatchingIndex(t, seed, p)

	forged := *pr
	forged.ChildPub[0] ^= 0xFF

	// The passwordless path cannot catch this: it never re-derives anything.
	result := proof.VerifyPasswordless(&forged, pr.RootPub, p)
	assert.True(t, result.RootMatch)
	assert.True(t, result.PatternMatch)
}

func TestProofSerialization_RoundTrips(t *testing.T) {
	seed := mustSeed(t, 0x42)
	p, err := pattern.Compile(pattern.Spec{
		Mode:       pattern.ModeMultiSubstring,
		Substrings: []string{"a", "b"},
	})
	require.NoError(t, err)

	_, pr := findMatchingIndex(t, seed, p)

	b, err := proof.ToBytes(pr)
	require.NoError(t, err)

	decoded, err := proof.FromBytes(b)
	require.NoError(t, err)

	assert.Equal(t, pr, decoded)
}

func TestProofSerialization_RejectsShortHexField(t *testing.T) {
	_, err := proof.FromBytes([]byte(`{"index":0,"root_pub_hex":"ab","child_pub_hex":"","derivation_hash_hex":"","fingerprint":"","pattern":{"mode":"contains","case_sensitive":false},"match_positions":[]}`))
	assert.Error(t, err)
}

func TestProofSerialization_RejectsUnknownProtocolTag(t *testing.T) {
	_, err := proof.FromBytes([]byte(`{"protocol_tag":"vanikeys-ssh-v2","index":0,` +
		`"root_pub_hex":"` + hex32 + `","child_pub_hex":"` + hex32 + `","derivation_hash_hex":"` + hex32 + `",` +
		`"fingerprint":"","pattern":{"mode":"contains","case_sensitive":false},"match_positions":[]}`))
	assert.Error(t, err)
}

const hex32 = "0000000000000000000000000000000000000000000000000000000000000000"

func TestDerivationHash_DomainSeparatedFromIndex(t *testing.T) {
	var root, child [32]byte
	h0 := proof.DerivationHash(root, child, 0)
	h1 := proof.DerivationHash(root, child, 1)
	assert.NotEqual(t, h0, h1)
}
