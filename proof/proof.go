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
Package proof generates and verifies vanity key order proofs: a self-contained
record that lets anyone holding (seed, pattern) check that a given SSH child
key was honestly derived and actually matches what the customer asked for,
without the core ever touching a network or a database.
*/
package proof

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/vanikeys/core/derivation"
	"github.com/vanikeys/core/fingerprint"
	"github.com/vanikeys/core/pattern"
)

// ErrNoMatch is returned by Generate when the derived child's fingerprint
// does not satisfy the requested pattern.
var ErrNoMatch = errors.New("proof: fingerprint does not match pattern")

// Proof is the order-proof record Generate emits. It
// embeds the pattern by value so a verifier never needs a side channel to
// learn what was searched for.
type Proof struct {
	Index          uint64
	RootPub        [32]byte
	ChildPub       [32]byte
	DerivationHash [32]byte
	Fingerprint    string
	Pattern        pattern.Spec
	MatchPositions []pattern.MatchPosition
}

// DerivationHash computes SHA-256(protocol-tag || root-pub || index-be-u32 ||
// child-pub): a commitment, not a signature. Anyone holding (seed, pattern)
// can recompute it; it is not proof of possession of a private key beyond
// what re-deriving the seed already demonstrates.
func DerivationHash(rootPub, childPub [32]byte, index uint64) [32]byte {
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], uint32(index))

	h := sha256.New()
	h.Write([]byte(derivation.ProtocolTag))
	h.Write(rootPub[:])
	h.Write(idxBytes[:])
	h.Write(childPub[:])

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// Generate derives the child keypair at index from seed, checks it against p,
// and emits the resulting Proof. Returns ErrNoMatch (wrapped with the
// fingerprint checked) if the pattern does not match.
func Generate(seed derivation.Seed, index uint64, p *pattern.Pattern) (*Proof, error) {
	root := derivation.SeedToRootKeyPair(seed)
	defer root.Zero()

	child, err := derivation.DeriveChildKeyPair(seed, index)
	if err != nil {
		return nil, fmt.Errorf("proof: derive child: %w", err)
	}
	defer child.Zero()

	fp, err := fingerprint.SSHFingerprint(child.Public)
	if err != nil {
		return nil, fmt.Errorf("proof: fingerprint: %w", err)
	}

	view, err := fingerprint.SearchableView(fp)
	if err != nil {
		return nil, fmt.Errorf("proof: searchable view: %w", err)
	}

	rec, ok := pattern.Match(p, view)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, fp)
	}

	var rootPub, childPub [32]byte
	copy(rootPub[:], root.Public)
	copy(childPub[:], child.Public)

	return &Proof{
		Index:          index,
		RootPub:        rootPub,
		ChildPub:       childPub,
		DerivationHash: DerivationHash(rootPub, childPub, index),
		Fingerprint:    fp,
		Pattern:        specOf(p),
		MatchPositions: rec.Positions,
	}, nil
}

func specOf(p *pattern.Pattern) pattern.Spec {
	return pattern.Spec{
		Text:          p.Text(),
		Substrings:    p.Substrings(),
		Mode:          p.Mode(),
		Fuzzy:         p.Fuzzy(),
		CaseSensitive: p.CaseSensitive(),
	}
}

// VerificationResult is the per-check breakdown spec.md §4.5 requires full
// verification to return. Valid is the conjunction of every check. If the
// child at proof.Index cannot be derived, Verify sets DerivationMismatch and
// returns at once: the hash, fingerprint and pattern checks and their
// mismatch flags are then all left false. The result carries no error value.
type VerificationResult struct {
	RootMatch        bool
	DerivationMatch  bool
	HashMatch        bool
	FingerprintMatch bool
	PatternMatch     bool
	Valid            bool

	RootMismatch        bool
	DerivationMismatch  bool
	TamperedProof       bool
	FingerprintMismatch bool
	PatternMismatch     bool
}

// Verify runs the full verification described in spec.md §4.5: it re-derives
// everything from seed and never trusts any field of proof on its own.
func Verify(proof *Proof, seed derivation.Seed, p *pattern.Pattern) VerificationResult {
	var result VerificationResult

	root := derivation.SeedToRootKeyPair(seed)
	defer root.Zero()

	var rootPub [32]byte
	copy(rootPub[:], root.Public)
	result.RootMatch = rootPub == proof.RootPub
	result.RootMismatch = !result.RootMatch

	childPub, err := derivation.DeriveChildPublicKey(root, proof.Index)
	if err != nil {
		result.DerivationMismatch = true
		return result
	}
	var childPubArr [32]byte
	copy(childPubArr[:], childPub)
	result.DerivationMatch = childPubArr == proof.ChildPub
	result.DerivationMismatch = !result.DerivationMatch

	recomputedHash := DerivationHash(proof.RootPub, proof.ChildPub, proof.Index)
	result.HashMatch = recomputedHash == proof.DerivationHash
	result.TamperedProof = !result.HashMatch

	fp, err := fingerprint.SSHFingerprint(childPub)
	result.FingerprintMatch = err == nil && fingerprint.Equal(fp, proof.Fingerprint)
	result.FingerprintMismatch = !result.FingerprintMatch

	if err == nil {
		if view, verr := fingerprint.SearchableView(fp); verr == nil {
			rec, ok := pattern.Match(p, view)
			result.PatternMatch = ok && positionsEqual(rec.Positions, proof.MatchPositions)
		}
	}
	result.PatternMismatch = !result.PatternMatch

	result.Valid = result.RootMatch && result.DerivationMatch && result.HashMatch &&
		result.FingerprintMatch && result.PatternMatch
	return result
}

func positionsEqual(a, b []pattern.MatchPosition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// PasswordlessResult is the outcome of the informational-only verification
// path spec.md §4.5 describes for displaying orders before the customer
// enters their seed. It MUST NOT gate private-key derivation: callers that
// need to know the key is genuinely derivable from the customer's seed MUST
// call Verify, not this function, immediately before derivation.
type PasswordlessResult struct {
	RootMatch          bool
	PatternMatch       bool
	HashStructureValid bool
	Informational      bool
}

// VerifyPasswordless checks what can be checked without the seed: that the
// proof's root matches the customer's stored root public key, that the
// claimed fingerprint actually satisfies the pattern, and that the
// derivation hash is structurally plausible. It does not and cannot prove
// child_pub was derived from the customer's seed; a dishonest server could
// submit any fingerprint satisfying the pattern under a stolen root_pub.
func VerifyPasswordless(proof *Proof, storedRootPub [32]byte, p *pattern.Pattern) PasswordlessResult {
	result := PasswordlessResult{Informational: true}

	result.RootMatch = proof.RootPub == storedRootPub

	view, err := fingerprint.SearchableView(proof.Fingerprint)
	if err == nil {
		_, ok := pattern.Match(p, view)
		result.PatternMatch = ok
	}

	result.HashStructureValid = isNonZero(proof.DerivationHash[:])

	return result
}

func isNonZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return true
		}
	}
	return false
}
