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

// Package fingerprint turns an Ed25519 public key into the SSH wire encoding
// (RFC 4253 §6.6) and the SHA-256 fingerprint string derived from it.
package fingerprint

import (
	"crypto/ed25519"
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

const (
	// KeyType is the SSH algorithm name for Ed25519 public keys.
	KeyType = ssh.KeyAlgoED25519

	// AlgoSha256 names this fingerprint algorithm, following the same naming
	// convention the teacher's utils/fingerprint package uses for its algorithm
	// registry (e.g. "fingerprints:sha256").
	AlgoSha256 = "fingerprints:sha256"

	// bodyLength is the fixed length of the unpadded standard-base64 SHA-256 digest.
	bodyLength = 43

	// Prefix precedes every SHA-256 fingerprint string.
	Prefix = "SHA256:"
)

var ErrInvalidPublicKey = errors.New("fingerprint: public key must be 32 bytes")

// WireBytes encodes pub in the SSH public-key wire format: a length-prefixed
// algorithm name followed by a length-prefixed key blob. golang.org/x/crypto/ssh
// already implements RFC 4253 marshaling faithfully, so wrapping it here keeps
// this package from re-deriving wire-format edge cases by hand.
func WireBytes(pub ed25519.PublicKey) ([]byte, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}
	return sshPub.Marshal(), nil
}

// SSHFingerprint computes "SHA256:" + 43 unpadded base64 characters over the
// SHA-256 digest of pub's SSH wire bytes. Total length is always 50.
func SSHFingerprint(pub ed25519.PublicKey) (string, error) {
	wire, err := WireBytes(pub)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(wire)
	body := base64.StdEncoding.EncodeToString(digest[:])
	body = strings.TrimRight(body, "=")
	return Prefix + body, nil
}

// SearchableView strips the "SHA256:" prefix from a fingerprint, returning the
// 43-character body pattern matching operates on. This keeps patterns from
// spuriously matching the literal prefix text (spec.md §4.2).
func SearchableView(fp string) (string, error) {
	fp = strings.TrimSpace(fp)
	if !strings.HasPrefix(fp, Prefix) {
		return "", fmt.Errorf("fingerprint: missing %q prefix", Prefix)
	}
	body := fp[len(Prefix):]
	if len(body) != bodyLength {
		return "", fmt.Errorf("fingerprint: body must be %d characters, got %d", bodyLength, len(body))
	}
	return body, nil
}

// Equal compares two fingerprints as normalized (whitespace-trimmed) strings.
// Constant-time comparison is not required: fingerprints are public values.
func Equal(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

// LegacyMD5 computes the colon-separated hex MD5 fingerprint of pub's SSH wire
// bytes, for human display only (e.g. "fingerprint -E md5" parity). It is never
// part of an order proof.
func LegacyMD5(pub ed25519.PublicKey) (string, error) {
	wire, err := WireBytes(pub)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(wire) //nolint:gosec // display-only legacy format, not a security boundary
	parts := make([]string, len(sum))
	for i, b := range sum {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, ":"), nil
}

// AuthorizedKeysLine renders an authorized_keys-style line for pub, with an
// optional trailing comment. This is a CLI/display convenience, not part of
// any proof.
func AuthorizedKeysLine(pub ed25519.PublicKey, comment string) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", ErrInvalidPublicKey
	}
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))
	if comment != "" {
		line = line + " " + comment
	}
	return line, nil
}
