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

package proof

import (
	"encoding/hex"
	"fmt"

	"github.com/vanikeys/core/derivation"
	"github.com/vanikeys/core/pattern"
	"github.com/vanikeys/core/utils/jsonw"
)

// wireProof is the stable, field-order-fixed serialization of a Proof
// (spec.md §6): protocol_tag first, byte fields hex-encoded, integers left as
// plain decimal JSON numbers. The struct's declared field order is its wire
// order — Go's JSON encoder never reorders struct fields, so round-tripping
// through this type is sufficient to satisfy the stability requirement.
type wireProof struct {
	ProtocolTag    string                  `json:"protocol_tag"`
	Index          uint64                  `json:"index"`
	RootPub        string                  `json:"root_pub_hex"`
	ChildPub       string                  `json:"child_pub_hex"`
	DerivationHash string                  `json:"derivation_hash_hex"`
	Fingerprint    string                  `json:"fingerprint"`
	Pattern        wirePattern             `json:"pattern"`
	MatchPositions []pattern.MatchPosition `json:"match_positions"`
}

type wirePattern struct {
	Text          string            `json:"text,omitempty"`
	Substrings    []string          `json:"substrings,omitempty"`
	Mode          pattern.Mode      `json:"mode"`
	Fuzzy         pattern.FuzzyMode `json:"fuzzy,omitempty"`
	CaseSensitive bool              `json:"case_sensitive"`
}

// ToBytes serializes p into its stable wire form.
func ToBytes(p *Proof) ([]byte, error) {
	w := wireProof{
		ProtocolTag:    derivation.ProtocolTag,
		Index:          p.Index,
		RootPub:        hex.EncodeToString(p.RootPub[:]),
		ChildPub:       hex.EncodeToString(p.ChildPub[:]),
		DerivationHash: hex.EncodeToString(p.DerivationHash[:]),
		Fingerprint:    p.Fingerprint,
		Pattern: wirePattern{
			Text:          p.Pattern.Text,
			Substrings:    p.Pattern.Substrings,
			Mode:          p.Pattern.Mode,
			Fuzzy:         p.Pattern.Fuzzy,
			CaseSensitive: p.Pattern.CaseSensitive,
		},
		MatchPositions: p.MatchPositions,
	}
	return jsonw.Marshal(w)
}

// FromBytes parses a proof previously produced by ToBytes.
func FromBytes(b []byte) (*Proof, error) {
	var w wireProof
	if err := jsonw.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("proof: decode: %w", err)
	}
	if w.ProtocolTag != "" && w.ProtocolTag != derivation.ProtocolTag {
		return nil, fmt.Errorf("proof: unknown protocol_tag %q", w.ProtocolTag)
	}

	rootPub, err := decodeFixed32(w.RootPub, "root_pub_hex")
	if err != nil {
		return nil, err
	}
	childPub, err := decodeFixed32(w.ChildPub, "child_pub")
	if err != nil {
		return nil, err
	}
	derivationHash, err := decodeFixed32(w.DerivationHash, "derivation_hash")
	if err != nil {
		return nil, err
	}

	return &Proof{
		Index:          w.Index,
		RootPub:        rootPub,
		ChildPub:       childPub,
		DerivationHash: derivationHash,
		Fingerprint:    w.Fingerprint,
		Pattern: pattern.Spec{
			Text:          w.Pattern.Text,
			Substrings:    w.Pattern.Substrings,
			Mode:          w.Pattern.Mode,
			Fuzzy:         w.Pattern.Fuzzy,
			CaseSensitive: w.Pattern.CaseSensitive,
		},
		MatchPositions: w.MatchPositions,
	}, nil
}

func decodeFixed32(s, field string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("proof: %s: %w", field, err)
	}
	if len(b) != 32 {
		return out, fmt.Errorf("proof: %s: must decode to 32 bytes, got %d", field, len(b))
	}
	copy(out[:], b)
	return out, nil
}
