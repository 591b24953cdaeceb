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

package fingerprint

import (
	"crypto/ed25519"
	"errors"

	"github.com/mikesmitty/edkey"
)

// PrivateKeyPEM renders priv as a PEM-encoded OpenSSH private key block, for a
// customer exporting a winning key out of the CLI. This never touches the
// order-proof path; the core never serializes private key material (spec.md §4.1).
func PrivateKeyPEM(priv ed25519.PrivateKey) ([]byte, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, errors.New("fingerprint: private key must be 64 bytes")
	}
	return edkey.MarshalED25519PrivateKey(priv), nil
}
