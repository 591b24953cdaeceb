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

// Package zero overwrites secret byte slices in place so key material
// doesn't linger in memory after its owning scope is done with it.
package zero

// Bytes overwrites b with zeroes. It does nothing to copies already taken
// before the call; callers must avoid retaining those.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
