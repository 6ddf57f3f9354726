// Copyright 2025 walteh LLC
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

// Package theatre holds the fixed list of DCS theatres a template can be
// duplicated into.
package theatre

// Field is the mission-template key that names the theatre.
const Field = `["theatre"]`

// Extension is the file extension of mission templates.
const Extension = ".stm"

var names = []string{
	"Afghanistan",
	"Caucasus",
	"Channel",
	"Falklands",
	"GermanyCW",
	"Iraq",
	"Kola",
	"MarianaIslands",
	"Nevada",
	"Normandy",
	"PersianGulf",
	"Sinai",
	"Syria",
}

// 🗺️ Names returns the theatres in their canonical order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// 🔍 Valid reports whether name is one of the known theatres.
func Valid(name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
