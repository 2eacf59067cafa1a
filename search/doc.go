// Copyright 2025 Poiesic Systems
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

// Package search resolves partially typed organization names into ranked
// company records.
//
// The Gateway type implements a two-step lookup:
//   - A prefix range query against the remote store
//   - A substring scan of the local dataset when the store has no hit or fails
//
// Whichever result set is used is ordered by the Ranker: exact key match
// first, then key prefix matches, then everything else, with names compared
// alphabetically within each tier.
package search
