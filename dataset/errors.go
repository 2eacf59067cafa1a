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

package dataset

import "errors"

var (
	// ErrDuplicateName is returned when two records share a normalized name.
	ErrDuplicateName = errors.New("duplicate normalized name")

	// ErrEmptyDataset is returned when a dataset file has no companies.
	ErrEmptyDataset = errors.New("dataset has no companies")

	// ErrInvalidDataset is returned when a dataset file cannot be parsed.
	ErrInvalidDataset = errors.New("invalid dataset")
)
