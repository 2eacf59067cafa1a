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

package seed

import "errors"

var (
	// ErrStoreRequired is returned when a company store is not provided.
	ErrStoreRequired = errors.New("company store required")

	// ErrDatasetRequired is returned when a dataset is not provided.
	ErrDatasetRequired = errors.New("dataset required")

	// ErrSeederRequired is returned when a guard is created without a seeder.
	ErrSeederRequired = errors.New("seeder required")

	// ErrLockFailed is returned when the seed lock file cannot be acquired.
	ErrLockFailed = errors.New("failed to acquire seed lock")
)
