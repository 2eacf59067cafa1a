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

// Package storage provides the storage abstraction layer for orgdir.
//
// This package defines the CompanyStore interface that decouples the lookup
// and seeding logic from any particular store. BadgerDB (embedded), Redis
// (networked) and an in-memory mock are interchangeable behind it.
//
// # Keys and Prefix Queries
//
// Records are keyed by their normalized name. Stores only need to support
// ordered range queries; "starts with q" is expressed as the half-open range
// returned by PrefixRange:
//
//	lower, upper := storage.PrefixRange("goo")
//	records, err := store.RangeQuery(ctx, lower, upper)
//
// # Usage
//
// Open an embedded store:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	store := badger.NewCompanyRepository(backend)
//
// Use in tests with in-memory storage:
//
//	store, backend, err := badger.NewMemoryCompanyRepository()
//
// # Errors
//
// Transport or availability failures wrap ErrUnavailable so callers can tell
// them apart from bad input with errors.Is.
//
// # Thread Safety
//
// All store implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
