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

// Package orgdir wires the company directory together: a store, the seed
// dataset, the seeder and the search gateway.
package orgdir

import (
	"log/slog"

	"github.com/poiesic/orgdir/dataset"
	"github.com/poiesic/orgdir/search"
	"github.com/poiesic/orgdir/seed"
	"github.com/poiesic/orgdir/storage"
	"github.com/poiesic/orgdir/storage/badger"
)

type Directory struct {
	backend *badger.Backend // nil when the store was supplied by the caller
	store   storage.CompanyStore
	dataset *dataset.Dataset
	index   *search.Index
	logger  *slog.Logger
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*directoryOptions)

type directoryOptions struct {
	dataset *dataset.Dataset
	logger  *slog.Logger
}

// WithDataset replaces the embedded company dataset.
func WithDataset(ds *dataset.Dataset) DirectoryOption {
	return func(o *directoryOptions) {
		if ds != nil {
			o.dataset = ds
		}
	}
}

// WithLogger sets the logger passed to seeders and gateways.
func WithLogger(logger *slog.Logger) DirectoryOption {
	return func(o *directoryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDirectory opens a badger-backed directory at filePath.
func NewDirectory(filePath string, opts ...DirectoryOption) (*Directory, error) {
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	d := newDirectory(badger.NewCompanyRepository(backend), opts)
	d.backend = backend
	return d, nil
}

// NewDirectoryWithStore builds a directory over an existing store, such as
// a redis store. Close closes the store.
func NewDirectoryWithStore(store storage.CompanyStore, opts ...DirectoryOption) (*Directory, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return newDirectory(store, opts), nil
}

func newDirectory(store storage.CompanyStore, opts []DirectoryOption) *Directory {
	options := &directoryOptions{
		dataset: dataset.Default(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Directory{
		store:   store,
		dataset: options.dataset,
		index:   search.NewIndex(options.dataset),
		logger:  options.logger,
	}
}

func (d *Directory) Close() error {
	if err := d.store.Close(); err != nil {
		d.logger.Error("error closing company store", "err", err)
		return err
	}

	if d.backend != nil {
		if err := d.backend.Close(); err != nil {
			d.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

func (d *Directory) Store() storage.CompanyStore {
	return d.store
}

func (d *Directory) Dataset() *dataset.Dataset {
	return d.dataset
}

// NewSeeder creates a seeder over the directory's store and dataset.
// The caller releases it.
func (d *Directory) NewSeeder(opts ...seed.Option) (*seed.Seeder, error) {
	opts = append([]seed.Option{seed.WithLogger(d.logger)}, opts...)
	return seed.NewSeeder(d.store, d.dataset, opts...)
}

// NewGateway creates a search gateway. All gateways share one local index.
func (d *Directory) NewGateway(opts ...search.Option) (*search.Gateway, error) {
	opts = append([]search.Option{search.WithLogger(d.logger)}, opts...)
	return search.NewGateway(d.store, d.index, opts...)
}
