// Package dataset holds the static company dataset used to seed the store
// and to answer lookups locally when the store has nothing to offer.
package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"iter"
	"os"
	"sync"

	"github.com/poiesic/orgdir/core"
	"gopkg.in/yaml.v3"
)

//go:embed companies.yaml
var defaultCompanies []byte

// Dataset is an immutable, ordered sequence of company records.
// It is safe for concurrent use.
type Dataset struct {
	records []core.CompanyRecord
}

// file is the on-disk YAML layout.
type file struct {
	Companies []core.CompanyRecord `yaml:"companies"`
}

// New builds a dataset from records, preserving their order.
// An empty NormalizedName is filled in from Name. Every record must pass
// core.ValidateCompanyRecord and normalized names must be unique.
func New(records ...core.CompanyRecord) (*Dataset, error) {
	seen := make(map[string]int, len(records))
	out := make([]core.CompanyRecord, 0, len(records))
	for i, r := range records {
		if r.NormalizedName == "" {
			r.NormalizedName = core.NormalizeName(r.Name)
		}
		if err := core.ValidateCompanyRecord(&r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if prev, ok := seen[r.NormalizedName]; ok {
			return nil, fmt.Errorf("%w: %q at records %d and %d", ErrDuplicateName, r.NormalizedName, prev, i)
		}
		seen[r.NormalizedName] = i
		out = append(out, r)
	}
	return &Dataset{records: out}, nil
}

// Load reads a YAML dataset with a top-level "companies" list.
func Load(r io.Reader) (*Dataset, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	if len(f.Companies) == 0 {
		return nil, ErrEmptyDataset
	}
	return New(f.Companies...)
}

// LoadFile reads a YAML dataset from path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

var loadDefault = sync.OnceValues(func() (*Dataset, error) {
	return Load(bytes.NewReader(defaultCompanies))
})

// Default returns the built-in dataset of well-known companies.
// It panics if the embedded data is invalid, which is a build defect.
func Default() *Dataset {
	ds, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded companies are invalid: %v", err))
	}
	return ds
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// All returns an iterator over copies of the records in dataset order.
func (d *Dataset) All() iter.Seq[*core.CompanyRecord] {
	return func(yield func(*core.CompanyRecord) bool) {
		for i := range d.records {
			if !yield(d.records[i].Clone()) {
				return
			}
		}
	}
}

// Records returns copies of all records in dataset order.
func (d *Dataset) Records() []*core.CompanyRecord {
	out := make([]*core.CompanyRecord, len(d.records))
	for i := range d.records {
		out[i] = d.records[i].Clone()
	}
	return out
}
