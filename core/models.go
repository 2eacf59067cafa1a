package core

//go:generate go run ../cmd/musgen

import (
	"strings"
	"time"
)

// CompanyRecord is a single organization in the directory.
// NormalizedName is the unique key shared by the seed dataset and the store.
type CompanyRecord struct {
	Name           string    `yaml:"name" json:"name"`
	NormalizedName string    `yaml:"normalized_name" json:"normalizedName"`
	Industry       string    `yaml:"industry,omitempty" json:"industry,omitempty"`
	EmployeeSize   string    `yaml:"employee_size,omitempty" json:"employeeSize,omitempty"`
	LogoURL        string    `yaml:"logo_url,omitempty" json:"logoURL,omitempty"`
	CreatedAt      time.Time `yaml:"-" json:"createdAt"` // Set when the record is written or scanned
	UpdatedAt      time.Time `yaml:"-" json:"updatedAt"`
}

// NormalizeName returns the canonical key for a display name.
// It lower-cases and does nothing else: whitespace and diacritics are kept.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}

// Clone returns a copy of the record.
func (r *CompanyRecord) Clone() *CompanyRecord {
	c := *r
	return &c
}

// Stamp sets both timestamps to t.
func (r *CompanyRecord) Stamp(t time.Time) {
	r.CreatedAt = t
	r.UpdatedAt = t
}
