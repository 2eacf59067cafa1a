package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/orgdir/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	ds := Default()
	require.NotNil(t, ds)
	assert.Equal(t, 84, ds.Len())

	records := ds.Records()
	assert.Equal(t, "Google", records[0].Name)
	assert.Equal(t, "google", records[0].NormalizedName)

	seen := make(map[string]bool)
	for _, r := range records {
		require.NoError(t, core.ValidateCompanyRecord(r))
		assert.False(t, seen[r.NormalizedName], "duplicate %q", r.NormalizedName)
		seen[r.NormalizedName] = true
		assert.True(t, r.CreatedAt.IsZero())
	}

	assert.True(t, seen["bank of america"])
	assert.True(t, seen["hp inc."])
	assert.Same(t, ds, Default())
}

func TestNew(t *testing.T) {
	t.Run("fills normalized name", func(t *testing.T) {
		ds, err := New(core.CompanyRecord{Name: "Bank of America"})
		require.NoError(t, err)
		assert.Equal(t, "bank of america", ds.Records()[0].NormalizedName)
	})

	t.Run("preserves order", func(t *testing.T) {
		ds, err := New(
			core.CompanyRecord{Name: "Zoom"},
			core.CompanyRecord{Name: "Apple"},
			core.CompanyRecord{Name: "Meta"},
		)
		require.NoError(t, err)
		var names []string
		for r := range ds.All() {
			names = append(names, r.Name)
		}
		assert.Equal(t, []string{"Zoom", "Apple", "Meta"}, names)
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := New(core.CompanyRecord{Name: "Intel"}, core.CompanyRecord{Name: "INTEL"})
		assert.True(t, errors.Is(err, ErrDuplicateName))
	})

	t.Run("invalid record", func(t *testing.T) {
		_, err := New(core.CompanyRecord{Name: "HP Inc.", NormalizedName: "hp"})
		assert.True(t, errors.Is(err, core.ErrNormalizedNameMismatch))
	})

	t.Run("empty dataset is allowed", func(t *testing.T) {
		ds, err := New()
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
	})
}

func TestDataset_Immutable(t *testing.T) {
	ds, err := New(core.CompanyRecord{Name: "Google", Industry: "Technology"})
	require.NoError(t, err)

	for r := range ds.All() {
		r.Industry = "changed"
	}
	ds.Records()[0].Name = "changed"

	r := ds.Records()[0]
	assert.Equal(t, "Google", r.Name)
	assert.Equal(t, "Technology", r.Industry)
}

func TestDataset_AllStopsEarly(t *testing.T) {
	ds := Default()
	n := 0
	for range ds.All() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		src := `
companies:
  - name: "Acme Corp"
    industry: "Manufacturing"
    employee_size: "1k+"
  - name: "Globex"
    normalized_name: "globex"
    logo_url: "https://example.com/globex.svg"
`
		ds, err := Load(strings.NewReader(src))
		require.NoError(t, err)
		require.Equal(t, 2, ds.Len())
		records := ds.Records()
		assert.Equal(t, "acme corp", records[0].NormalizedName)
		assert.Equal(t, "1k+", records[0].EmployeeSize)
		assert.Equal(t, "https://example.com/globex.svg", records[1].LogoURL)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := Load(strings.NewReader(""))
		assert.True(t, errors.Is(err, ErrEmptyDataset))
	})

	t.Run("no companies", func(t *testing.T) {
		_, err := Load(strings.NewReader("companies: []\n"))
		assert.True(t, errors.Is(err, ErrEmptyDataset))
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(strings.NewReader("companies:\n  - name: Acme\n    ceo: Wile\n"))
		assert.True(t, errors.Is(err, ErrInvalidDataset))
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companies:\n  - name: Initech\n"), 0644))

	ds, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
