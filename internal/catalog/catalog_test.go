package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nardo/usecase-tracker/internal/catalog"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	require.NoError(t, c.Validate(), "Default catalog should be valid")
	require.Equal(t, []string{"Rolling Mean", "Rolling Std Deviation", "Autocorrelation"}, c.AnalysisTypes)
	require.Len(t, c.Sources, 5, "Default catalog should carry the five source tags")
	require.Len(t, c.Authors, 5, "Default catalog should carry the five authors")
	require.Equal(t, catalog.FallbackAuthor, c.FallbackAuthor)

	// Mutating a returned catalog must not leak into the next one.
	c.AnalysisTypes[0] = "Changed"
	require.Equal(t, "Rolling Mean", catalog.Default().AnalysisTypes[0], "Default should return fresh lists")
}

func TestAuthor(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	require.Equal(t, "Emily Johnson", c.Author(0))
	require.Equal(t, "Olivia Bennett", c.Author(4))
	require.Equal(t, catalog.FallbackAuthor, c.Author(5), "Out of range index should use the fallback")
	require.Equal(t, catalog.FallbackAuthor, c.Author(-1), "Negative index should use the fallback")

	c.Authors = nil
	require.Equal(t, catalog.FallbackAuthor, c.Author(0), "Empty roster should use the fallback")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		fileName string
		content  string
		noFile   bool

		wantAnalysisTypes []string
		wantSources       []string
		wantAuthors       []string
		wantFallback      string
		wantErr           bool
	}{
		"Empty path uses defaults": {
			noFile:            true,
			wantAnalysisTypes: catalog.Default().AnalysisTypes,
			wantSources:       catalog.Default().Sources,
			wantAuthors:       catalog.Default().Authors,
			wantFallback:      catalog.FallbackAuthor,
		},
		"YAML override": {
			fileName: "catalog.yaml",
			content: `analysisTypes: ["Spectral Density", "Rolling Mean"]
sources: ["TAG-00001"]
`,
			wantAnalysisTypes: []string{"Spectral Density", "Rolling Mean"},
			wantSources:       []string{"TAG-00001"},
			wantAuthors:       catalog.Default().Authors,
			wantFallback:      catalog.FallbackAuthor,
		},
		"YML extension": {
			fileName:          "catalog.yml",
			content:           "fallbackAuthor: John Smith\n",
			wantAnalysisTypes: catalog.Default().AnalysisTypes,
			wantSources:       catalog.Default().Sources,
			wantAuthors:       catalog.Default().Authors,
			wantFallback:      "John Smith",
		},
		"YAML empty roster": {
			fileName:          "catalog.yaml",
			content:           "authors: []\n",
			wantAnalysisTypes: catalog.Default().AnalysisTypes,
			wantSources:       catalog.Default().Sources,
			wantAuthors:       []string{},
			wantFallback:      catalog.FallbackAuthor,
		},
		"Empty YAML file": {
			fileName:          "catalog.yaml",
			content:           "",
			wantAnalysisTypes: catalog.Default().AnalysisTypes,
			wantSources:       catalog.Default().Sources,
			wantAuthors:       catalog.Default().Authors,
			wantFallback:      catalog.FallbackAuthor,
		},
		"TOML override": {
			fileName: "catalog.toml",
			content: `analysis_types = ["Autocorrelation"]
authors = ["Ada Lovelace", "Alan Turing"]
fallback_author = "Grace Hopper"
`,
			wantAnalysisTypes: []string{"Autocorrelation"},
			wantSources:       catalog.Default().Sources,
			wantAuthors:       []string{"Ada Lovelace", "Alan Turing"},
			wantFallback:      "Grace Hopper",
		},

		// Error cases
		"Duplicate analysis types": {
			fileName: "catalog.yaml",
			content:  `analysisTypes: ["Rolling Mean", "Rolling Mean"]`,
			wantErr:  true,
		},
		"Empty sources": {
			fileName: "catalog.yaml",
			content:  "sources: []\n",
			wantErr:  true,
		},
		"Blank entry": {
			fileName: "catalog.toml",
			content:  `sources = ["TAG-1", ""]`,
			wantErr:  true,
		},
		"Invalid YAML": {
			fileName: "catalog.yaml",
			content:  "analysisTypes: [unterminated",
			wantErr:  true,
		},
		"Invalid TOML": {
			fileName: "catalog.toml",
			content:  "analysis_types = ",
			wantErr:  true,
		},
		"Unsupported extension": {
			fileName: "catalog.ini",
			content:  "analysisTypes=Rolling Mean",
			wantErr:  true,
		},
		"Missing file": {
			fileName: "missing.yaml",
			wantErr:  true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := ""
			if !tc.noFile {
				path = filepath.Join(t.TempDir(), tc.fileName)
				if tc.fileName != "missing.yaml" {
					require.NoError(t, os.WriteFile(path, []byte(tc.content), 0600), "Setup: failed to write catalog file")
				}
			}

			got, err := catalog.Load(path)
			if tc.wantErr {
				require.Error(t, err, "Load should return an error")
				return
			}
			require.NoError(t, err, "Load should not return an error")

			require.Equal(t, tc.wantAnalysisTypes, got.AnalysisTypes)
			require.Equal(t, tc.wantSources, got.Sources)
			require.Equal(t, tc.wantAuthors, got.Authors)
			require.Equal(t, tc.wantFallback, got.FallbackAuthor)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := catalog.Load(filepath.Join(t.TempDir(), "catalog.xml"))
	require.ErrorIs(t, err, catalog.ErrUnsupportedFormat, "Load should report unsupported formats")
}
