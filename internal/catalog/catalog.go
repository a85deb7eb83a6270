// Package catalog holds the candidate lists fixture records are sampled from.
// The built-in lists can be overridden, field by field, by a YAML or TOML file.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/ubuntu/decorate"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when a catalog file extension is not recognized.
var ErrUnsupportedFormat = errors.New("unsupported catalog file format")

// FallbackAuthor is used when the author roster is empty.
const FallbackAuthor = "Jane Doe"

// Catalog is the set of candidate values for fixture records.
type Catalog struct {
	AnalysisTypes  []string `yaml:"analysisTypes" toml:"analysis_types" validate:"min=1,unique,dive,required"`
	Sources        []string `yaml:"sources" toml:"sources" validate:"min=1,unique,dive,required"`
	Authors        []string `yaml:"authors" toml:"authors" validate:"unique,dive,required"`
	FallbackAuthor string   `yaml:"fallbackAuthor" toml:"fallback_author" validate:"required"`
}

var (
	defaultAnalysisTypes = []string{
		"Rolling Mean",
		"Rolling Std Deviation",
		"Autocorrelation",
	}

	defaultSources = []string{
		"TAG-12345",
		"TAG-67891",
		"TAG-23456",
		"TAG-78912",
		"TAG-34567",
	}

	defaultAuthors = []string{
		"Emily Johnson",
		"James Mitchell",
		"Sophia Turner",
		"Benjamin Hayes",
		"Olivia Bennett",
	}
)

// Default returns the built-in catalog.
// Each call returns fresh slices, callers may modify them freely.
func Default() Catalog {
	return Catalog{
		AnalysisTypes:  slices.Clone(defaultAnalysisTypes),
		Sources:        slices.Clone(defaultSources),
		Authors:        slices.Clone(defaultAuthors),
		FallbackAuthor: FallbackAuthor,
	}
}

// Validate checks that the lists can be sampled from.
func (c Catalog) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}

// Author returns the author at index i of the roster, or the fallback author when i is out of range.
func (c Catalog) Author(i int) string {
	if i < 0 || i >= len(c.Authors) {
		return c.FallbackAuthor
	}
	return c.Authors[i]
}

// Load reads a catalog override file and merges it over the built-in catalog.
// The format is chosen by extension: .yaml, .yml or .toml (or .json, decoded as YAML).
// An empty path returns the built-in catalog.
func Load(path string) (c Catalog, err error) {
	defer decorate.OnError(&err, "could not load catalog %q", path)

	c = Default()
	if path == "" {
		return c, nil
	}

	var override Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &override); err != nil {
			return Catalog{}, err
		}
	case ".yaml", ".yml", ".json":
		if err := decodeYAML(path, &override); err != nil {
			return Catalog{}, err
		}
	default:
		return Catalog{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	c.merge(override)
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}

	slog.Debug("Loaded catalog", "file", path, "analysisTypes", len(c.AnalysisTypes), "sources", len(c.Sources), "authors", len(c.Authors))
	return c, nil
}

// merge replaces every list set in o.
func (c *Catalog) merge(o Catalog) {
	if o.AnalysisTypes != nil {
		c.AnalysisTypes = o.AnalysisTypes
	}
	if o.Sources != nil {
		c.Sources = o.Sources
	}
	if o.Authors != nil {
		c.Authors = o.Authors
	}
	if o.FallbackAuthor != "" {
		c.FallbackAuthor = o.FallbackAuthor
	}
}

func decodeYAML(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// An empty file decodes to nothing: keep the defaults.
	if err := yaml.NewDecoder(f).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
