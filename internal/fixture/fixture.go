// Package fixture generates synthetic job and use case records and writes them as fixture documents.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/nardo/usecase-tracker/internal/catalog"
	"github.com/nardo/usecase-tracker/internal/constants"
	"github.com/nardo/usecase-tracker/internal/fileutils"
	"github.com/ubuntu/decorate"
)

var (
	// ErrInvalidArgument is returned when a count, variant, format or catalog is not usable.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFilesystem is returned when the fixture document cannot be written.
	ErrFilesystem = errors.New("filesystem error")
	// ErrSerialization is returned when a batch cannot be encoded or a document decoded.
	ErrSerialization = errors.New("serialization error")
)

// Config describes one generation run.
type Config struct {
	Count   int     `validate:"min=1"`
	Output  string  // Defaults to the variant's fixture path.
	Variant Variant `validate:"oneof=job usecase"`
	Format  Format  `validate:"oneof=typed plain"`
	Seed    *uint64 // nil means unseeded. 0 is a valid seed.
	Catalog string  // Optional catalog override file.
	DryRun  bool    // Write the document to the Run writer instead of Output.
}

// Sanitize fills in defaults and validates the configuration.
func (c *Config) Sanitize() error {
	if c.Variant == "" {
		c.Variant = VariantJob
	}
	v, err := ParseVariant(string(c.Variant))
	if err != nil {
		return err
	}
	c.Variant = v
	if c.Format == "" {
		c.Format = FormatTyped
	}
	if c.Output == "" {
		c.Output = constants.DefaultOutput(string(c.Variant))
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

// Run generates a batch as configured and writes it.
// On a dry run the document goes to w and nothing touches the filesystem.
func (c Config) Run(w io.Writer, args ...Options) (b Batch, err error) {
	defer decorate.OnError(&err, "could not generate %s fixtures", c.Variant)

	if err := c.Sanitize(); err != nil {
		return Batch{}, err
	}

	cat, err := catalog.Load(c.Catalog)
	if err != nil {
		return Batch{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	if c.Seed != nil {
		args = append([]Options{WithSeed(*c.Seed)}, args...)
	}
	g, err := New(cat, args...)
	if err != nil {
		return Batch{}, err
	}

	b, err = g.Batch(c.Count, c.Variant)
	if err != nil {
		return Batch{}, err
	}

	codec, err := NewCodec(c.Format)
	if err != nil {
		return Batch{}, err
	}

	if c.DryRun {
		data, err := codec.Encode(b)
		if err != nil {
			return Batch{}, err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return Batch{}, fmt.Errorf("%w: %v", ErrFilesystem, err)
		}
		return b, nil
	}

	if err := Write(c.Output, b, codec); err != nil {
		return Batch{}, err
	}

	slog.Info("Wrote fixtures", "path", c.Output, "batch", b.ID, "variant", b.Variant, "count", len(b.Records))
	return b, nil
}

// Generate writes count records of the given variant to destinationPath with the typed codec.
// variant is parsed like ParseVariant, so "useCase" selects VariantUseCase.
func Generate(count int, destinationPath string, variant Variant, args ...Options) error {
	c := Config{
		Count:   count,
		Output:  destinationPath,
		Variant: variant,
		Format:  FormatTyped,
	}
	_, err := c.Run(io.Discard, args...)
	return err
}

// Write encodes b with codec and atomically replaces the file at path.
// The parent directory must exist. On failure any previous file is left intact.
func Write(path string, b Batch, codec Codec) error {
	data, err := codec.Encode(b)
	if err != nil {
		return err
	}

	if err := fileutils.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrFilesystem, err)
	}
	return nil
}
