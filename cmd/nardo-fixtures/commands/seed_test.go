package commands_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/nardo/usecase-tracker/cmd/nardo-fixtures/commands"
	"github.com/nardo/usecase-tracker/internal/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		variant  fixture.Variant
		format   fixture.Format
		document string
		noFile   bool

		wantErr bool
	}{
		"Valid typed jobs":      {variant: fixture.VariantJob, format: fixture.FormatTyped},
		"Valid typed use cases": {variant: fixture.VariantUseCase, format: fixture.FormatTyped},
		"Valid plain jobs":      {variant: fixture.VariantJob, format: fixture.FormatPlain},

		"Error on invalid document": {variant: fixture.VariantJob, format: fixture.FormatTyped, document: `{"jobs": []}`, wantErr: true},
		"Error on malformed JSON":   {variant: fixture.VariantJob, format: fixture.FormatTyped, document: `[{`, wantErr: true},
		"Error on missing file":     {variant: fixture.VariantJob, format: fixture.FormatTyped, noFile: true, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "fixtures.json")
			switch {
			case tc.noFile:
			case tc.document != "":
				require.NoError(t, os.WriteFile(path, []byte(tc.document), 0600), "Setup: could not write document")
			default:
				generateFile(t, path, tc.variant, tc.format, 5)
			}

			conf := &commands.AppConfig{Variant: tc.variant, Format: tc.format}
			a, out := commands.NewForTests(t, conf, "validate", path)

			err := a.Run()
			require.False(t, a.UsageError(), "Validation failures are not usage errors")
			if tc.wantErr {
				require.Error(t, err, "Run should return an error")
				return
			}
			require.NoError(t, err, "Run should not return an error")
			assert.Contains(t, out.String(), "valid", "Run should report the document as valid")
		})
	}
}

func TestSeedAndProcess(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		variant fixture.Variant
		format  fixture.Format
		count   int

		wantTable string
	}{
		"Typed jobs":      {variant: fixture.VariantJob, format: fixture.FormatTyped, count: 30, wantTable: "mockRequests"},
		"Typed use cases": {variant: fixture.VariantUseCase, format: fixture.FormatTyped, count: 25, wantTable: "useCases"},
		"Plain jobs":      {variant: fixture.VariantJob, format: fixture.FormatPlain, count: 8, wantTable: "mockRequests"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "fixtures.json")
			b := generateFile(t, path, tc.variant, tc.format, tc.count)

			wantPromoted := 0
			for _, r := range b.Records {
				if r.Status == fixture.StatusNotStarted {
					wantPromoted++
				}
			}

			conf := &commands.AppConfig{Variant: tc.variant, Format: tc.format, Store: filepath.Join(dir, "nardo.db")}

			a, out := commands.NewForTests(t, conf, "seed", path)
			require.NoError(t, a.Run(), "Seed should not return an error")
			assert.Contains(t, out.String(), fmt.Sprintf("Seeded %d records into %s", tc.count, tc.wantTable), "Seed should report what it stored")

			a, out = commands.NewForTests(t, conf, "process")
			require.NoError(t, a.Run(), "Process should not return an error")
			assert.Contains(t, out.String(), fmt.Sprintf("Moved %d records of %s", wantPromoted, tc.wantTable), "Process should report the promoted records")

			a, out = commands.NewForTests(t, conf, "process")
			require.NoError(t, a.Run(), "Second process should not return an error")
			assert.Contains(t, out.String(), fmt.Sprintf("Moved 0 records of %s", tc.wantTable), "Second process should have nothing left to promote")
		})
	}
}

func TestSeedErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		document    string
		noFile      bool
		missingDir  bool
		wrongFormat bool
	}{
		"Error on missing file":         {noFile: true},
		"Error on invalid document":     {document: `[{"requestID": "1"}]`},
		"Error on mismatched format":    {wrongFormat: true},
		"Error on missing store folder": {missingDir: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "fixtures.json")
			switch {
			case tc.noFile:
			case tc.document != "":
				require.NoError(t, os.WriteFile(path, []byte(tc.document), 0600), "Setup: could not write document")
			case tc.wrongFormat:
				generateFile(t, path, fixture.VariantJob, fixture.FormatPlain, 3)
			default:
				generateFile(t, path, fixture.VariantJob, fixture.FormatTyped, 3)
			}

			storePath := filepath.Join(dir, "nardo.db")
			if tc.missingDir {
				storePath = filepath.Join(dir, "missing", "nardo.db")
			}

			conf := &commands.AppConfig{Variant: fixture.VariantJob, Format: fixture.FormatTyped, Store: storePath}
			a, _ := commands.NewForTests(t, conf, "seed", path)

			err := a.Run()
			require.Error(t, err, "Seed should return an error")
			require.False(t, a.UsageError(), "Seed failures are not usage errors")
		})
	}
}

func generateFile(t *testing.T, path string, v fixture.Variant, f fixture.Format, count int) fixture.Batch {
	t.Helper()

	seed := uint64(count)
	c := fixture.Config{Count: count, Output: path, Variant: v, Format: f, Seed: &seed}
	b, err := c.Run(nil)
	require.NoError(t, err, "Setup: could not generate fixtures")
	return b
}
