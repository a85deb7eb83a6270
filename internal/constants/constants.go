// Package constants is responsible for defining the constants used in the application.
// It also provides the default fixture paths for each variant.
package constants

import (
	"log/slog"
	"path/filepath"
	"strings"
)

var (
	// Version is the version of the application.
	Version = "Dev"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "nardo-fixtures"

	// DefaultLogLevel is the default log level selected without any verbosity flags.
	DefaultLogLevel = slog.LevelWarn

	// DefaultCount is the number of records generated when no count is given.
	DefaultCount = 25

	// DefaultStorePath is the default path of the local key-value store used for seeding.
	DefaultStorePath = "nardo.db"

	// JobTable is the table seeded with job fixtures.
	JobTable = "mockRequests"

	// UseCaseTable is the table seeded with use case fixtures.
	UseCaseTable = "useCases"

	// BatchesTable holds one metadata entry per seeded batch.
	BatchesTable = "batches"
)

var (
	// DefaultJobOutput is the default destination of the job fixtures, relative to the project root.
	DefaultJobOutput = filepath.Join("infra", "mockdata", "requests.json")

	// DefaultUseCaseOutput is the default destination of the use case fixtures, relative to the project root.
	DefaultUseCaseOutput = filepath.Join("infra", "useCases", "mockUseCasesBatchCommand.json")
)

// DefaultOutput returns the default fixture path for the named variant.
// Unknown variants fall back to the job destination.
func DefaultOutput(variant string) string {
	if strings.EqualFold(variant, "usecase") {
		return DefaultUseCaseOutput
	}
	return DefaultJobOutput
}
