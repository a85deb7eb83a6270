package fixture

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Variant selects the kind of records a batch holds.
type Variant string

const (
	// VariantJob produces analysis job records, which carry sources.
	VariantJob Variant = "job"
	// VariantUseCase produces use case records.
	VariantUseCase Variant = "usecase"
)

// UnmarshalText parses a variant name, ignoring case. "use-case" and "use_case" are accepted too.
func (v *Variant) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "job", "jobs":
		*v = VariantJob
	case "usecase", "usecases", "use-case", "use_case":
		*v = VariantUseCase
	default:
		return fmt.Errorf("%w: unknown variant %q, expected %q or %q", ErrInvalidArgument, text, VariantJob, VariantUseCase)
	}
	return nil
}

// ParseVariant returns the variant named s, with the spellings accepted by UnmarshalText.
func ParseVariant(s string) (Variant, error) {
	var v Variant
	if err := v.UnmarshalText([]byte(s)); err != nil {
		return "", err
	}
	return v, nil
}

// String implements fmt.Stringer.
func (v Variant) String() string {
	return string(v)
}

// Format selects the codec used to serialize a batch.
type Format string

const (
	// FormatTyped wraps every value in a typed-attribute envelope, ready for a batch-write.
	FormatTyped Format = "typed"
	// FormatPlain uses native JSON types.
	FormatPlain Format = "plain"
)

// UnmarshalText parses a format name, ignoring case.
func (f *Format) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "typed", "dynamodb":
		*f = FormatTyped
	case "plain", "json":
		*f = FormatPlain
	default:
		return fmt.Errorf("%w: unknown format %q, expected %q or %q", ErrInvalidArgument, text, FormatTyped, FormatPlain)
	}
	return nil
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

// Status is the lifecycle state of a tracked record.
type Status string

// Known statuses.
const (
	StatusComplete   Status = "Complete"
	StatusInProgress Status = "InProgress"
	StatusNotStarted Status = "NotStarted"
	StatusFailed     Status = "Failed"
)

var statuses = []Status{StatusComplete, StatusInProgress, StatusNotStarted, StatusFailed}

// Statuses returns every known status, in a stable order.
func Statuses() []Status {
	return append([]Status(nil), statuses...)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ExternalLink is the placeholder report link attached to every record.
const ExternalLink = "https://app.powerbi.com/groups/me/reports/{ReportId}/ReportSection?filter=TableName/FieldName eq 'value'"

const loremIpsum = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. " +
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat."

// Record is one synthetic job or use case.
type Record struct {
	RequestID     string   `json:"requestId"`
	InternalID    string   `json:"internalId"`
	CreationDate  int64    `json:"creationDate"`
	Status        Status   `json:"status"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Author        string   `json:"author"`
	AnalysisTypes []string `json:"analysisTypes"`
	Sources       []string `json:"sources,omitempty"`
	ExternalLink  string   `json:"externalLink"`
}

// Batch is the set of records produced by one generation run.
type Batch struct {
	ID      uuid.UUID
	Variant Variant
	Records []Record
}

// names returns the name and description templates of the record at position i.
func names(v Variant, i int) (name, description string) {
	if v == VariantUseCase {
		return fmt.Sprintf("Use case %d", i), fmt.Sprintf("This is a test for use case %d", i)
	}
	return fmt.Sprintf("Job %d", i), fmt.Sprintf("Test for job %d. %s", i, loremIpsum)
}
