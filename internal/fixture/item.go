package fixture

import (
	"fmt"
	"strconv"

	"github.com/nardo/usecase-tracker/internal/attrvalue"
)

// Attribute names shared by both variants.
const (
	AttrRequestID     = "requestID"
	AttrID            = "id"
	AttrCreationDate  = "creationDate"
	AttrAuthor        = "author"
	AttrAnalysisTypes = "analysisTypes"
	AttrSources       = "sources"
	AttrLink          = "powerBILink"
)

// fields holds the attribute names that differ between variants.
type fields struct {
	status, name, description string
}

func variantFields(v Variant) fields {
	if v == VariantUseCase {
		return fields{status: "useCaseStatus", name: "useCaseName", description: "useCaseDescription"}
	}
	return fields{status: "jobStatus", name: "jobName", description: "jobDescription"}
}

// StatusAttribute returns the name of the status attribute of the variant's items.
func StatusAttribute(v Variant) string {
	return variantFields(v).status
}

// ToItem renders r as a typed-attribute item of variant v.
func ToItem(v Variant, r Record) attrvalue.Item {
	f := variantFields(v)
	it := attrvalue.Item{
		AttrRequestID:     attrvalue.S(r.RequestID),
		AttrID:            attrvalue.S(r.InternalID),
		AttrCreationDate:  attrvalue.N(r.CreationDate),
		f.status:          attrvalue.S(string(r.Status)),
		f.name:            attrvalue.S(r.Name),
		f.description:     attrvalue.S(r.Description),
		AttrAuthor:        attrvalue.S(r.Author),
		AttrAnalysisTypes: attrvalue.Strings(r.AnalysisTypes),
		AttrLink:          attrvalue.S(r.ExternalLink),
	}
	if v == VariantJob {
		it[AttrSources] = attrvalue.Strings(r.Sources)
	}
	return it
}

// FromItem parses a typed-attribute item of variant v.
// The creation date may be carried either as a number or as a string holding the number.
func FromItem(v Variant, it attrvalue.Item) (r Record, err error) {
	f := variantFields(v)

	if r.RequestID, err = it.String(AttrRequestID); err != nil {
		return Record{}, err
	}
	if r.InternalID, err = it.String(AttrID); err != nil {
		return Record{}, err
	}
	if r.CreationDate, err = it.Int(AttrCreationDate); err != nil {
		s, serr := it.String(AttrCreationDate)
		if serr != nil {
			return Record{}, err
		}
		if r.CreationDate, err = strconv.ParseInt(s, 10, 64); err != nil {
			return Record{}, fmt.Errorf("%s: %w", AttrCreationDate, err)
		}
	}
	status, err := it.String(f.status)
	if err != nil {
		return Record{}, err
	}
	r.Status = Status(status)
	if !r.Status.Valid() {
		return Record{}, fmt.Errorf("%s: unknown status %q", f.status, status)
	}
	if r.Name, err = it.String(f.name); err != nil {
		return Record{}, err
	}
	if r.Description, err = it.String(f.description); err != nil {
		return Record{}, err
	}
	if r.Author, err = it.String(AttrAuthor); err != nil {
		return Record{}, err
	}
	if r.AnalysisTypes, err = it.StringList(AttrAnalysisTypes); err != nil {
		return Record{}, err
	}
	if v == VariantJob {
		if r.Sources, err = it.StringList(AttrSources); err != nil {
			return Record{}, err
		}
	}
	if r.ExternalLink, err = it.String(AttrLink); err != nil {
		return Record{}, err
	}

	return r, nil
}
