package fixture

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/nardo/usecase-tracker/internal/attrvalue"
)

// Codec serializes batches to fixture documents and back.
type Codec interface {
	Encode(b Batch) ([]byte, error)
	Decode(data []byte, v Variant) (Batch, error)
}

// NewCodec returns the codec for format f.
func NewCodec(f Format) (Codec, error) {
	switch f {
	case FormatTyped:
		return TypedCodec{}, nil
	case FormatPlain:
		return PlainCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidArgument, f)
	}
}

// TypedCodec writes the documents consumed by the store seeding scripts.
//
// Jobs are a JSON array of flat objects whose list fields are typed-attribute lists.
// Use cases are a batch-write envelope: {"mockRequests": [{"PutRequest": {"Item": {...}}}]},
// where every attribute of the item is typed.
// The batch ID is not part of either document.
type TypedCodec struct{}

type jobDocument struct {
	RequestID      string          `json:"requestID"`
	ID             string          `json:"id"`
	CreationDate   string          `json:"creationDate"`
	JobStatus      string          `json:"jobStatus"`
	JobName        string          `json:"jobName"`
	JobDescription string          `json:"jobDescription"`
	Author         string          `json:"author"`
	AnalysisTypes  attrvalue.Value `json:"analysisTypes"`
	Sources        attrvalue.Value `json:"sources"`
	PowerBILink    string          `json:"powerBILink"`
}

// useCaseItem keeps the attribute order of the envelope stable.
type useCaseItem struct {
	RequestID          attrvalue.Value `json:"requestID"`
	ID                 attrvalue.Value `json:"id"`
	CreationDate       attrvalue.Value `json:"creationDate"`
	UseCaseStatus      attrvalue.Value `json:"useCaseStatus"`
	UseCaseName        attrvalue.Value `json:"useCaseName"`
	UseCaseDescription attrvalue.Value `json:"useCaseDescription"`
	Author             attrvalue.Value `json:"author"`
	AnalysisTypes      attrvalue.Value `json:"analysisTypes"`
	PowerBILink        attrvalue.Value `json:"powerBILink"`
}

type putRequest[T any] struct {
	PutRequest struct {
		Item T `json:"Item"`
	} `json:"PutRequest"`
}

type useCaseDocument[T any] struct {
	MockRequests []putRequest[T] `json:"mockRequests"`
}

// Encode implements Codec.
func (TypedCodec) Encode(b Batch) ([]byte, error) {
	var doc any
	switch b.Variant {
	case VariantJob:
		jobs := make([]jobDocument, 0, len(b.Records))
		for _, r := range b.Records {
			jobs = append(jobs, jobDocument{
				RequestID:      r.RequestID,
				ID:             r.InternalID,
				CreationDate:   strconv.FormatInt(r.CreationDate, 10),
				JobStatus:      string(r.Status),
				JobName:        r.Name,
				JobDescription: r.Description,
				Author:         r.Author,
				AnalysisTypes:  attrvalue.Strings(r.AnalysisTypes),
				Sources:        attrvalue.Strings(r.Sources),
				PowerBILink:    r.ExternalLink,
			})
		}
		doc = jobs
	case VariantUseCase:
		d := useCaseDocument[useCaseItem]{MockRequests: make([]putRequest[useCaseItem], 0, len(b.Records))}
		for _, r := range b.Records {
			var p putRequest[useCaseItem]
			p.PutRequest.Item = useCaseItem{
				RequestID:          attrvalue.S(r.RequestID),
				ID:                 attrvalue.S(r.InternalID),
				CreationDate:       attrvalue.N(r.CreationDate),
				UseCaseStatus:      attrvalue.S(string(r.Status)),
				UseCaseName:        attrvalue.S(r.Name),
				UseCaseDescription: attrvalue.S(r.Description),
				Author:             attrvalue.S(r.Author),
				AnalysisTypes:      attrvalue.Strings(r.AnalysisTypes),
				PowerBILink:        attrvalue.S(r.ExternalLink),
			}
			d.MockRequests = append(d.MockRequests, p)
		}
		doc = d
	default:
		return nil, fmt.Errorf("%w: unknown variant %q", ErrInvalidArgument, b.Variant)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return data, nil
}

// Decode implements Codec.
func (TypedCodec) Decode(data []byte, v Variant) (Batch, error) {
	b := Batch{Variant: v}

	switch v {
	case VariantJob:
		var jobs []jobDocument
		if err := json.Unmarshal(data, &jobs); err != nil {
			return Batch{}, fmt.Errorf("%w: could not decode job fixtures: %v", ErrSerialization, err)
		}
		for i, j := range jobs {
			r, err := FromItem(v, attrvalue.Item{
				AttrRequestID:     attrvalue.S(j.RequestID),
				AttrID:            attrvalue.S(j.ID),
				AttrCreationDate:  attrvalue.S(j.CreationDate),
				"jobStatus":       attrvalue.S(j.JobStatus),
				"jobName":         attrvalue.S(j.JobName),
				"jobDescription":  attrvalue.S(j.JobDescription),
				AttrAuthor:        attrvalue.S(j.Author),
				AttrAnalysisTypes: j.AnalysisTypes,
				AttrSources:       j.Sources,
				AttrLink:          attrvalue.S(j.PowerBILink),
			})
			if err != nil {
				return Batch{}, fmt.Errorf("%w: job %d: %v", ErrSerialization, i, err)
			}
			b.Records = append(b.Records, r)
		}
	case VariantUseCase:
		var d useCaseDocument[attrvalue.Item]
		if err := json.Unmarshal(data, &d); err != nil {
			return Batch{}, fmt.Errorf("%w: could not decode use case fixtures: %v", ErrSerialization, err)
		}
		if d.MockRequests == nil {
			return Batch{}, fmt.Errorf("%w: missing mockRequests envelope", ErrSerialization)
		}
		for i, p := range d.MockRequests {
			r, err := FromItem(v, p.PutRequest.Item)
			if err != nil {
				return Batch{}, fmt.Errorf("%w: put request %d: %v", ErrSerialization, i, err)
			}
			b.Records = append(b.Records, r)
		}
	default:
		return Batch{}, fmt.Errorf("%w: unknown variant %q", ErrInvalidArgument, v)
	}

	return b, nil
}

// PlainCodec writes batches with native JSON types and keeps the batch ID.
type PlainCodec struct{}

type plainDocument struct {
	BatchID uuid.UUID `json:"batchId"`
	Variant Variant   `json:"variant"`
	Records []Record  `json:"records"`
}

// Encode implements Codec.
func (PlainCodec) Encode(b Batch) ([]byte, error) {
	if b.Variant != VariantJob && b.Variant != VariantUseCase {
		return nil, fmt.Errorf("%w: unknown variant %q", ErrInvalidArgument, b.Variant)
	}

	doc := plainDocument{BatchID: b.ID, Variant: b.Variant, Records: b.Records}
	if doc.Records == nil {
		doc.Records = []Record{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return data, nil
}

// Decode implements Codec.
func (PlainCodec) Decode(data []byte, v Variant) (Batch, error) {
	var doc plainDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Batch{}, fmt.Errorf("%w: could not decode fixtures: %v", ErrSerialization, err)
	}
	if doc.Variant != v {
		return Batch{}, fmt.Errorf("%w: document holds %q records, expected %q", ErrInvalidArgument, doc.Variant, v)
	}
	for i, r := range doc.Records {
		if !r.Status.Valid() {
			return Batch{}, fmt.Errorf("%w: record %d: unknown status %q", ErrSerialization, i, r.Status)
		}
	}

	return Batch{ID: doc.BatchID, Variant: doc.Variant, Records: doc.Records}, nil
}
