package biomark

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"
)

// Field keys requested by the extraction prompt.
const (
	FieldProteinName      = "Protein Name"
	FieldUniProtID        = "UniProt ID"
	FieldProteinSequence  = "Protein Sequence"
	FieldIsoforms         = "Isoforms"
	FieldDiseaseName      = "Disease Name"
	FieldSourceMaterial   = "Source Material"
	FieldOrganism         = "Organism"
	FieldTechniqueUsed    = "Technique Used"
	FieldPubMedID         = "PubMed ID"
	FieldAlternativeNames = "Alternative Protein Names"
)

// RecordFields lists the keys every reply is expected to carry.
var RecordFields = []string{
	FieldProteinName,
	FieldUniProtID,
	FieldProteinSequence,
	FieldIsoforms,
	FieldDiseaseName,
	FieldSourceMaterial,
	FieldOrganism,
	FieldTechniqueUsed,
	FieldPubMedID,
	FieldAlternativeNames,
}

// Record is the biomarker mapping extracted from one article.
type Record struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SourceURL string `json:"sourceUrl"`

	// Fields is the flat mapping returned by the model. Values may be nil.
	Fields map[string]any `json:"fields"`

	BodyHash  string    `json:"bodyHash"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "record name required")
	}
	if r.Fields == nil {
		return Errorf(EINVALID, "record fields required")
	}
	return nil
}

// MissingFields returns the expected keys that are absent from the record.
// A key present with a null value is not missing.
func (r *Record) MissingFields() []string {
	var missing []string
	for _, k := range RecordFields {
		if _, ok := r.Fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// RecordWriter writes records to files.
type RecordWriter interface {
	WriteRecord(ctx context.Context, rec *Record) error
}

// RecordStore inserts records into a persistent store.
type RecordStore interface {
	// InsertRecord stores the record's fields as one document.
	// No uniqueness is enforced; rerunning a link inserts a duplicate.
	InsertRecord(ctx context.Context, rec *Record) error
}

// RecordService represents a service for managing stored records.
type RecordService interface {
	RecordStore

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecords retrieves records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID        *string `json:"id"`
	Name      *string `json:"name"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ParseReply decodes a model reply into a single flat mapping.
//
// A reply wrapped in a Markdown code fence is unwrapped first. A list holding
// exactly one object is reduced to that object. Invalid JSON returns EDECODE;
// any other shape (scalars, null, empty or multi-element lists) returns ESHAPE.
// Numbers are kept as json.Number so identifiers survive unchanged.
func ParseReply(reply string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(stripCodeFence(reply)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Errorf(EDECODE, "invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, Errorf(EDECODE, "invalid JSON: unexpected data after top-level value")
	}

	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case []any:
		if len(t) != 1 {
			return nil, Errorf(ESHAPE, "expected one record, got %d", len(t))
		}
		m, ok := t[0].(map[string]any)
		if !ok {
			return nil, Errorf(ESHAPE, "expected a JSON object inside list, got %s", jsonType(t[0]))
		}
		return m, nil
	default:
		return nil, Errorf(ESHAPE, "expected a JSON object, got %s", jsonType(v))
	}
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
