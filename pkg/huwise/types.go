package huwise

// Field is a single metadata field descriptor. The remote service stores
// descriptors as JSON objects with a "value" key plus service-managed keys
// (override flags, provenance). Keeping the full object means a read-modify-
// write cycle never drops keys this client does not know about.
type Field map[string]any

// Value returns the field's value, or nil if not set.
func (f Field) Value() any {
	if f == nil {
		return nil
	}

	return f["value"]
}

// Template is a named group of metadata fields (e.g. "default", "dcat").
type Template map[string]Field

// Metadata is the full metadata document of a dataset: template name to
// field name to field descriptor.
type Metadata map[string]Template

// Value returns the value of a field within a template, and whether the
// field exists.
func (m Metadata) Value(template, field string) (any, bool) {
	fld, ok := m[template][field]
	if !ok {
		return nil, false
	}

	return fld.Value(), true
}

// SetValue sets the value of a field within a template, creating the
// template and field descriptor as needed. Existing descriptor keys other
// than "value" are preserved.
func (m Metadata) SetValue(template, field string, value any) {
	if m[template] == nil {
		m[template] = Template{}
	}

	if m[template][field] == nil {
		m[template][field] = Field{}
	}

	m[template][field]["value"] = value
}

// Dataset represents a single dataset as returned by the automation API.
type Dataset struct {
	UID          string   `json:"uid"                  yaml:"uid"`
	DatasetID    string   `json:"dataset_id"           yaml:"dataset_id"`
	IsRestricted bool     `json:"is_restricted"        yaml:"is_restricted"`
	Metadata     Metadata `json:"metadata,omitempty"   yaml:"metadata,omitempty"`
}

// DatasetList represents a paginated dataset listing response.
type DatasetList struct {
	TotalCount int       `json:"total_count"    yaml:"total_count"`
	Next       string    `json:"next,omitempty" yaml:"next,omitempty"`
	Results    []Dataset `json:"results"        yaml:"results"`
}

// ListDatasetsParams expresses query parameters for dataset listing.
type ListDatasetsParams struct {
	Limit     int
	Offset    int
	DatasetID string
}

// DatasetIdentifier names one remote dataset by exactly one of its two
// identifier forms: the numeric dataset ID or the stable UID.
type DatasetIdentifier struct {
	DatasetID  string `json:"dataset_id,omitempty"  yaml:"dataset_id,omitempty"`
	DatasetUID string `json:"dataset_uid,omitempty" yaml:"dataset_uid,omitempty"`
}

// Key returns the identifier value exactly as the caller supplied it.
// Bulk result maps are keyed by this value; a numeric ID is never rewritten
// to the resolved UID.
func (i DatasetIdentifier) Key() string {
	if i.DatasetID != "" {
		return i.DatasetID
	}

	return i.DatasetUID
}

// UpdateSpec names one dataset and the metadata fields to write to it.
// Unknown field names pass through to the remote field write and are
// rejected (or not) by the service.
type UpdateSpec struct {
	DatasetIdentifier `yaml:",inline"`

	// Template is the metadata template to write to. Empty means "default".
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// Fields maps field names to the new values to write.
	Fields map[string]any `json:"fields" yaml:"fields"`
}

// Status reports the outcome of one entity's bulk operation.
type Status string

const (
	// StatusSuccess indicates the entity's operation completed.
	StatusSuccess Status = "success"

	// StatusError indicates the entity's operation failed.
	StatusError Status = "error"
)

// MetadataResult is one entry of a bulk metadata read, keyed by the
// caller-supplied identifier.
type MetadataResult struct {
	Status   Status   `json:"status"             yaml:"status"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Error    string   `json:"error,omitempty"    yaml:"error,omitempty"`
}

// UpdateResult is one entry of a bulk metadata update, keyed by the
// caller-supplied identifier. On failure FieldsUpdated still lists the
// fields confirmed written before the failing one.
type UpdateResult struct {
	Status        Status   `json:"status"                  yaml:"status"`
	FieldsUpdated []string `json:"fields_updated,omitempty" yaml:"fields_updated,omitempty"`
	Error         string   `json:"error,omitempty"         yaml:"error,omitempty"`
}

// Dataset processing status values reported by the status endpoint.
const (
	// DatasetStatusIdle means the dataset has no processing in flight and
	// accepts metadata writes.
	DatasetStatusIdle = "idle"
)
