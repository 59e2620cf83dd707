// Package form defines the submitted form data model shared by the
// client pipeline and the email API: the flat record that travels over
// the wire, the per-form field definitions, and the field validation
// rules applied before a record is allowed to leave the client.
package form

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Type discriminates which email template a record maps to.
type Type string

const (
	TypeBooking Type = "booking"
	TypeReview  Type = "review"
)

// ParseType validates the type discriminator of an incoming record.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeBooking, TypeReview:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown form type %q", s)
	}
}

// typeKey is the reserved field name carrying the discriminator.
const typeKey = "type"

// Record is a submitted form: a type discriminator plus a flat mapping of
// field names to string values. Its JSON form is a single flat object with
// the discriminator under the "type" key, matching what the site's forms
// post to the API.
type Record struct {
	Type   Type
	Fields map[string]string
}

// NewRecord creates an empty record of the given type.
func NewRecord(t Type) Record {
	return Record{Type: t, Fields: make(map[string]string)}
}

// Get returns the value of a field, or "" when absent.
func (r Record) Get(name string) string {
	return r.Fields[name]
}

// Has reports whether a field carries a non-blank value.
func (r Record) Has(name string) bool {
	return strings.TrimSpace(r.Fields[name]) != ""
}

// Set stores a field value, allocating the field map on first use.
func (r *Record) Set(name, value string) {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	r.Fields[name] = value
}

// MarshalJSON flattens the record into a single JSON object with the
// discriminator under "type".
func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(r.Fields)+1)
	for k, v := range r.Fields {
		if k == typeKey {
			continue
		}
		flat[k] = v
	}
	flat[typeKey] = string(r.Type)
	return json.Marshal(flat)
}

// UnmarshalJSON accepts a flat JSON object. Values are coerced to strings:
// browser form serializers are loose about numbers (guest counts,
// satisfaction scores), and nulls collapse to empty strings.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Type = ""
	r.Fields = make(map[string]string, len(raw))

	for k, v := range raw {
		s, err := coerceString(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		if k == typeKey {
			r.Type = Type(s)
			continue
		}
		r.Fields[k] = s
	}
	return nil
}

// coerceString converts a JSON scalar to its string form.
func coerceString(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	if trimmed == "true" || trimmed == "false" {
		return trimmed, nil
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return trimmed, nil
	}
	return "", fmt.Errorf("unsupported value %s", trimmed)
}

// FieldNames returns the record's field names in stable order, for logs
// and for tests that compare saved and loaded drafts.
func (r Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
