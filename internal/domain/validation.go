package domain

import (
	"encoding/json"
	"fmt"
)

// RawRow is an untrusted per-row judgment as received from the remote
// validator. No key is guaranteed to be present.
type RawRow map[string]any

// Raw row keys understood by Normalize.
const (
	FieldStatus        = "Status"
	FieldErrors        = "Errors"
	FieldMessage       = "Message"
	FieldFirstColumn   = "firstColumn"
	FieldTransactionID = "TransactionID"
	FieldID            = "id"
)

// IDFields is the identifier resolution order. The first present,
// non-null field wins.
var IDFields = []string{FieldFirstColumn, FieldTransactionID, FieldID}

// RowStatus is the canonical outcome of a validated row.
type RowStatus string

const (
	StatusValid   RowStatus = "Valid"
	StatusInvalid RowStatus = "Invalid"
	StatusUnknown RowStatus = "Unknown"
)

// RowID is a row identifier preserved exactly as received. The zero value
// is the absent identifier, which is distinct from an empty string.
type RowID struct {
	value   any
	present bool
}

// NewRowID wraps a received identifier value.
func NewRowID(v any) RowID { return RowID{value: v, present: true} }

// Present reports whether an identifier was found.
func (id RowID) Present() bool { return id.present }

// Value returns the identifier as received, or nil when absent.
func (id RowID) Value() any { return id.value }

// String formats the identifier for display. Absent identifiers render as "".
func (id RowID) String() string {
	if !id.present {
		return ""
	}
	switch v := id.value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// MarshalJSON emits the received value, or null when absent.
func (id RowID) MarshalJSON() ([]byte, error) {
	if !id.present {
		return []byte("null"), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON restores an identifier; null decodes to absent.
func (id *RowID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = RowID{}
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*id = NewRowID(v)
	return nil
}

// ValidationRow is the canonical, render-ready form of a raw row.
// Errors is never nil.
type ValidationRow struct {
	ID      RowID     `json:"id"`
	IDField string    `json:"id_field,omitempty"`
	Status  RowStatus `json:"status"`
	Errors  []string  `json:"errors"`
	Message string    `json:"message,omitempty"`
}

// ValidationSummary holds counts derived from a canonical collection.
// Total == Valid + Invalid + Unknown always holds.
type ValidationSummary struct {
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
	Unknown int `json:"unknown"`
	Total   int `json:"total"`
}

// ValidationReport bundles what the validation screen renders.
type ValidationReport struct {
	File     string            `json:"file"`
	Filename string            `json:"filename,omitempty"`
	RowCount *int              `json:"row_count,omitempty"`
	Rows     []ValidationRow   `json:"rows"`
	Summary  ValidationSummary `json:"summary"`
}
