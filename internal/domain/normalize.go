package domain

import "fmt"

// Normalize maps a raw row to its canonical form. It never fails: every
// malformed field degrades to its safest default on its own.
func Normalize(raw RawRow) ValidationRow {
	row := ValidationRow{
		Status: resolveStatus(raw[FieldStatus]),
		Errors: resolveErrors(raw[FieldErrors]),
	}
	row.ID, row.IDField = resolveID(raw)
	if msg, ok := raw[FieldMessage].(string); ok {
		row.Message = msg
	}
	return row
}

// NormalizeAll normalizes rows one by one. The result always has the same
// length and order as the input and is never nil.
func NormalizeAll(raws []RawRow) []ValidationRow {
	rows := make([]ValidationRow, 0, len(raws))
	for _, raw := range raws {
		rows = append(rows, Normalize(raw))
	}
	return rows
}

func resolveID(raw RawRow) (RowID, string) {
	for _, field := range IDFields {
		v, ok := raw[field]
		if !ok || v == nil {
			continue
		}
		return NewRowID(v), field
	}
	return RowID{}, ""
}

func resolveStatus(v any) RowStatus {
	s, _ := v.(string)
	switch RowStatus(s) {
	case StatusValid:
		return StatusValid
	case StatusInvalid:
		return StatusInvalid
	default:
		return StatusUnknown
	}
}

func resolveErrors(v any) []string {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(e))
		}
		return out
	default:
		return []string{}
	}
}
