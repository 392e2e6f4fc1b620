package domain

// Summarize counts rows by status. It is recomputed from the collection on
// every call and holds no state of its own.
func Summarize(rows []ValidationRow) ValidationSummary {
	s := ValidationSummary{Total: len(rows)}
	for _, r := range rows {
		switch r.Status {
		case StatusValid:
			s.Valid++
		case StatusInvalid:
			s.Invalid++
		default:
			s.Unknown++
		}
	}
	return s
}

// InvalidRows selects the Invalid rows, keeping their relative order.
func InvalidRows(rows []ValidationRow) []ValidationRow {
	out := make([]ValidationRow, 0)
	for _, r := range rows {
		if r.Status == StatusInvalid {
			out = append(out, r)
		}
	}
	return out
}

// AllAccountedFor reports whether every row is Valid or Invalid.
func (s ValidationSummary) AllAccountedFor() bool {
	return s.Unknown == 0
}
