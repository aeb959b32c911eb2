package tabular

import (
	"maps"
)

// convertRow aligns one row to columns. It runs once per row, at traversal
// time.
func convertRow(columns []string, row any) ([]any, error) {
	if pairs, ok := asPairs(row); ok {
		return pairRow(columns, pairs, row)
	}
	if m, ok := asMap(row); ok {
		return mapRow(columns, m, row)
	}
	return nil, &RowShapeError{Kind: InvalidRecord, Row: row}
}

func mapRow(columns []string, m map[string]any, row any) ([]any, error) {
	rest := maps.Clone(m)
	out := make([]any, len(columns))
	for i, c := range columns {
		v, ok := rest[c]
		if !ok {
			return nil, &RowShapeError{Kind: MissingColumn, Columns: []string{c}, Row: row}
		}
		out[i] = v
		delete(rest, c)
	}
	if len(rest) > 0 {
		return nil, &RowShapeError{Kind: MissingReferenceColumns, Columns: sortedKeys(rest), Row: row}
	}
	return out, nil
}

func pairRow(columns []string, pairs []KeyValue, row any) ([]any, error) {
	out := make([]any, len(columns))
	for i, kv := range pairs {
		switch {
		case i >= len(columns):
			return nil, &RowShapeError{Kind: ExtraColumn, Columns: []string{kv.Key}, Row: row}
		case kv.Key != columns[i]:
			return nil, &RowShapeError{Kind: ColumnsOutOfOrder, Columns: []string{columns[i], kv.Key}, Row: row}
		}
		out[i] = kv.Value
	}
	if len(pairs) < len(columns) {
		return nil, &RowShapeError{Kind: MissingColumn, Columns: []string{columns[len(pairs)]}, Row: row}
	}
	return out, nil
}
