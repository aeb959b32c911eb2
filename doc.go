// Package tabular traverses tabular-shaped data as rows or as columns and
// renders it in multiple output formats.
//
// Lists of records, lists of key/value pairs and maps of named series all
// go through the same two steps. [Classify] (or [Read]) inspects a value
// once and returns a [Reader]; [ToRows] and [ToColumns] turn the Reader
// into records or named series. Sequences come from package seq and stay
// lazy wherever the shape allows.
//
// # Classification
//
// Rules are tried in order:
//
//   - A [Reader], or a value implementing [Tabular], passes through.
//   - A non-empty []KeyValue of (name, series) is column-oriented.
//   - A map[string]S of series is column-oriented, columns sorted.
//   - Any other sequence is row-oriented, with columns taken from its head
//     row: sorted keys of a map, or the keys of a []KeyValue in order.
//
// An empty sequence is an empty Rows reader. Anything else is not tabular:
//
//	r, err := tabular.Read([]map[string]any{
//		{"id": 1, "name": "Sherlock"},
//		{"id": 2, "name": "John"},
//	})
//	// r.Meta.Columns == []string{"id", "name"}
//
// Only the head row is inspected. A later row that does not fit the head
// row fails with a [RowShapeError] when the traversal reaches it.
//
// # Conversion
//
// [ToRows] maps a Rows reader and zips a Columns reader; both keep whatever
// count and slicing the source supports. [ToColumns] leaves the series of a
// Columns reader alone and materializes a Rows reader in one pass. [Only]
// retains a subset of columns.
//
// # Rendering
//
// [Write] and [Marshal] classify a value and render its rows as JSON, JSONL,
// YAML, CSV, TSV, Table, Markdown, HTML, Plain or a [GoTemplate].
// [WriteIter] and [WriteChan] render records as they arrive:
//
//	tabular.Write(os.Stdout, tabular.Table, rows,
//		tabular.WithTitle("Suspects"),
//		tabular.WithAlign("id", tabular.AlignRight),
//	)
//
// Rendering is configured with [RenderOption] values, or from YAML with
// [LoadRenderConfig]. Use [ParseFormat] to convert a CLI flag string into a
// [Format]; it also recognizes "go-template=<tmpl>" strings.
//
// # Errors
//
//   - [ErrNotTabular]: the value matched no classification rule
//   - [ErrRowShape]: a row did not match the head row, see [RowShapeError]
//   - [ErrUnsupportedFormat]: unknown format string
//   - [ErrInvalidTemplate]: invalid go-template syntax
//   - [ErrInvalidConfig]: a render setting cannot be honored
//
// A Reader whose metadata disagrees with its data is a bug in whatever built
// it; conversion panics with an [*InvariantViolation].
package tabular
