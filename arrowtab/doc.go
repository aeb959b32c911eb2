// Package arrowtab bridges Apache Arrow records and tabular readers.
//
// [FromRecord] exposes the columns of an [arrow.Record] as a
// column-oriented reader, and [Record] lets a record be passed anywhere a
// tabular value is accepted:
//
//	tabular.Write(os.Stdout, tabular.Table, arrowtab.Record{Record: rec})
//
// [ToRecord] goes the other way and builds a record from any reader.
// Column types come from the schema a reader was built from, when it has
// one, and are inferred from the first non-nil value otherwise.
package arrowtab
