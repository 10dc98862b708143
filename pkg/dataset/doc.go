// Package dataset holds the ordered record sequences that charts are drawn
// from, plus readers for JSON, CSV and Excel workbooks.
//
// # Records and Values
//
// A [Record] is an opaque map from field name to raw value. A [Dataset] is an
// ordered slice of records; its order defines X placement and is never sorted
// by this package or by the chart engines.
//
// Field values are wrapped in [Value], which keeps the raw representation and
// offers two views:
//
//   - [Value.String] returns the raw string form (used for X labels and
//     tooltips)
//   - [Value.Float] coerces the value to a number with float-prefix parsing:
//     "12px" becomes 12, and anything without a numeric prefix becomes 0
//
// [Value.Numeric] is the strict counterpart used by validating callers; it
// reports whether the whole value is a finite number.
//
// # Accessors
//
// Chart engines never index records by name directly. They receive an
// [Accessor], resolved once per chart:
//
//	acc := dataset.Keys{XKey: "month", YKey: "sales"}
//	label := acc.X(record).String()
//	value := acc.Y(record).Float()
//
// [AccessorFunc] adapts arbitrary closures for records whose values need to
// be derived.
//
// # Input Formats
//
// [ReadJSON] accepts an array of objects. [ReadCSV] and [ReadXLSX] treat the
// first row as the header naming the record keys. [ReadFile] dispatches on
// the file extension. Numbers decoded from JSON keep their literal text, so
// X labels render exactly as written in the source file.
package dataset
