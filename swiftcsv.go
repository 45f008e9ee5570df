// # SwiftCSV: a scalar-level CSV tokenizer, writer, and dialect inferrer for Go
//
// SwiftCSV reads and writes delimiter-separated rows over an abstract
// stream of Unicode scalars rather than raw bytes. It supports
// multi-scalar field and row delimiters (not just single characters),
// doubled-escape quoting, configurable trimming, and — when a dialect
// isn't known up front — heuristic inference of the field and row
// delimiters from a leading sample of the input.
//
// # Features
//
// - A streaming Reader built on a pushback scalar buffer, supporting
// arbitrary-length field/row delimiters and an optional escape scalar.
// - An Inferrer that scores candidate dialects by how regular the
// resulting row-width pattern is, favoring dialects that split the input
// into few distinct row shapes and wide rows.
// - A symmetric Writer enforcing a row-width invariant: the first row
// fixes the field count, later rows are padded (never truncated).
// - A decode subpackage handling the byte-encoding concerns (UTF-8/16/32,
// BOM) the core deliberately leaves external.
// - Named dialect profiles loadable from YAML, structured errors with a
// stable Kind taxonomy, and optional debug logging of inference
// decisions.
//
// # Getting Started
//
// The module path is `github.com/csvkit/swiftcsv`. Import it directly
// when working inside this repository or adjust the module path to match
// your fork or remote.
package swiftcsv
