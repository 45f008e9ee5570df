package swiftcsv

import "strings"

// Delimiter is a non-empty ordered sequence of Unicode scalars recognized
// atomically by the tokenizer. Once constructed it is immutable; equality
// and hashing are defined over the scalar sequence.
type Delimiter struct {
	scalars []rune
}

// NewDelimiter builds a Delimiter from a string, panicking if s is empty.
// Delimiters are always created at configuration time, so a panic here
// surfaces a programming error rather than a runtime condition.
func NewDelimiter(s string) Delimiter {
	if s == "" {
		panic("swiftcsv: delimiter must not be empty")
	}
	return Delimiter{scalars: []rune(s)}
}

// Scalars returns the delimiter's scalar sequence. The returned slice must
// not be mutated by the caller.
func (d Delimiter) Scalars() []rune { return d.scalars }

// Len reports the number of scalars in the delimiter.
func (d Delimiter) Len() int { return len(d.scalars) }

// String renders the delimiter back to its original textual form.
func (d Delimiter) String() string { return string(d.scalars) }

// Equal reports whether d and other recognize the same scalar sequence.
func (d Delimiter) Equal(other Delimiter) bool {
	if len(d.scalars) != len(other.scalars) {
		return false
	}
	for i, r := range d.scalars {
		if other.scalars[i] != r {
			return false
		}
	}
	return true
}

// key returns a comparable representation suitable for use as a map key.
func (d Delimiter) key() string { return string(d.scalars) }

// isPrefixOf reports whether d's scalar sequence is a prefix of other's.
func (d Delimiter) isPrefixOf(other Delimiter) bool {
	if len(d.scalars) > len(other.scalars) {
		return false
	}
	for i, r := range d.scalars {
		if other.scalars[i] != r {
			return false
		}
	}
	return true
}

// overlapsWith reports whether d and other share a prefix relationship in
// either direction, making them ambiguous to match against the same stream.
func (d Delimiter) overlapsWith(other Delimiter) bool {
	return d.isPrefixOf(other) || other.isPrefixOf(d)
}

// containsScalar reports whether r appears anywhere within the delimiter.
func (d Delimiter) containsScalar(r rune) bool {
	for _, s := range d.scalars {
		if s == r {
			return true
		}
	}
	return false
}

// RowDelimiterSet is a non-empty set of Delimiters recognized as row
// terminators. Order is preserved for deterministic longest-first matching.
type RowDelimiterSet struct {
	members []Delimiter
}

// NewRowDelimiterSet builds a RowDelimiterSet from one or more delimiters,
// panicking if none are supplied.
func NewRowDelimiterSet(delims ...Delimiter) RowDelimiterSet {
	if len(delims) == 0 {
		panic("swiftcsv: row delimiter set must not be empty")
	}
	return RowDelimiterSet{members: append([]Delimiter(nil), delims...)}
}

// StandardRowDelimiters is the conventional row delimiter set accepting
// both Unix and Windows line endings.
func StandardRowDelimiters() RowDelimiterSet {
	return NewRowDelimiterSet(NewDelimiter("\n"), NewDelimiter("\r\n"))
}

// Members returns the delimiters recognized by the set, longest-first, so
// that callers attempting matches in this order never shadow a longer
// alternative with a shorter one sharing the same leading scalar.
func (s RowDelimiterSet) Members() []Delimiter {
	sorted := append([]Delimiter(nil), s.members...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Len() > sorted[j-1].Len(); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

// Len reports the number of distinct delimiters recognized by the set.
func (s RowDelimiterSet) Len() int { return len(s.members) }

// totalScalarLen sums the scalar length of every member delimiter, used as
// an inference tie-breaker.
func (s RowDelimiterSet) totalScalarLen() int {
	n := 0
	for _, d := range s.members {
		n += d.Len()
	}
	return n
}

// String joins the set's members for diagnostic output.
func (s RowDelimiterSet) String() string {
	parts := make([]string, len(s.members))
	for i, d := range s.members {
		parts[i] = d.String()
	}
	return strings.Join(parts, "|")
}

// Dialect is the concrete (field delimiter, row delimiter set, escape
// scalar) triple used both by the tokenizer and as the scoring key of the
// inferrer.
type Dialect struct {
	Field  Delimiter
	Row    RowDelimiterSet
	Escape EscapeStrategy
}

// totalScalarLen returns the combined scalar length of the field delimiter
// and every row delimiter, used as the final inference tie-breaker.
func (d Dialect) totalScalarLen() int {
	return d.Field.Len() + d.Row.totalScalarLen()
}

// validateDelimiters checks the DelimitersPair invariants from the data
// model: no delimiter is a prefix of another, and (when supplied) the
// escape scalar and trim set are disjoint from every delimiter.
func validateDelimiters(field Delimiter, row RowDelimiterSet, escape EscapeStrategy, trim TrimSet) error {
	for _, r := range row.members {
		if field.overlapsWith(r) {
			return newError(ErrInvalidConfiguration, "field delimiter and row delimiter overlap").
				with("field", field.String()).with("row", r.String())
		}
	}
	for i := 0; i < len(row.members); i++ {
		for j := i + 1; j < len(row.members); j++ {
			if row.members[i].overlapsWith(row.members[j]) {
				return newError(ErrInvalidConfiguration, "row delimiters overlap").
					with("row", row.members[i].String()).with("row2", row.members[j].String())
			}
		}
	}
	if escape.scalar != 0 {
		if field.containsScalar(escape.scalar) {
			return newError(ErrInvalidConfiguration, "escape scalar collides with field delimiter").
				with("escape", string(escape.scalar)).with("field", field.String())
		}
		for _, r := range row.members {
			if r.containsScalar(escape.scalar) {
				return newError(ErrInvalidConfiguration, "escape scalar collides with row delimiter").
					with("escape", string(escape.scalar)).with("row", r.String())
			}
		}
		if trim.contains(escape.scalar) {
			return newError(ErrInvalidConfiguration, "escape scalar collides with trim set").
				with("escape", string(escape.scalar))
		}
	}
	if !trim.empty() {
		if trim.containsAny(field.scalars) {
			return newError(ErrInvalidConfiguration, "trim set collides with field delimiter").
				with("field", field.String())
		}
		for _, r := range row.members {
			if trim.containsAny(r.scalars) {
				return newError(ErrInvalidConfiguration, "trim set collides with row delimiter").
					with("row", r.String())
			}
		}
	}
	return nil
}
