package swiftcsv

// HeaderStrategy controls whether the reader treats the first row as a
// header rather than data.
type HeaderStrategy int

const (
	// HeaderNone means every row, including the first, is data.
	HeaderNone HeaderStrategy = iota
	// HeaderFirstLine means the first row read is captured as the header
	// and excluded from row indexing.
	HeaderFirstLine
)

// EscapeStrategy controls the reader/writer's escape scalar, if any. The
// zero value carries no escape scalar (escaping disabled).
type EscapeStrategy struct {
	scalar  rune
	enabled bool
}

// NoEscape disables escaping entirely.
func NoEscape() EscapeStrategy { return EscapeStrategy{} }

// EscapeWith configures r as the escape/quote scalar.
func EscapeWith(r rune) EscapeStrategy { return EscapeStrategy{scalar: r, enabled: true} }

// DoubleQuoteEscape configures the conventional '"' escape scalar.
func DoubleQuoteEscape() EscapeStrategy { return EscapeWith('"') }

// Enabled reports whether an escape scalar is configured.
func (e EscapeStrategy) Enabled() bool { return e.enabled }

// Scalar returns the configured escape scalar. Only meaningful when
// Enabled() is true.
func (e EscapeStrategy) Scalar() rune { return e.scalar }

// TrimSet is a set of scalars stripped from the leading and trailing edges
// of unescaped fields.
type TrimSet struct {
	scalars map[rune]struct{}
}

// NewTrimSet builds a TrimSet from the given scalars.
func NewTrimSet(scalars ...rune) TrimSet {
	set := make(map[rune]struct{}, len(scalars))
	for _, r := range scalars {
		set[r] = struct{}{}
	}
	return TrimSet{scalars: set}
}

// StandardWhitespaceTrim trims the conventional ASCII space and tab.
func StandardWhitespaceTrim() TrimSet { return NewTrimSet(' ', '\t') }

func (t TrimSet) empty() bool { return len(t.scalars) == 0 }

func (t TrimSet) contains(r rune) bool {
	_, ok := t.scalars[r]
	return ok
}

func (t TrimSet) containsAny(rs []rune) bool {
	for _, r := range rs {
		if t.contains(r) {
			return true
		}
	}
	return false
}

// FieldDelimiterOption selects between a concrete field delimiter and a
// request to infer one from candidates.
type FieldDelimiterOption struct {
	use       *Delimiter
	inferFrom []Delimiter
}

// UseFieldDelimiter pins the field delimiter to d.
func UseFieldDelimiter(d Delimiter) FieldDelimiterOption {
	return FieldDelimiterOption{use: &d}
}

// InferFieldDelimiter requests inference among candidates. An empty
// candidate list falls back to DefaultFieldDelimiterCandidates.
func InferFieldDelimiter(candidates ...Delimiter) FieldDelimiterOption {
	if len(candidates) == 0 {
		candidates = DefaultFieldDelimiterCandidates()
	}
	return FieldDelimiterOption{inferFrom: dedupeDelimiters(candidates)}
}

// IsInfer reports whether this option requests inference rather than
// pinning a concrete delimiter.
func (o FieldDelimiterOption) IsInfer() bool { return o.use == nil }

// Delimiter returns the pinned delimiter and true, or the zero Delimiter
// and false if this option requests inference instead.
func (o FieldDelimiterOption) Delimiter() (Delimiter, bool) {
	if o.use == nil {
		return Delimiter{}, false
	}
	return *o.use, true
}

// RowDelimiterOption selects between a concrete row delimiter set and a
// request to infer one from candidates.
type RowDelimiterOption struct {
	use       *RowDelimiterSet
	inferFrom []Delimiter
}

// UseRowDelimiter pins the row delimiter set to s.
func UseRowDelimiter(s RowDelimiterSet) RowDelimiterOption {
	return RowDelimiterOption{use: &s}
}

// InferRowDelimiter requests inference among candidates, each treated as a
// one-element RowDelimiterSet per §9's design note. An empty candidate
// list falls back to DefaultRowDelimiterCandidates.
func InferRowDelimiter(candidates ...Delimiter) RowDelimiterOption {
	if len(candidates) == 0 {
		candidates = DefaultRowDelimiterCandidates()
	}
	return RowDelimiterOption{inferFrom: dedupeDelimiters(candidates)}
}

// DefaultFieldDelimiterCandidates returns the default inference candidates
// for the field delimiter: comma, semicolon, tab.
func DefaultFieldDelimiterCandidates() []Delimiter {
	return []Delimiter{NewDelimiter(","), NewDelimiter(";"), NewDelimiter("\t")}
}

// DefaultRowDelimiterCandidates returns the default inference candidates
// for the row delimiter: LF, CRLF.
func DefaultRowDelimiterCandidates() []Delimiter {
	return []Delimiter{NewDelimiter("\n"), NewDelimiter("\r\n")}
}

// dedupeDelimiters removes scalar-sequence duplicates while preserving
// first-seen order, per Open Question (i) in §9.
func dedupeDelimiters(delims []Delimiter) []Delimiter {
	seen := make(map[string]struct{}, len(delims))
	out := make([]Delimiter, 0, len(delims))
	for _, d := range delims {
		k := d.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	return out
}

// defaultSampleSize is the number of scalars pre-buffered for inference.
const defaultSampleSize = 500

// Config gathers the reader's construction-time options.
type Config struct {
	FieldDelimiter FieldDelimiterOption
	RowDelimiter   RowDelimiterOption
	Escape         EscapeStrategy
	Header         HeaderStrategy
	Trim           TrimSet
	SampleSize     int // 0 selects defaultSampleSize
	Logger         InferenceLogger
}

// DefaultConfig returns a Config matching the standard CSV dialect: comma
// field delimiter, {"\n","\r\n"} row delimiters, double-quote escape, no
// header, no trimming.
func DefaultConfig() Config {
	return Config{
		FieldDelimiter: UseFieldDelimiter(NewDelimiter(",")),
		RowDelimiter:   UseRowDelimiter(StandardRowDelimiters()),
		Escape:         DoubleQuoteEscape(),
		Header:         HeaderNone,
	}
}

// sampleSize returns the configured sample size, falling back to the
// default when unset.
func (c Config) sampleSize() int {
	if c.SampleSize > 0 {
		return c.SampleSize
	}
	return defaultSampleSize
}

// NeedsInference reports whether either delimiter slot requires inference.
func (c Config) NeedsInference() bool {
	return c.FieldDelimiter.use == nil || c.RowDelimiter.use == nil
}

// WriterConfig gathers the writer's construction-time options.
type WriterConfig struct {
	FieldDelimiter Delimiter
	RowDelimiter   Delimiter
	Escape         EscapeStrategy
	BOM            BOMStrategy
}

// DefaultWriterConfig returns a WriterConfig matching the standard CSV
// dialect.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		FieldDelimiter: NewDelimiter(","),
		RowDelimiter:   NewDelimiter("\n"),
		Escape:         DoubleQuoteEscape(),
		BOM:            BOMConvention,
	}
}

// BOMStrategy controls whether the writer emits a byte-order mark.
type BOMStrategy int

const (
	// BOMConvention defers to the encoding's own convention (e.g. UTF-8
	// commonly omits a BOM, UTF-16 commonly includes one).
	BOMConvention BOMStrategy = iota
	// BOMAlways forces a BOM regardless of encoding convention.
	BOMAlways
	// BOMNever suppresses the BOM regardless of encoding convention.
	BOMNever
)
