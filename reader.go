package swiftcsv

import "io"

// ReaderStatus observes a Reader's lifecycle.
type ReaderStatus int

const (
	// StatusActive means the reader may still produce rows.
	StatusActive ReaderStatus = iota
	// StatusFinished means EOF was reached at a clean row boundary.
	StatusFinished
	// StatusFailed means an error occurred; the same error is returned by
	// every subsequent Read call.
	StatusFailed
)

// fieldTerminator records why a field ended.
type fieldTerminator int

const (
	termFieldDelim fieldTerminator = iota
	termRowDelim
	termEOF
)

// Reader is a row-oriented tokenizer over a ScalarSource. It supports
// configurable multi-scalar field and row delimiters, optional
// escape/quote semantics with doubled-escape unescaping, leading/trailing
// trimming, and an optional header row. A Reader is single-owner and not
// safe for concurrent use.
type Reader struct {
	src    ScalarSource
	buf    *scalarBuffer
	field  Delimiter
	row    RowDelimiterSet
	escape EscapeStrategy
	trim   TrimSet

	headers        []string
	rowIndex       int
	expectedFields int
	status         ReaderStatus
	err            error
}

// NewReader constructs a Reader over src per cfg. If either delimiter is
// marked for inference, the constructor samples up to cfg.sampleSize
// scalars, runs the Inferrer to pick a concrete dialect, and restores the
// sample to the buffer before validating and (if configured) consuming the
// header row.
func NewReader(src ScalarSource, cfg Config) (*Reader, error) {
	r := &Reader{
		src: src,
		buf: newScalarBuffer(),
	}

	field, row, err := resolveDialect(cfg, r.buf, src)
	if err != nil {
		return nil, err
	}
	r.field = field
	r.row = row
	r.escape = cfg.Escape
	r.trim = cfg.Trim

	if err := validateDelimiters(r.field, r.row, r.escape, r.trim); err != nil {
		return nil, err
	}

	if cfg.Header == HeaderFirstLine {
		headerRow, err := r.Read()
		if err != nil && err != io.EOF {
			return nil, err
		}
		r.headers = headerRow
		r.rowIndex = 0
		r.expectedFields = 0
		if err == io.EOF {
			r.status = StatusActive
		}
	}

	return r, nil
}

// resolveDialect runs inference (when needed) and returns the concrete
// field delimiter and row delimiter set the reader should use.
func resolveDialect(cfg Config, buf *scalarBuffer, src ScalarSource) (Delimiter, RowDelimiterSet, error) {
	if cfg.FieldDelimiter.use != nil && cfg.RowDelimiter.use != nil {
		return *cfg.FieldDelimiter.use, *cfg.RowDelimiter.use, nil
	}

	n := cfg.sampleSize()
	sample := make([]rune, 0, n)
	for len(sample) < n {
		r, ok, err := pull(buf, src)
		if err != nil {
			return Delimiter{}, RowDelimiterSet{}, err
		}
		if !ok {
			break
		}
		sample = append(sample, r)
	}
	buf.pushAll(sample)

	fieldCandidates := cfg.FieldDelimiter.inferFrom
	if cfg.FieldDelimiter.use != nil {
		fieldCandidates = []Delimiter{*cfg.FieldDelimiter.use}
	}
	rowCandidateSets := toSingletonSets(cfg.RowDelimiter.inferFrom)
	if cfg.RowDelimiter.use != nil {
		rowCandidateSets = []RowDelimiterSet{*cfg.RowDelimiter.use}
	}

	inf := NewInferrer(cfg.Logger)
	dialect, err := inf.Infer(sample, fieldCandidates, rowCandidateSets, cfg.Escape)
	if err != nil {
		return Delimiter{}, RowDelimiterSet{}, err
	}
	return dialect.Field, dialect.Row, nil
}

func toSingletonSets(delims []Delimiter) []RowDelimiterSet {
	sets := make([]RowDelimiterSet, len(delims))
	for i, d := range delims {
		sets[i] = NewRowDelimiterSet(d)
	}
	return sets
}

// Header returns the captured header row, or nil if HeaderStrategy was
// HeaderNone.
func (r *Reader) Header() []string { return r.headers }

// Status reports the reader's current lifecycle state.
func (r *Reader) Status() ReaderStatus { return r.status }

// RowIndex returns the number of data rows successfully returned so far,
// excluding the header.
func (r *Reader) RowIndex() int { return r.rowIndex }

// Read parses and returns the next row. It returns io.EOF once the stream
// is exhausted at a clean row boundary. Once any other error is returned,
// every subsequent call returns that same error (sticky failure).
func (r *Reader) Read() ([]string, error) {
	if r.status == StatusFailed {
		return nil, r.err
	}
	if r.status == StatusFinished {
		return nil, io.EOF
	}

	fields := make([]string, 0, 4)
	for {
		s, ok, err := pull(r.buf, r.src)
		if err != nil {
			return r.fail(err)
		}
		if !ok {
			if len(fields) > 0 {
				return r.finishRow(fields)
			}
			r.status = StatusFinished
			return nil, io.EOF
		}

		for !r.trim.empty() && r.trim.contains(s) {
			s, ok, err = pull(r.buf, r.src)
			if err != nil {
				return r.fail(err)
			}
			if !ok {
				if len(fields) > 0 {
					return r.finishRow(fields)
				}
				r.status = StatusFinished
				return nil, io.EOF
			}
		}

		if r.escape.Enabled() && s == r.escape.Scalar() {
			content, term, err := r.readEscapedField()
			if err != nil {
				return r.fail(err)
			}
			fields = append(fields, content)
			if term == termFieldDelim {
				continue
			}
			return r.finishRow(fields)
		}

		matched, err := matchDelimiter(r.field, s, r.buf, r.src)
		if err != nil {
			return r.fail(err)
		}
		if matched {
			fields = append(fields, "")
			continue
		}

		matchedRow, _, err := matchRowDelimiterSet(r.row, s, r.buf, r.src)
		if err != nil {
			return r.fail(err)
		}
		if matchedRow {
			fields = append(fields, "")
			return r.finishRow(fields)
		}

		content, term, err := r.readUnescapedField(s)
		if err != nil {
			return r.fail(err)
		}
		fields = append(fields, content)
		if term == termFieldDelim {
			continue
		}
		return r.finishRow(fields)
	}
}

// readUnescapedField accumulates scalars into a field starting with
// first, stopping at a field delimiter, a row delimiter, or EOF.
func (r *Reader) readUnescapedField(first rune) (string, fieldTerminator, error) {
	content := make([]rune, 0, 16)
	content = append(content, first)

	for {
		s, ok, err := pull(r.buf, r.src)
		if err != nil {
			return "", 0, err
		}
		if !ok {
			return r.applyTrailingTrim(content), termEOF, nil
		}

		// An escape scalar mid-field (not at field start) is content,
		// never a mode switch: only a field-start escape opens a field.
		if r.escape.Enabled() && s == r.escape.Scalar() {
			content = append(content, s)
			continue
		}

		matched, err := matchDelimiter(r.field, s, r.buf, r.src)
		if err != nil {
			return "", 0, err
		}
		if matched {
			return r.applyTrailingTrim(content), termFieldDelim, nil
		}

		matchedRow, _, err := matchRowDelimiterSet(r.row, s, r.buf, r.src)
		if err != nil {
			return "", 0, err
		}
		if matchedRow {
			return r.applyTrailingTrim(content), termRowDelim, nil
		}

		content = append(content, s)
	}
}

// readEscapedField reads the literal content of a field opened by an
// escape scalar. Delimiter matchers are not consulted while inside; the
// mode ends when a lone (non-doubled) escape scalar is found.
func (r *Reader) readEscapedField() (string, fieldTerminator, error) {
	content := make([]rune, 0, 16)
	escape := r.escape.Scalar()

	for {
		s, ok, err := pull(r.buf, r.src)
		if err != nil {
			return "", 0, err
		}
		if !ok {
			return "", 0, newError(ErrInvalidInput, "unterminated escaped field").
				with("escape", string(escape)).with("row", r.rowIndex)
		}

		if s == escape {
			next, ok2, err2 := pull(r.buf, r.src)
			if err2 != nil {
				return "", 0, err2
			}
			if ok2 && next == escape {
				content = append(content, escape)
				continue
			}
			if ok2 {
				r.buf.push(next)
			}
			return r.readAfterEscape(content)
		}

		content = append(content, s)
	}
}

// readAfterEscape consumes scalars following the close of an escaped
// field. A field or row delimiter closes the field normally; any other
// scalar is treated leniently as literal trailing content (§4.3.1).
// Trailing trim scalars after the closing escape are stripped; the escaped
// content itself is never trimmed.
func (r *Reader) readAfterEscape(content []rune) (string, fieldTerminator, error) {
	escapedLen := len(content)
	finish := func() string {
		end := len(content)
		for end > escapedLen && r.trim.contains(content[end-1]) {
			end--
		}
		return string(content[:end])
	}
	for {
		s, ok, err := pull(r.buf, r.src)
		if err != nil {
			return "", 0, err
		}
		if !ok {
			return finish(), termEOF, nil
		}

		matched, err := matchDelimiter(r.field, s, r.buf, r.src)
		if err != nil {
			return "", 0, err
		}
		if matched {
			return finish(), termFieldDelim, nil
		}

		matchedRow, _, err := matchRowDelimiterSet(r.row, s, r.buf, r.src)
		if err != nil {
			return "", 0, err
		}
		if matchedRow {
			return finish(), termRowDelim, nil
		}

		content = append(content, s)
	}
}

// applyTrailingTrim strips trailing trim scalars from an unescaped
// field's accumulated content.
func (r *Reader) applyTrailingTrim(content []rune) string {
	if r.trim.empty() {
		return string(content)
	}
	end := len(content)
	for end > 0 && r.trim.contains(content[end-1]) {
		end--
	}
	return string(content[:end])
}

// finishRow enforces the row-width invariant, fixing expectedFields on the
// first complete row and rejecting any later row of a different width.
func (r *Reader) finishRow(fields []string) ([]string, error) {
	if r.expectedFields == 0 {
		r.expectedFields = len(fields)
	} else if len(fields) != r.expectedFields {
		err := newError(ErrInvalidInput, "row width mismatch").
			with("expected", r.expectedFields).with("got", len(fields)).with("row", r.rowIndex)
		return r.fail(err)
	}
	r.rowIndex++
	return fields, nil
}

// fail latches the reader into StatusFailed and returns err so that every
// subsequent Read call reports the same failure.
func (r *Reader) fail(err error) ([]string, error) {
	r.status = StatusFailed
	r.err = err
	return nil, err
}

// ReadAll exhausts the reader, collecting every remaining row.
func (r *Reader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

// Rows returns a range-over-func iterator yielding each row with a nil
// error, stopping silently at io.EOF and yielding once with a non-nil
// error and nil row on any other failure.
func (r *Reader) Rows() func(func([]string, error) bool) {
	return func(yield func([]string, error) bool) {
		for {
			row, err := r.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}
