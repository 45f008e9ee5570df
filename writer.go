package swiftcsv

import (
	"bufio"
	"io"
	"strings"
)

// Writer is a row-oriented CSV emitter: write_field/write_fields build up
// a row, end_row closes it (padding short rows, never truncating), and
// subsequent rows are held to the width of the first. A Writer is
// single-owner and not safe for concurrent use.
type Writer struct {
	dst *bufio.Writer

	field  Delimiter
	row    Delimiter
	escape EscapeStrategy

	rowIndex       int
	fieldIndex     int
	expectedFields int
	closed         bool
	err            error
}

// NewWriter constructs a Writer emitting to dst per cfg. When cfg.BOM
// requests it, a UTF-8 byte-order mark is written immediately (BOMAlways),
// or never (BOMNever); BOMConvention, the default, follows the UTF-8
// convention of omitting it.
func NewWriter(dst io.Writer, cfg WriterConfig) *Writer {
	w := &Writer{
		dst:    bufio.NewWriterSize(dst, defaultBufferSize),
		field:  cfg.FieldDelimiter,
		row:    cfg.RowDelimiter,
		escape: cfg.Escape,
	}
	if cfg.BOM == BOMAlways {
		w.dst.WriteRune('\uFEFF')
	}
	return w
}

const defaultBufferSize = 1 << 10

// WriteField appends a single field to the row currently being assembled.
// It fails with invalidOperation if the writer is closed or if the row
// already holds the established field width.
func (w *Writer) WriteField(field string) error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return w.fail(newError(ErrInvalidOperation, "writer is closed"))
	}
	if w.expectedFields > 0 && w.fieldIndex >= w.expectedFields {
		return w.fail(newError(ErrInvalidOperation, "field count exceeds expected width").
			with("expected", w.expectedFields).with("row", w.rowIndex))
	}
	return w.writeFieldRaw(field)
}

// writeFieldRaw writes the field delimiter (if not the row's first field)
// and the field's escaped content, without width bookkeeping.
func (w *Writer) writeFieldRaw(field string) error {
	if w.fieldIndex > 0 {
		if _, err := w.dst.WriteString(w.field.String()); err != nil {
			return w.fail(wrapStream(err))
		}
	}
	if err := w.writeEscaped(field); err != nil {
		return err
	}
	w.fieldIndex++
	return nil
}

// writeEscaped emits field's content, escaping it symmetrically with the
// reader's unescaping rules (§4.5).
func (w *Writer) writeEscaped(field string) error {
	if !w.escape.Enabled() {
		if w.containsAnyDelimiter(field) {
			return w.fail(newError(ErrInvalidInput, "field contains a raw delimiter and no escape scalar is configured").
				with("row", w.rowIndex).with("field", w.fieldIndex))
		}
		if _, err := w.dst.WriteString(field); err != nil {
			return w.fail(wrapStream(err))
		}
		return nil
	}

	escape := w.escape.Scalar()
	needsSurround := w.containsAnyDelimiter(field) || strings.ContainsRune(field, escape)
	if !needsSurround {
		if _, err := w.dst.WriteString(field); err != nil {
			return w.fail(wrapStream(err))
		}
		return nil
	}

	if _, err := w.dst.WriteRune(escape); err != nil {
		return w.fail(wrapStream(err))
	}
	for _, r := range field {
		if r == escape {
			if _, err := w.dst.WriteRune(escape); err != nil {
				return w.fail(wrapStream(err))
			}
		}
		if _, err := w.dst.WriteRune(r); err != nil {
			return w.fail(wrapStream(err))
		}
	}
	if _, err := w.dst.WriteRune(escape); err != nil {
		return w.fail(wrapStream(err))
	}
	return nil
}

// containsAnyDelimiter reports whether field contains the field delimiter
// or the row delimiter as a literal substring.
func (w *Writer) containsAnyDelimiter(field string) bool {
	return strings.Contains(field, w.field.String()) || strings.Contains(field, w.row.String())
}

// WriteFields appends each field in order, stopping at the first error.
func (w *Writer) WriteFields(fields []string) error {
	for _, f := range fields {
		if err := w.WriteField(f); err != nil {
			return err
		}
	}
	return nil
}

// EndRow closes the row currently being assembled. The first row to call
// EndRow fixes the expected field width; later rows are padded with empty
// trailing fields up to that width (never truncated) before the row
// delimiter is emitted.
func (w *Writer) EndRow() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return w.fail(newError(ErrInvalidOperation, "writer is closed"))
	}

	if w.expectedFields == 0 {
		w.expectedFields = w.fieldIndex
	}
	for w.fieldIndex < w.expectedFields {
		if err := w.writeFieldRaw(""); err != nil {
			return err
		}
	}

	if _, err := w.dst.WriteString(w.row.String()); err != nil {
		return w.fail(wrapStream(err))
	}
	w.rowIndex++
	w.fieldIndex = 0
	return nil
}

// WriteRow writes fields and then ends the row; equivalent to WriteFields
// followed by EndRow.
func (w *Writer) WriteRow(fields []string) error {
	if err := w.WriteFields(fields); err != nil {
		return err
	}
	return w.EndRow()
}

// WriteEmptyRow writes a row of expectedFields empty fields. It fails with
// invalidOperation if the width is not yet known (no row has been ended
// yet) or if fields have already been written into the row in progress.
func (w *Writer) WriteEmptyRow() error {
	if w.err != nil {
		return w.err
	}
	if w.expectedFields == 0 {
		return w.fail(newError(ErrInvalidOperation, "field width is not yet known"))
	}
	if w.fieldIndex != 0 {
		return w.fail(newError(ErrInvalidOperation, "cannot write an empty row with fields already pending"))
	}
	return w.EndRow()
}

// EndFile flushes buffered output and marks the writer closed; every
// subsequent write operation fails with invalidOperation.
func (w *Writer) EndFile() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return w.fail(newError(ErrInvalidOperation, "writer is already closed"))
	}
	if err := w.dst.Flush(); err != nil {
		return w.fail(wrapStream(err))
	}
	w.closed = true
	return nil
}

// FieldsPerRow reports the width established by the first completed row.
// It fails with invalidOperation if called before EndFile, matching the
// taxonomy's "accessing captured data before end_file" case.
func (w *Writer) FieldsPerRow() (int, error) {
	if !w.closed {
		return 0, newError(ErrInvalidOperation, "fields-per-row is not available before EndFile")
	}
	return w.expectedFields, nil
}

// Closed reports whether EndFile has been called.
func (w *Writer) Closed() bool { return w.closed }

// Err reports the first error encountered by the writer, if any.
func (w *Writer) Err() error { return w.err }

func (w *Writer) fail(err error) error {
	w.err = err
	return err
}
